package compat

import "fmt"

// Executable is the runtime tier a document declares compatibility with.
// Tiers are totally ordered by declaration order.
type Executable uint8

const (
	Doom1_9 Executable = iota
	LimitRemoving
	Bugfixed
	Boom2_02
	CompLevel9
	MBF
	MBF21
	MBF21EX
	ID24

	executableCount = int(ID24) + 1
)

var executableTokens = [executableCount]string{
	Doom1_9:       "doom1.9",
	LimitRemoving: "limitremoving",
	Bugfixed:      "bugfixed",
	Boom2_02:      "boom2.02",
	CompLevel9:    "complevel9",
	MBF:           "mbf",
	MBF21:         "mbf21",
	MBF21EX:       "mbf21ex",
	ID24:          "id24",
}

// Executables returns every tier from oldest to newest.
func Executables() []Executable {
	out := make([]Executable, executableCount)
	for i := range out {
		out[i] = Executable(i)
	}
	return out
}

// ParseExecutable maps a wire token to its tier.
func ParseExecutable(token string) (Executable, error) {
	for i, t := range executableTokens {
		if t == token {
			return Executable(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTier, token)
}

// Valid reports whether e is one of the declared tiers.
func (e Executable) Valid() bool {
	return int(e) < executableCount
}

// Supports reports whether e is at least as new as other.
func (e Executable) Supports(other Executable) bool {
	return e >= other
}

func (e Executable) String() string {
	if !e.Valid() {
		return fmt.Sprintf("executable(%d)", uint8(e))
	}
	return executableTokens[e]
}

func (e Executable) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTier, uint8(e))
	}
	return []byte(executableTokens[e]), nil
}

func (e *Executable) UnmarshalText(text []byte) error {
	v, err := ParseExecutable(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
