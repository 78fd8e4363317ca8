// Package lump models ID24 JSON lumps: the {type, version, metadata, data}
// envelope and the typed payload of every supported lump type.
package lump

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Type is the envelope "type" token.
type Type string

const (
	TypeGameConf   Type = "gameconf"
	TypeDemoLoop   Type = "demoloop"
	TypeSBarDef    Type = "sbardef"
	TypeSkyDefs    Type = "skydefs"
	TypeInterlevel Type = "interlevel"
	TypeFinale     Type = "finale"
)

// Types returns every supported lump type.
func Types() []Type {
	return []Type{TypeGameConf, TypeDemoLoop, TypeSBarDef, TypeSkyDefs, TypeInterlevel, TypeFinale}
}

// ParseType accepts a type token case-insensitively.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(s))
	if _, err := newPayload(t); err != nil {
		return "", err
	}
	return t, nil
}

// Version is the envelope "major.minor.revision" version.
type Version struct {
	Major    uint8
	Minor    uint8
	Revision uint8
}

// DefaultVersion is written into new lumps.
var DefaultVersion = Version{Major: 1}

func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q: expected major.minor.revision", ErrInvalidVersion, s)
	}
	var nums [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: component %d", ErrInvalidVersion, s, i+1)
		}
		nums[i] = uint8(n)
	}
	return Version{Major: nums[0], Minor: nums[1], Revision: nums[2]}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Revision)
}

func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Payload is the typed "data" member of a lump.
type Payload interface {
	LumpType() Type
}

// validator is implemented by payloads with semantic checks beyond shape.
type validator interface {
	Validate() error
}

// Lump is one decoded ID24 JSON document.
type Lump struct {
	Type     Type
	Version  Version
	Metadata json.RawMessage
	Data     Payload
}

type envelope struct {
	Type     Type            `json:"type"`
	Version  Version         `json:"version"`
	Metadata json.RawMessage `json:"metadata"`
	Data     json.RawMessage `json:"data"`
}

func newPayload(t Type) (Payload, error) {
	switch t {
	case TypeGameConf:
		return &GameConf{}, nil
	case TypeDemoLoop:
		return &DemoLoop{}, nil
	case TypeSBarDef:
		return &SBarDef{}, nil
	case TypeSkyDefs:
		return &SkyDefs{}, nil
	case TypeInterlevel:
		return &Interlevel{}, nil
	case TypeFinale:
		return &Finale{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLumpType, string(t))
	}
}

// New returns a lump of type t with an empty payload and the default version.
func New(t Type) (*Lump, error) {
	p, err := newPayload(t)
	if err != nil {
		return nil, err
	}
	return &Lump{Type: t, Version: DefaultVersion, Metadata: json.RawMessage(`{}`), Data: p}, nil
}

// Decode reads one lump. Any error in the payload, including an invalid
// options string, fails the whole decode.
func Decode(r io.Reader) (*Lump, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode lump: %w", err)
	}
	p, err := newPayload(env.Type)
	if err != nil {
		return nil, fmt.Errorf("decode lump: %w", err)
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil, fmt.Errorf("decode %s: %w", env.Type, ErrMissingData)
	}
	if err := json.Unmarshal(env.Data, p); err != nil {
		return nil, fmt.Errorf("decode %s data: %w", env.Type, err)
	}
	if len(env.Metadata) == 0 {
		env.Metadata = json.RawMessage(`{}`)
	}
	return &Lump{Type: env.Type, Version: env.Version, Metadata: env.Metadata, Data: p}, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte) (*Lump, error) {
	return Decode(bytes.NewReader(data))
}

func (l *Lump) MarshalJSON() ([]byte, error) {
	if l.Data == nil {
		return nil, fmt.Errorf("encode %s: %w", l.Type, ErrMissingData)
	}
	data, err := json.Marshal(l.Data)
	if err != nil {
		return nil, fmt.Errorf("encode %s data: %w", l.Type, err)
	}
	meta := l.Metadata
	if len(meta) == 0 {
		meta = json.RawMessage(`{}`)
	}
	return json.Marshal(envelope{Type: l.Type, Version: l.Version, Metadata: meta, Data: data})
}

// Encode writes the lump as indented JSON.
func (l *Lump) Encode(w io.Writer, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	enc.SetEscapeHTML(false)
	return enc.Encode(l)
}

// Validate runs the semantic checks of the payload, such as option legality
// for a game configuration. Shape errors are already reported by Decode.
func (l *Lump) Validate() error {
	if l.Data == nil {
		return ErrMissingData
	}
	if l.Data.LumpType() != l.Type {
		return fmt.Errorf("%w: envelope %q holds %q data", ErrUnknownLumpType, l.Type, l.Data.LumpType())
	}
	if v, ok := l.Data.(validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%s: %w", l.Type, err)
		}
	}
	return nil
}
