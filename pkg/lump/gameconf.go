package lump

import (
	"fmt"
	"strings"

	"github.com/vovanwin/id24json/pkg/compat"
)

// Mode is the IWAD game mode a configuration targets.
type Mode string

const (
	ModeRegistered Mode = "registered"
	ModeRetail     Mode = "retail"
	ModeCommercial Mode = "commercial"
)

func Modes() []Mode {
	return []Mode{ModeRegistered, ModeRetail, ModeCommercial}
}

func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: mode %q", ErrInvalidEnum, s)
}

func (m Mode) String() string { return string(m) }

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// GameConf is the payload of a "gameconf" lump. Every member is nullable.
type GameConf struct {
	Title              *string            `json:"title" jsonschema:"nullable"`
	Author             *string            `json:"author" jsonschema:"nullable"`
	Version            *string            `json:"version" jsonschema:"nullable"`
	Description        *string            `json:"description" jsonschema:"nullable"`
	IWAD               *string            `json:"iwad" jsonschema:"nullable"`
	PWADFiles          []string           `json:"pwadfiles" jsonschema:"nullable"`
	DEHFiles           []string           `json:"dehfiles" jsonschema:"nullable"`
	Executable         *compat.Executable `json:"executable" jsonschema:"nullable"`
	Mode               *Mode              `json:"mode" jsonschema:"nullable"`
	Options            *compat.Options    `json:"options" jsonschema:"nullable" jsonschema_description:"Compatibility options: one \"name value\" pair per line, value is a non-negative integer."`
	PlayerTranslations []string           `json:"playertranslations" jsonschema:"nullable"`
	WADTranslation     *string            `json:"wadtranslation" jsonschema:"nullable"`
}

func (*GameConf) LumpType() Type { return TypeGameConf }

// SetExecutable declares tier and drops every option it does not recognize.
// The removed options are returned in name order.
func (g *GameConf) SetExecutable(tier compat.Executable) []compat.CompOption {
	g.Executable = &tier
	if g.Options == nil {
		return nil
	}
	return g.Options.SetExecutable(tier)
}

// AddOption inserts the default of opt for the declared executable. Without
// a declared executable nothing is added.
func (g *GameConf) AddOption(opt compat.CompOption) bool {
	if g.Executable == nil {
		return false
	}
	if g.Options == nil {
		g.Options = compat.NewOptions()
	}
	return g.Options.Add(opt, *g.Executable)
}

// RemoveOption deletes opt from the options set.
func (g *GameConf) RemoveOption(opt compat.CompOption) {
	if g.Options != nil {
		g.Options.Remove(opt)
	}
}

// EffectiveOptions returns the defaults of the declared executable overlaid
// with the explicit options. Without an executable only the explicit options
// are returned.
func (g *GameConf) EffectiveOptions() *compat.Options {
	out := compat.NewOptions()
	if g.Executable != nil {
		out = compat.Defaults(*g.Executable)
	}
	if g.Options != nil {
		out.Merge(g.Options)
	}
	return out
}

// Validate reports options that the declared executable does not recognize.
func (g *GameConf) Validate() error {
	if g.Executable == nil || g.Options == nil {
		return nil
	}
	illegal := g.Options.Illegal(*g.Executable)
	if len(illegal) == 0 {
		return nil
	}
	names := make([]string, len(illegal))
	for i, opt := range illegal {
		names[i] = opt.Name()
	}
	return fmt.Errorf("%w %s: %s", compat.ErrOptionNotLegal, g.Executable, strings.Join(names, ", "))
}
