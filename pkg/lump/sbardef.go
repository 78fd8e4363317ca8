package lump

import (
	"encoding/json"
	"fmt"
)

type NumberFontType uint8

const (
	FontMonoSpacedZero NumberFontType = iota
	FontMonoSpacedWidest
	FontProportional

	numberFontTypeCount
)

func (n *NumberFontType) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, int(numberFontTypeCount), "number font type")
	if err != nil {
		return err
	}
	*n = NumberFontType(v)
	return nil
}

type NumberFont struct {
	Name string         `json:"name"`
	Type NumberFontType `json:"type"`
	Stem string         `json:"stem"`
}

// NumberType selects the player statistic a number element shows.
type NumberType uint8

const (
	NumberHealth NumberType = iota
	NumberArmor
	NumberFrags
	NumberAmmoParam
	NumberAmmoCurrWeapon
	NumberMaxAmmoParam
	NumberAmmoParamWeapon
	NumberMaxAmmoParamWeapon

	numberTypeCount
)

func (n *NumberType) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, int(numberTypeCount), "number type")
	if err != nil {
		return err
	}
	*n = NumberType(v)
	return nil
}

// SBarCondition gates an element on player or session state. Param is
// interpreted per condition.
type SBarCondition uint8

const (
	CondWeaponOwned SBarCondition = iota
	CondWeaponSelected
	CondWeaponNotSelected
	CondWeaponValidAmmo
	CondCurrWeaponValidAmmo
	CondMatchesCurrWeaponAmmo
	CondAnyWeaponOwned
	CondAnyWeaponNotOwned
	CondAnyWeaponSelected
	CondAnyWeaponNotSelected
	CondItemOwned
	CondItemNotOwned
	CondGameVersionGreaterEq
	CondGameVersionLess
	CondSessionTypeEqual
	CondSessionTypeNotEqual
	CondGameModeEqual
	CondGameModeNotEqual
	CondHUDModeEqual

	sbarConditionCount
)

func (c *SBarCondition) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, int(sbarConditionCount), "status bar condition")
	if err != nil {
		return err
	}
	*c = SBarCondition(v)
	return nil
}

type SBarConditionEntry struct {
	Condition SBarCondition `json:"condition"`
	Param     uint8         `json:"param"`
}

type HAlign uint8

const (
	AlignLeft HAlign = iota
	AlignHCenter
	AlignRight
)

type VAlign uint8

const (
	AlignTop VAlign = iota
	AlignVCenter
	AlignBottom
)

// Alignment is packed into one integer: bits 0-1 hold the horizontal
// alignment, bits 2-3 the vertical one.
type Alignment struct {
	Horizontal HAlign
	Vertical   VAlign
}

func ParseAlignment(code uint8) (Alignment, error) {
	h := code & 0b11
	v := (code >> 2) & 0b11
	if h == 0b11 {
		return Alignment{}, fmt.Errorf("%w: %#x: multiple horizontal alignments specified", ErrInvalidAlignment, code)
	}
	if v == 0b11 {
		return Alignment{}, fmt.Errorf("%w: %#x: multiple vertical alignments specified", ErrInvalidAlignment, code)
	}
	return Alignment{Horizontal: HAlign(h), Vertical: VAlign(v)}, nil
}

func (a Alignment) Code() uint8 {
	return uint8(a.Horizontal)&0b11 | (uint8(a.Vertical)&0b11)<<2
}

func (a Alignment) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Code())
}

func (a *Alignment) UnmarshalJSON(data []byte) error {
	var code uint8
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAlignment, data)
	}
	parsed, err := ParseAlignment(code)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Canvas holds the members every element shares. Face and face background
// elements are bare canvases.
type Canvas struct {
	X          int16                `json:"x"`
	Y          int16                `json:"y"`
	Alignment  Alignment            `json:"alignment" jsonschema_description:"Bits 0-1: left, center, right. Bits 2-3: top, center, bottom."`
	Conditions []SBarConditionEntry `json:"conditions" jsonschema:"nullable"`
	Children   []SBarElem           `json:"children" jsonschema:"nullable"`
}

type Graphic struct {
	Canvas
	TranMap     *string `json:"tranmap" jsonschema:"nullable"`
	Translation *string `json:"translation" jsonschema:"nullable"`
	Patch       string  `json:"patch"`
}

type AnimationFrame struct {
	Lump     string  `json:"lump"`
	Duration float32 `json:"duration"`
}

type Animation struct {
	Canvas
	TranMap     *string          `json:"tranmap" jsonschema:"nullable"`
	Translation *string          `json:"translation" jsonschema:"nullable"`
	Frames      []AnimationFrame `json:"frames" jsonschema:"nullable"`
}

// Number draws a statistic with a number font. Percent elements share the
// layout and append a percent sign.
type Number struct {
	Canvas
	TranMap     *string    `json:"tranmap" jsonschema:"nullable"`
	Translation *string    `json:"translation" jsonschema:"nullable"`
	Font        string     `json:"font"`
	Type        NumberType `json:"type"`
	Param       uint8      `json:"param"`
	MaxLength   uint8      `json:"maxlength"`
}

// SBarElem is a one-of: exactly one member is set.
type SBarElem struct {
	Canvas         *Canvas    `json:"canvas,omitempty"`
	Graphic        *Graphic   `json:"graphic,omitempty"`
	Animation      *Animation `json:"animation,omitempty"`
	Face           *Canvas    `json:"face,omitempty"`
	FaceBackground *Canvas    `json:"facebackground,omitempty"`
	Number         *Number    `json:"number,omitempty"`
	Percent        *Number    `json:"percent,omitempty"`
}

// Kind returns the name of the set member, or "" when none or several are set.
func (e SBarElem) Kind() string {
	kind, n := "", 0
	set := func(name string, ok bool) {
		if ok {
			kind = name
			n++
		}
	}
	set("canvas", e.Canvas != nil)
	set("graphic", e.Graphic != nil)
	set("animation", e.Animation != nil)
	set("face", e.Face != nil)
	set("facebackground", e.FaceBackground != nil)
	set("number", e.Number != nil)
	set("percent", e.Percent != nil)
	if n != 1 {
		return ""
	}
	return kind
}

func (e SBarElem) canvas() *Canvas {
	switch {
	case e.Canvas != nil:
		return e.Canvas
	case e.Graphic != nil:
		return &e.Graphic.Canvas
	case e.Animation != nil:
		return &e.Animation.Canvas
	case e.Face != nil:
		return e.Face
	case e.FaceBackground != nil:
		return e.FaceBackground
	case e.Number != nil:
		return &e.Number.Canvas
	case e.Percent != nil:
		return &e.Percent.Canvas
	}
	return nil
}

type StatusBar struct {
	Height           uint16     `json:"height"`
	FullScreenRender bool       `json:"fullscreenrender"`
	FillFlat         *string    `json:"fillflat" jsonschema:"nullable"`
	Children         []SBarElem `json:"children" jsonschema:"nullable"`
}

// SBarDef is the payload of a "sbardef" lump.
type SBarDef struct {
	NumberFonts []NumberFont `json:"numberfonts" jsonschema:"nullable"`
	StatusBars  []StatusBar  `json:"statusbars" jsonschema:"nullable"`
}

func (*SBarDef) LumpType() Type { return TypeSBarDef }

func (s *SBarDef) Validate() error {
	fonts := make(map[string]bool, len(s.NumberFonts))
	for _, f := range s.NumberFonts {
		fonts[f.Name] = true
	}
	for i, bar := range s.StatusBars {
		if err := validateElems(bar.Children, fonts, fmt.Sprintf("statusbars[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func validateElems(elems []SBarElem, fonts map[string]bool, path string) error {
	for i, e := range elems {
		at := fmt.Sprintf("%s.children[%d]", path, i)
		kind := e.Kind()
		if kind == "" {
			return fmt.Errorf("%w: %s must set exactly one element kind", ErrInvalidField, at)
		}
		switch {
		case e.Animation != nil && len(e.Animation.Frames) == 0:
			return fmt.Errorf("%w: %s animation has no frames", ErrInvalidField, at)
		case e.Number != nil && !fonts[e.Number.Font]:
			return fmt.Errorf("%w: %s references unknown font %q", ErrInvalidField, at, e.Number.Font)
		case e.Percent != nil && !fonts[e.Percent.Font]:
			return fmt.Errorf("%w: %s references unknown font %q", ErrInvalidField, at, e.Percent.Font)
		}
		if err := validateElems(e.canvas().Children, fonts, at+"."+kind); err != nil {
			return err
		}
	}
	return nil
}
