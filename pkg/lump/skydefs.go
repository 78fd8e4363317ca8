package lump

import "fmt"

// SkyType selects how a sky is drawn.
type SkyType uint8

const (
	SkyStandard SkyType = iota
	SkyFire
	SkyWithForeground

	skyTypeCount
)

func (s SkyType) String() string {
	switch s {
	case SkyStandard:
		return "Standard"
	case SkyFire:
		return "Fire"
	case SkyWithForeground:
		return "With Foreground"
	default:
		return fmt.Sprintf("SkyType(%d)", uint8(s))
	}
}

func (s *SkyType) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, int(skyTypeCount), "sky type")
	if err != nil {
		return err
	}
	*s = SkyType(v)
	return nil
}

// Fire animates a sky with the PSX fire effect.
type Fire struct {
	UpdateTime float32 `json:"updatetime"`
	Palette    []int   `json:"palette" jsonschema:"nullable"`
}

// DefaultFire updates every two tics with an empty palette.
func DefaultFire() Fire {
	return Fire{UpdateTime: 0.05715, Palette: []int{}}
}

type SkyTex struct {
	Name    string  `json:"name"`
	Mid     uint16  `json:"mid"`
	ScrollX float32 `json:"scrollx"`
	ScrollY float32 `json:"scrolly"`
	ScaleX  float32 `json:"scalex"`
	ScaleY  float32 `json:"scaley"`
}

func DefaultSkyTex() SkyTex {
	return SkyTex{Name: "SKY1", Mid: 100, ScaleX: 1, ScaleY: 1}
}

// Sky flattens its background texture into the sky object itself.
type Sky struct {
	Type SkyType `json:"type"`
	SkyTex
	Fire          *Fire   `json:"fire" jsonschema:"nullable"`
	ForegroundTex *SkyTex `json:"foregroundtex" jsonschema:"nullable"`
}

func DefaultSky() Sky {
	return Sky{Type: SkyStandard, SkyTex: DefaultSkyTex()}
}

type FlatMapping struct {
	Flat string `json:"flat"`
	Sky  string `json:"sky"`
}

func DefaultFlatMapping() FlatMapping {
	return FlatMapping{Flat: "F_SKY1", Sky: "SKY1"}
}

// SkyDefs is the payload of a "skydefs" lump.
type SkyDefs struct {
	Skies       []Sky         `json:"skies" jsonschema:"nullable"`
	FlatMapping []FlatMapping `json:"flatmapping" jsonschema:"nullable"`
}

func (*SkyDefs) LumpType() Type { return TypeSkyDefs }

func (s *SkyDefs) Validate() error {
	for i, sky := range s.Skies {
		if sky.Name == "" {
			return fmt.Errorf("%w: skies[%d].name is empty", ErrInvalidField, i)
		}
		switch sky.Type {
		case SkyFire:
			if sky.Fire == nil {
				return fmt.Errorf("%w: skies[%d] is a fire sky without fire", ErrInvalidField, i)
			}
			for j, idx := range sky.Fire.Palette {
				if idx < 0 || idx > 255 {
					return fmt.Errorf("%w: skies[%d].fire.palette[%d] = %d", ErrInvalidField, i, j, idx)
				}
			}
		case SkyWithForeground:
			if sky.ForegroundTex == nil {
				return fmt.Errorf("%w: skies[%d] has no foregroundtex", ErrInvalidField, i)
			}
		}
	}
	return nil
}
