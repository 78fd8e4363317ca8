package lump

import (
	"encoding/json"
	"fmt"
)

// FinaleType selects the end-of-episode sequence.
type FinaleType uint8

const (
	FinaleArtScreen FinaleType = iota
	FinaleBunnyScroller
	FinaleCastRollCall

	finaleTypeCount
)

func (f *FinaleType) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, int(finaleTypeCount), "finale type")
	if err != nil {
		return err
	}
	*f = FinaleType(v)
	return nil
}

type Bunny struct {
	StitchImage  string `json:"stitchimage"`
	Overlay      uint32 `json:"overlay"`
	OverlayCount uint32 `json:"overlaycount"`
	OverlaySound uint32 `json:"overlaysound"`
	OverlayX     uint32 `json:"overlayx"`
	OverlayY     uint32 `json:"overlayy"`
}

// CastRollCall keeps cast members verbatim.
// TODO: model cast member fields once the lump format documents them.
type CastRollCall struct {
	CastMembers []json.RawMessage `json:"castmembers" jsonschema:"nullable"`
}

// Finale is the payload of a "finale" lump.
type Finale struct {
	Type         FinaleType    `json:"type"`
	Music        string        `json:"music"`
	Background   string        `json:"background"`
	DoNextMap    bool          `json:"donextmap"`
	Bunny        *Bunny        `json:"bunny" jsonschema:"nullable"`
	CastRollCall *CastRollCall `json:"castrollcall" jsonschema:"nullable"`
}

func (*Finale) LumpType() Type { return TypeFinale }

func (f *Finale) Validate() error {
	switch f.Type {
	case FinaleBunnyScroller:
		if f.Bunny == nil {
			return fmt.Errorf("%w: bunny scroller without bunny", ErrInvalidField)
		}
	case FinaleCastRollCall:
		if f.CastRollCall == nil {
			return fmt.Errorf("%w: cast roll call without castrollcall", ErrInvalidField)
		}
	}
	return nil
}
