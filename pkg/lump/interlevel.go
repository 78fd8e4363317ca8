package lump

import (
	"encoding/json"
	"fmt"
)

// FrameDuration is the duration mode of an interlevel animation frame.
type FrameDuration uint8

const (
	DurationNone FrameDuration = iota
	DurationInfinite
	DurationFixed
	DurationRandom
)

const (
	frameDurationMask    = 0b111
	frameRandomOffsetBit = 1 << 12
)

// FrameType is packed into one integer: bits 0-2 hold a one-hot duration
// mode, bit 12 enables a random start offset.
type FrameType struct {
	RandomOffset bool
	Duration     FrameDuration
}

func ParseFrameType(code uint16) (FrameType, error) {
	var d FrameDuration
	switch code & frameDurationMask {
	case 0b000:
		d = DurationNone
	case 0b001:
		d = DurationInfinite
	case 0b010:
		d = DurationFixed
	case 0b100:
		d = DurationRandom
	default:
		return FrameType{}, fmt.Errorf("%w: %#x: multiple durations specified", ErrInvalidFrameType, code)
	}
	return FrameType{RandomOffset: code&frameRandomOffsetBit != 0, Duration: d}, nil
}

func (f FrameType) Code() uint16 {
	var code uint16
	switch f.Duration {
	case DurationInfinite:
		code = 0b001
	case DurationFixed:
		code = 0b010
	case DurationRandom:
		code = 0b100
	}
	if f.RandomOffset {
		code |= frameRandomOffsetBit
	}
	return code
}

func (f FrameType) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Code())
}

func (f *FrameType) UnmarshalJSON(data []byte) error {
	var code uint16
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFrameType, data)
	}
	parsed, err := ParseFrameType(code)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// InterlevelCondition gates a layer or animation on intermission state.
type InterlevelCondition uint8

const (
	CondNone             InterlevelCondition = iota
	CondCurrMapGreater                       // current map number is greater than param
	CondCurrMapEqual                         // current map number equals param
	CondMapVisited                           // map number param has been visited
	CondCurrMapNotSecret                     // current map is not a secret map
	CondAnySecretVisited                     // any secret map has been visited
	CondOnFinishedScreen                     // showing the "finished" screen
	CondOnEnteringScreen                     // showing the "entering" screen

	interlevelConditionCount
)

func (c *InterlevelCondition) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, int(interlevelConditionCount), "interlevel condition")
	if err != nil {
		return err
	}
	*c = InterlevelCondition(v)
	return nil
}

type InterlevelConditionEntry struct {
	Condition InterlevelCondition `json:"condition"`
	Param     uint8               `json:"param"`
}

type InterlevelFrame struct {
	Image       string    `json:"image"`
	Type        FrameType `json:"type" jsonschema_description:"Bits 0-2: one of none, infinite, fixed, random duration. Bit 12: random start offset."`
	Duration    float32   `json:"duration"`
	MaxDuration float32   `json:"maxduration"`
}

type InterlevelAnim struct {
	X          uint16                     `json:"x"`
	Y          uint16                     `json:"y"`
	Frames     []InterlevelFrame          `json:"frames" jsonschema:"nullable"`
	Conditions []InterlevelConditionEntry `json:"conditions" jsonschema:"nullable"`
}

type InterlevelLayer struct {
	Anims      []InterlevelAnim           `json:"anims" jsonschema:"nullable"`
	Conditions []InterlevelConditionEntry `json:"conditions" jsonschema:"nullable"`
}

// Interlevel is the payload of an "interlevel" lump.
type Interlevel struct {
	Music           string            `json:"music"`
	BackgroundImage string            `json:"backgroundimage"`
	Layers          []InterlevelLayer `json:"layers" jsonschema:"nullable"`
}

func (*Interlevel) LumpType() Type { return TypeInterlevel }

func (il *Interlevel) Validate() error {
	for i, layer := range il.Layers {
		for j, anim := range layer.Anims {
			if len(anim.Frames) == 0 {
				return fmt.Errorf("%w: layers[%d].anims[%d] has no frames", ErrInvalidField, i, j)
			}
			for k, fr := range anim.Frames {
				if fr.Type.Duration == DurationRandom && fr.MaxDuration < fr.Duration {
					return fmt.Errorf("%w: layers[%d].anims[%d].frames[%d].maxduration below duration", ErrInvalidField, i, j, k)
				}
			}
		}
	}
	return nil
}
