package lump

import "fmt"

// DemoType selects what a demo loop entry shows.
type DemoType uint8

const (
	DemoArtScreen DemoType = iota
	DemoLump

	demoTypeCount
)

func (d *DemoType) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, int(demoTypeCount), "demo type")
	if err != nil {
		return err
	}
	*d = DemoType(v)
	return nil
}

// OutroWipe selects the transition played after an entry.
type OutroWipe uint8

const (
	WipeImmediate OutroWipe = iota
	WipeScreenMelt

	outroWipeCount
)

func (w *OutroWipe) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, int(outroWipeCount), "outro wipe")
	if err != nil {
		return err
	}
	*w = OutroWipe(v)
	return nil
}

type DemoLoopEntry struct {
	PrimaryLump   string    `json:"primarylump"`
	SecondaryLump string    `json:"secondarylump"`
	Duration      float32   `json:"duration"`
	Type          DemoType  `json:"type"`
	OutroWipe     OutroWipe `json:"outrowipe"`
}

// DemoLoop is the payload of a "demoloop" lump.
type DemoLoop struct {
	Entries []DemoLoopEntry `json:"entries" jsonschema:"nullable"`
}

func (*DemoLoop) LumpType() Type { return TypeDemoLoop }

func (d *DemoLoop) Validate() error {
	for i, e := range d.Entries {
		if e.PrimaryLump == "" {
			return fmt.Errorf("%w: entries[%d].primarylump is empty", ErrInvalidField, i)
		}
		if e.Type == DemoArtScreen && e.Duration <= 0 {
			return fmt.Errorf("%w: entries[%d].duration must be positive for an art screen", ErrInvalidField, i)
		}
	}
	return nil
}
