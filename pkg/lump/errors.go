package lump

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrUnknownLumpType indicates an envelope "type" this package does not model.
	ErrUnknownLumpType = errors.New("unknown lump type")
	// ErrInvalidVersion indicates a version string that is not "major.minor.revision".
	ErrInvalidVersion = errors.New("invalid lump version")
	// ErrMissingData indicates an envelope without a "data" member.
	ErrMissingData = errors.New("lump has no data")
	// ErrInvalidEnum indicates an integer code with no matching enum state.
	ErrInvalidEnum = errors.New("invalid enum code")
	// ErrInvalidFrameType indicates an interlevel frame type with several duration bits set.
	ErrInvalidFrameType = errors.New("invalid frame type")
	// ErrInvalidAlignment indicates a status bar alignment with both bits of one axis set.
	ErrInvalidAlignment = errors.New("invalid alignment")
	// ErrInvalidField indicates a semantically invalid payload field.
	ErrInvalidField = errors.New("invalid field")
)

// decodeEnum parses a JSON integer and checks it against the number of states.
func decodeEnum(data []byte, count int, what string) (uint8, error) {
	n, err := strconv.ParseUint(string(data), 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %s", ErrInvalidEnum, what, data)
	}
	if int(n) >= count {
		return 0, fmt.Errorf("%w: %s %d", ErrInvalidEnum, what, n)
	}
	return uint8(n), nil
}
