package compat

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLine indicates an options line that is not exactly "name value".
	ErrMalformedLine = errors.New("malformed option line")
	// ErrUnknownOption indicates an option name missing from the catalog.
	ErrUnknownOption = errors.New("unknown option")
	// ErrInvalidValue indicates a value token that is not a non-negative integer.
	ErrInvalidValue = errors.New("invalid option value")
	// ErrInvalidEnumValue indicates an ordinal with no matching enum state.
	ErrInvalidEnumValue = errors.New("invalid enum value")
	// ErrUnknownTier indicates an executable token that names no runtime tier.
	ErrUnknownTier = errors.New("unknown executable")
	// ErrOptionShapeMismatch indicates a value whose kind differs from the option's kind.
	ErrOptionShapeMismatch = errors.New("option value shape mismatch")
	// ErrOptionNotLegal indicates an option outside its tier range.
	ErrOptionNotLegal = errors.New("option not legal for executable")
)

// LineError reports a decode failure on one line of an options string.
type LineError struct {
	Line int    // 1-based
	Text string // the offending line
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("options line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
