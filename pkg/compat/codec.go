package compat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Encode writes one "name code" line per option in name order, joined by
// newlines. An empty set encodes to "".
func Encode(o *Options) string {
	var b strings.Builder
	for opt, v := range o.All() {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(opt.Name())
		b.WriteByte(' ')
		b.WriteString(strconv.FormatUint(uint64(v.Code()), 10))
	}
	return b.String()
}

// Decode parses the newline-separated "name value" format. Any bad line fails
// the whole decode with a *LineError. A later line for the same option
// replaces an earlier one.
func Decode(s string) (*Options, error) {
	o := NewOptions()
	if s == "" {
		return o, nil
	}
	for i, line := range strings.Split(s, "\n") {
		line = strings.TrimSuffix(line, "\r")
		opt, v, err := decodeLine(line)
		if err != nil {
			return nil, &LineError{Line: i + 1, Text: line, Err: err}
		}
		o.put(opt, v)
	}
	return o, nil
}

func decodeLine(line string) (CompOption, Value, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, Value{}, fmt.Errorf("%w: want 2 fields, got %d", ErrMalformedLine, len(fields))
	}

	opt, err := ParseCompOption(fields[0])
	if err != nil {
		return 0, Value{}, err
	}

	code, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, Value{}, fmt.Errorf("%w: %q", ErrInvalidValue, fields[1])
	}

	v, err := valueFromCode(opt.Kind(), code, opt.IntMax())
	if err != nil {
		return 0, Value{}, err
	}
	return opt, v, nil
}

func (o *Options) String() string {
	return Encode(o)
}

// MarshalJSON writes the set as a single JSON string.
func (o Options) MarshalJSON() ([]byte, error) {
	return json.Marshal(Encode(&o))
}

// UnmarshalJSON accepts a JSON string or null; null yields an empty set.
func (o *Options) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.values = make(map[CompOption]Value)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("options: %w", err)
	}
	return o.UnmarshalText([]byte(s))
}

func (o Options) MarshalText() ([]byte, error) {
	return []byte(Encode(&o)), nil
}

func (o *Options) UnmarshalText(text []byte) error {
	decoded, err := Decode(string(text))
	if err != nil {
		return err
	}
	o.values = decoded.values
	return nil
}
