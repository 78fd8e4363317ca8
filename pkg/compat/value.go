package compat

import (
	"fmt"
	"strconv"

	"github.com/vovanwin/id24json/pkg/types"
)

// ClipMasked selects which masked midtextures are clipped to sector heights.
type ClipMasked uint8

const (
	ClipMaskedAll ClipMasked = iota
	ClipMaskedMultipatchOnly
	ClipMaskedNone
)

var clipMaskedNames = [...]string{
	ClipMaskedAll:            "all",
	ClipMaskedMultipatchOnly: "multipatchonly",
	ClipMaskedNone:           "none",
}

func (c ClipMasked) Valid() bool { return int(c) < len(clipMaskedNames) }

func (c ClipMasked) String() string {
	if !c.Valid() {
		return "clipmasked(" + strconv.Itoa(int(c)) + ")"
	}
	return clipMaskedNames[c]
}

// TexWidthClamp selects which textures have their width clamped to a power of two.
type TexWidthClamp uint8

const (
	TexWidthClampAll TexWidthClamp = iota
	TexWidthClampSolidWallsOnly
	TexWidthClampNone
)

var texWidthClampNames = [...]string{
	TexWidthClampAll:            "all",
	TexWidthClampSolidWallsOnly: "solidwallsonly",
	TexWidthClampNone:           "none",
}

func (t TexWidthClamp) Valid() bool { return int(t) < len(texWidthClampNames) }

func (t TexWidthClamp) String() string {
	if !t.Valid() {
		return "texwidthclamp(" + strconv.Itoa(int(t)) + ")"
	}
	return texWidthClampNames[t]
}

// EnumNames returns the state names of an enum kind indexed by ordinal.
// It returns nil for kinds that are not enumerations.
func EnumNames(k types.Kind) []string {
	switch k {
	case types.KindClipMasked:
		return clipMaskedNames[:]
	case types.KindTexWidthClamp:
		return texWidthClampNames[:]
	default:
		return nil
	}
}

// Value is the value held by one compatibility option. It is comparable, so
// two values are equal exactly when their kind and wire code match.
type Value struct {
	kind types.Kind
	code uint16
}

func Bool(b bool) Value {
	if b {
		return Value{kind: types.KindBool, code: 1}
	}
	return Value{kind: types.KindBool}
}

func Int(n uint16) Value {
	return Value{kind: types.KindInt, code: n}
}

func ClipMaskedValue(c ClipMasked) Value {
	return Value{kind: types.KindClipMasked, code: uint16(c)}
}

func TexWidthClampValue(t TexWidthClamp) Value {
	return Value{kind: types.KindTexWidthClamp, code: uint16(t)}
}

func (v Value) Kind() types.Kind { return v.kind }

// Code is the integer written to the wire.
func (v Value) Code() uint16 { return v.code }

func (v Value) Bool() (bool, bool) {
	return v.code != 0, v.kind == types.KindBool
}

func (v Value) Int() (uint16, bool) {
	return v.code, v.kind == types.KindInt
}

func (v Value) ClipMasked() (ClipMasked, bool) {
	return ClipMasked(v.code), v.kind == types.KindClipMasked
}

func (v Value) TexWidthClamp() (TexWidthClamp, bool) {
	return TexWidthClamp(v.code), v.kind == types.KindTexWidthClamp
}

func (v Value) String() string {
	switch v.kind {
	case types.KindBool:
		return strconv.FormatBool(v.code != 0)
	case types.KindInt:
		return strconv.Itoa(int(v.code))
	case types.KindClipMasked:
		return ClipMasked(v.code).String()
	case types.KindTexWidthClamp:
		return TexWidthClamp(v.code).String()
	default:
		return fmt.Sprintf("value(%d)", v.code)
	}
}

// valueFromCode interprets a wire integer for an option of the given kind and
// integer bound. Booleans accept any nonzero code, integers are clamped, enum
// ordinals must exist.
func valueFromCode(k types.Kind, code uint64, max uint16) (Value, error) {
	switch k {
	case types.KindBool:
		return Bool(code != 0), nil
	case types.KindInt:
		if code > uint64(max) {
			code = uint64(max)
		}
		return Int(uint16(code)), nil
	case types.KindClipMasked:
		if code >= uint64(len(clipMaskedNames)) {
			return Value{}, fmt.Errorf("%w: clipmasked %d", ErrInvalidEnumValue, code)
		}
		return ClipMaskedValue(ClipMasked(code)), nil
	case types.KindTexWidthClamp:
		if code >= uint64(len(texWidthClampNames)) {
			return Value{}, fmt.Errorf("%w: texwidthclamp %d", ErrInvalidEnumValue, code)
		}
		return TexWidthClampValue(TexWidthClamp(code)), nil
	default:
		return Value{}, fmt.Errorf("%w: kind %v", ErrOptionShapeMismatch, k)
	}
}
