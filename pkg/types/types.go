package types

// Kind is the value shape a compatibility option holds.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindClipMasked
	KindTexWidthClamp
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindClipMasked:
		return "clipmasked"
	case KindTexWidthClamp:
		return "texwidthclamp"
	default:
		return "unknown"
	}
}

// IsEnum reports whether values of this kind are ordinals of a closed enumeration.
func (k Kind) IsEnum() bool {
	return k == KindClipMasked || k == KindTexWidthClamp
}
