// Package wire defines the closed set of Blueberry wire kinds and the
// constants that describe the on-wire layout of records, messages, and
// packets.
package wire

// Kind identifies the wire representation of a schema field or sequence
// element. The set is closed: codecs must reject any value outside it.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindU8
	KindI8
	KindU16
	KindI16
	KindU32
	KindI32
	KindU64
	KindI64
	KindF32
	KindF64
	KindBool
	KindString
	KindSeq
	KindRecord
)

// String returns the wire-kind name used in schema tags and diagnostics.
func (k Kind) String() string {
	switch k {
	case KindU8:
		return "u8"
	case KindI8:
		return "i8"
	case KindU16:
		return "u16"
	case KindI16:
		return "i16"
	case KindU32:
		return "u32"
	case KindI32:
		return "i32"
	case KindU64:
		return "u64"
	case KindI64:
		return "i64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindSeq:
		return "seq"
	case KindRecord:
		return "record"
	default:
		return "invalid"
	}
}

// IsScalar reports whether k is a fixed-width numeric kind (not bool,
// string, seq, or record).
func (k Kind) IsScalar() bool {
	switch k {
	case KindU8, KindI8, KindU16, KindI16, KindU32, KindI32, KindU64, KindI64, KindF32, KindF64:
		return true
	default:
		return false
	}
}

// Size returns the on-wire byte width of a scalar or bool kind. It panics
// for string/seq/record, which have no fixed size; callers must not call
// Size on those kinds (guarded by schema.Validate).
func (k Kind) Size() int {
	switch k {
	case KindU8, KindI8, KindBool:
		return 1
	case KindU16, KindI16:
		return 2
	case KindU32, KindI32, KindF32:
		return 4
	case KindU64, KindI64, KindF64:
		return 8
	default:
		panic("wire: Size called on non-fixed-width kind " + k.String())
	}
}

// Align returns the head-slot alignment for a scalar or bool kind:
// min(size, 4).
func (k Kind) Align() int {
	if s := k.Size(); s < 4 {
		return s
	}

	return 4
}

// ParseKind maps a wire-kind name (as used in struct tags) back to a Kind.
// It returns KindInvalid for unrecognized names.
func ParseKind(name string) Kind {
	switch name {
	case "u8":
		return KindU8
	case "i8":
		return KindI8
	case "u16":
		return KindU16
	case "i16":
		return KindI16
	case "u32":
		return KindU32
	case "i32":
		return KindI32
	case "u64":
		return KindU64
	case "i64":
		return KindI64
	case "f32":
		return KindF32
	case "f64":
		return KindF64
	case "bool":
		return KindBool
	case "string":
		return KindString
	case "seq":
		return KindSeq
	case "record":
		return KindRecord
	default:
		return KindInvalid
	}
}
