// Package schema describes a record's shape: an ordered field list
// annotated with wire kinds, plus the Record/Builder interfaces a
// reflection layer implements to read and construct values. The codec
// packages (record, message, packet) operate purely against a Schema and
// never know how one was obtained — see package structschema for one
// concrete (reflect + struct-tag) adapter.
package schema

import (
	"fmt"

	"github.com/patrickelectric/blueberry/errs"
	"github.com/patrickelectric/blueberry/internal/hash"
	"github.com/patrickelectric/blueberry/wire"
)

// Field describes one field of a record schema.
type Field struct {
	// Name identifies the field for diagnostics; it never appears on the wire.
	Name string
	// Kind is the field's wire representation.
	Kind wire.Kind
	// Elem describes the element kind when Kind == wire.KindSeq. Its Name is
	// unused.
	Elem *Field
	// Sub is the nested schema when Kind == wire.KindRecord: an inline record
	// field, or a seq's Elem describing a record sequence element.
	Sub *Schema
	// NewBuilder constructs a Builder for a nested record value. Required
	// when Kind == wire.KindRecord, or on Elem when Elem.Kind == wire.KindRecord.
	NewBuilder func() Builder
}

// Schema is an ordered list of fields, the unit the codec encodes and
// decodes against.
type Schema struct {
	Fields []Field
}

// New builds a Schema from an ordered field list and validates it.
func New(fields []Field) (*Schema, error) {
	s := &Schema{Fields: fields}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// FieldCount returns the number of top-level fields, used to compute a
// message header's max_ordinal.
func (s *Schema) FieldCount() int {
	return len(s.Fields)
}

// MaxOrdinal returns the message-header max_ordinal value for this schema:
// the ordinal of the last body field. Ordinals 0..wire.HeaderFieldCount-1
// are reserved for the header quantities themselves, so body fields start
// at wire.HeaderFieldCount and the last one lands at
// FieldCount()+wire.HeaderFieldCount-1.
func (s *Schema) MaxOrdinal() uint8 {
	return uint8(s.FieldCount() + wire.HeaderFieldCount - 1)
}

// Validate checks that every field and, recursively, every nested/element
// schema, uses a recognized wire kind, that seq elements are not themselves
// seq or string and do not contain one in a record element's fields
// (unsupported nesting is rejected outright rather than allowed to encode
// ambiguously), and that record fields/elements carry a sub-schema and
// builder factory.
func (s *Schema) Validate() error {
	for i := range s.Fields {
		if err := validateField(&s.Fields[i], false); err != nil {
			return err
		}
	}

	return nil
}

func validateField(f *Field, insideSeq bool) error {
	switch f.Kind {
	case wire.KindU8, wire.KindI8, wire.KindU16, wire.KindI16,
		wire.KindU32, wire.KindI32, wire.KindU64, wire.KindI64,
		wire.KindF32, wire.KindF64, wire.KindBool:
		return nil
	case wire.KindString:
		if insideSeq {
			return fmt.Errorf("%w: field %q: seq<string> is not supported", errs.ErrSchemaMismatch, f.Name)
		}

		return nil
	case wire.KindSeq:
		if insideSeq {
			return fmt.Errorf("%w: field %q: seq<seq<...>> is not supported", errs.ErrSchemaMismatch, f.Name)
		}
		if f.Elem == nil {
			return fmt.Errorf("%w: field %q: seq field missing element kind", errs.ErrSchemaMismatch, f.Name)
		}

		return validateField(f.Elem, true)
	case wire.KindRecord:
		if f.Sub == nil {
			return fmt.Errorf("%w: field %q: record field missing sub-schema", errs.ErrSchemaMismatch, f.Name)
		}
		if f.NewBuilder == nil {
			return fmt.Errorf("%w: field %q: record field missing builder factory", errs.ErrSchemaMismatch, f.Name)
		}
		if insideSeq {
			// A record element's fields are packed inside the seq block too.
			for i := range f.Sub.Fields {
				if err := validateField(&f.Sub.Fields[i], true); err != nil {
					return err
				}
			}

			return nil
		}

		return f.Sub.Validate()
	default:
		return fmt.Errorf("%w: field %q: missing or unrecognized wire kind", errs.ErrSchemaMismatch, f.Name)
	}
}

// ElemByteSize returns the packed, unaligned byte size of one block element
// described by f (a seq's Elem field). It is computed statically from the
// schema rather than by measuring an encoded element, since every
// supported element kind has a fixed width. Scalars and bool are their
// normal size (bool is 1 packed byte inside a block, never bit-packed);
// record elements are the sum of their fields', computed recursively.
func ElemByteSize(f *Field) (int, error) {
	switch f.Kind {
	case wire.KindBool:
		return 1, nil
	case wire.KindRecord:
		total := 0
		for i := range f.Sub.Fields {
			n, err := ElemByteSize(&f.Sub.Fields[i])
			if err != nil {
				return 0, err
			}
			total += n
		}

		return total, nil
	default:
		if !f.Kind.IsScalar() {
			return 0, fmt.Errorf("%w: field %q: kind %s has no fixed element size", errs.ErrSchemaMismatch, f.Name, f.Kind)
		}

		return f.Kind.Size(), nil
	}
}

// Fingerprint returns a 64-bit xxHash64 digest of the schema's ordered
// field names and kinds. It never appears on the wire (Blueberry payloads
// are not self-describing); it exists purely so diagnostics and caller-side
// compatibility checks can identify which schema version a decode was
// attempted against.
func (s *Schema) Fingerprint() uint64 {
	var b []byte
	for _, f := range s.Fields {
		b = append(b, f.Name...)
		b = append(b, ':', byte(f.Kind), ';')
	}

	return hash.ID(string(b))
}

// Record is implemented by a schema adapter to expose a value's field
// contents in schema order, for encoding.
type Record interface {
	// FieldValue returns the value of the i-th field (0-based, in schema
	// field order). Its concrete type must match the field's wire kind.
	FieldValue(i int) any
}

// Builder is implemented by a schema adapter to accumulate decoded field
// values and construct a record value, for decoding.
type Builder interface {
	// SetField stores the decoded value of the i-th field (0-based, in
	// schema field order).
	SetField(i int, v any)
	// Build returns the constructed record value.
	Build() any
}
