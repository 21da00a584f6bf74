package record

import (
	"fmt"

	"github.com/patrickelectric/blueberry/blockalloc"
	"github.com/patrickelectric/blueberry/boolpack"
	"github.com/patrickelectric/blueberry/endian"
	"github.com/patrickelectric/blueberry/internal/pool"
	"github.com/patrickelectric/blueberry/schema"
	"github.com/patrickelectric/blueberry/wire"
)

// encoder walks a schema field by field, building the head in place and
// handing variable-length payloads to a block allocator.
type encoder struct {
	engine endian.EndianEngine
	head   []byte
	boolw  boolpack.Writer
	alloc  blockalloc.Allocator
	// hasDescriptor is set once a string or seq descriptor is written.
	hasDescriptor bool
}

// Encode lays out rec's fields per s and returns the finalized head+blocks
// buffer. baseOffset is the position of the returned buffer's first byte
// within the enclosing message (wire.MessageHeaderSize for a message body,
// 0 for a standalone record); it is what descriptor offsets are measured
// against. A head holding a string or seq descriptor is padded to a word
// boundary before its blocks; a head without one is returned unpadded.
func Encode(s *schema.Schema, rec schema.Record, engine endian.EndianEngine, baseOffset int) ([]byte, error) {
	bb := pool.GetHeadBuffer()
	defer pool.PutHeadBuffer(bb)

	e := &encoder{engine: engine, head: bb.Bytes()}
	if err := e.writeFields(s.Fields, rec); err != nil {
		return nil, err
	}
	e.boolw.Flush()

	if !e.hasDescriptor {
		return append([]byte(nil), e.head...), nil
	}

	out, err := e.alloc.Finalize(e.head, baseOffset)
	if err != nil {
		return nil, err
	}

	// out may alias the pooled buffer's backing array; the caller owns the
	// returned slice, so hand back a copy before the buffer is reused.
	return append([]byte(nil), out...), nil
}

func (e *encoder) writeFields(fields []schema.Field, rec schema.Record) error {
	for i := range fields {
		f := &fields[i]
		if err := e.writeField(f, rec.FieldValue(i)); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}

	return nil
}

func (e *encoder) writeField(f *schema.Field, value any) error {
	switch f.Kind {
	case wire.KindBool:
		v, ok := value.(bool)
		if !ok {
			return typeErr(f.Name, f.Kind, value)
		}
		e.head = e.boolw.Write(e.head, v)

		return nil

	case wire.KindString:
		e.boolw.Flush()
		e.head = alignUp(e.head, 2)
		s, ok := value.(string)
		if !ok {
			return typeErr(f.Name, f.Kind, value)
		}
		placeholder := len(e.head)
		e.head = e.engine.AppendUint16(e.head, 0)
		e.hasDescriptor = true
		if len(s) > 0 {
			idx := e.alloc.AppendBlock(buildStringBlock(e.engine, s))
			e.alloc.RequestFixup(placeholder, idx)
		}

		return nil

	case wire.KindSeq:
		e.boolw.Flush()
		e.head = alignUp(e.head, 2)
		values, ok := value.([]any)
		if !ok {
			return typeErr(f.Name, f.Kind, value)
		}
		offsetPos := len(e.head)
		e.head = e.engine.AppendUint16(e.head, 0)
		e.hasDescriptor = true

		elemSize := 0
		if len(values) > 0 {
			var err error
			elemSize, err = schema.ElemByteSize(f.Elem)
			if err != nil {
				return err
			}
		}
		e.head = e.engine.AppendUint16(e.head, uint16(elemSize))

		if len(values) > 0 {
			block, err := buildSeqBlock(e.engine, f.Elem, values)
			if err != nil {
				return err
			}
			idx := e.alloc.AppendBlock(block)
			e.alloc.RequestFixup(offsetPos, idx)
		}

		return nil

	case wire.KindRecord:
		// Inlined: sub-fields are written as top-level fields, so a bool run
		// spanning the record boundary stays packed into the same byte.
		rec, ok := value.(schema.Record)
		if !ok {
			return typeErr(f.Name, f.Kind, value)
		}

		return e.writeFields(f.Sub.Fields, rec)

	default:
		e.boolw.Flush()
		e.head = alignUp(e.head, f.Kind.Align())
		var err error
		e.head, err = appendScalar(e.head, e.engine, f.Kind, value, f.Name)

		return err
	}
}
