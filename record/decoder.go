package record

import (
	"fmt"

	"github.com/patrickelectric/blueberry/boolpack"
	"github.com/patrickelectric/blueberry/endian"
	"github.com/patrickelectric/blueberry/errs"
	"github.com/patrickelectric/blueberry/schema"
	"github.com/patrickelectric/blueberry/wire"
)

// decoder mirrors encoder: it walks a schema field by field against a
// fixed head position while dereferencing block offsets that are absolute
// within data.
type decoder struct {
	data   []byte
	engine endian.EndianEngine
	pos    int
	boolr  boolpack.Reader
}

// Decode reads a record matching s out of data, with the head starting at
// headOffset (wire.MessageHeaderSize for a message body, 0 for a
// standalone record). Descriptor offsets inside the head are absolute
// positions within data, per the wire format. newBuilder constructs the
// top-level Builder used to accumulate field values.
func Decode(s *schema.Schema, data []byte, headOffset int, engine endian.EndianEngine, newBuilder func() schema.Builder) (any, error) {
	d := &decoder{data: data, engine: engine, pos: headOffset}
	builder := newBuilder()
	if err := d.readFields(s.Fields, builder); err != nil {
		return nil, err
	}
	d.boolr.Flush()

	return builder.Build(), nil
}

func (d *decoder) readFields(fields []schema.Field, builder schema.Builder) error {
	for i := range fields {
		f := &fields[i]
		if err := d.readField(f, builder, i); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}

	return nil
}

func (d *decoder) readField(f *schema.Field, builder schema.Builder, idx int) error {
	switch f.Kind {
	case wire.KindBool:
		v, newPos, err := d.boolr.Read(d.data, d.pos)
		if err != nil {
			return err
		}
		d.pos = newPos
		builder.SetField(idx, v)

		return nil

	case wire.KindString:
		d.boolr.Flush()
		d.pos = alignPos(d.pos, 2)
		if d.pos+2 > len(d.data) {
			return fmt.Errorf("%w: string descriptor truncated", errs.ErrTruncated)
		}
		offset := int(d.engine.Uint16(d.data[d.pos : d.pos+2]))
		d.pos += 2

		if offset == 0 {
			builder.SetField(idx, "")

			return nil
		}
		s, err := readStringBlock(d.data, offset, f.Name)
		if err != nil {
			return err
		}
		builder.SetField(idx, s)

		return nil

	case wire.KindSeq:
		d.boolr.Flush()
		d.pos = alignPos(d.pos, 2)
		if d.pos+4 > len(d.data) {
			return fmt.Errorf("%w: seq descriptor truncated", errs.ErrTruncated)
		}
		offset := int(d.engine.Uint16(d.data[d.pos : d.pos+2]))
		elemSize := int(d.engine.Uint16(d.data[d.pos+2 : d.pos+4]))
		d.pos += 4

		if offset == 0 {
			builder.SetField(idx, []any{})

			return nil
		}

		wantSize, err := schema.ElemByteSize(f.Elem)
		if err != nil {
			return err
		}
		if elemSize != wantSize {
			return fmt.Errorf("%w: field %q: descriptor element_byte_size %d does not match schema size %d",
				errs.ErrSchemaMismatch, f.Name, elemSize, wantSize)
		}

		values, err := readSeqBlock(d.data, offset, d.engine, f.Elem)
		if err != nil {
			return err
		}
		builder.SetField(idx, values)

		return nil

	case wire.KindRecord:
		// Inlined: sub-fields are read as top-level fields, so a bool run
		// spanning the record boundary stays packed into the same byte.
		subBuilder := f.NewBuilder()
		if err := d.readFields(f.Sub.Fields, subBuilder); err != nil {
			return err
		}
		builder.SetField(idx, subBuilder.Build())

		return nil

	default:
		d.boolr.Flush()
		d.pos = alignPos(d.pos, f.Kind.Align())
		v, newPos, err := readScalar(d.data, d.pos, d.engine, f.Kind, f.Name)
		if err != nil {
			return err
		}
		d.pos = newPos
		builder.SetField(idx, v)

		return nil
	}
}
