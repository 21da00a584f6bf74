package record

import (
	"fmt"
	"unicode/utf8"

	"github.com/patrickelectric/blueberry/endian"
	"github.com/patrickelectric/blueberry/errs"
	"github.com/patrickelectric/blueberry/schema"
	"github.com/patrickelectric/blueberry/wire"
)

// appendElement packs one seq/record element into buf: no alignment, bools
// as a single 0/1 byte (never bit-packed), nested records flattened
// recursively.
func appendElement(buf []byte, engine endian.EndianEngine, f *schema.Field, value any) ([]byte, error) {
	switch f.Kind {
	case wire.KindBool:
		v, ok := value.(bool)
		if !ok {
			return nil, typeErr(f.Name, f.Kind, value)
		}
		if v {
			return append(buf, 1), nil
		}

		return append(buf, 0), nil
	case wire.KindRecord:
		rec, ok := value.(schema.Record)
		if !ok {
			return nil, typeErr(f.Name, f.Kind, value)
		}
		for i := range f.Sub.Fields {
			var err error
			buf, err = appendElement(buf, engine, &f.Sub.Fields[i], rec.FieldValue(i))
			if err != nil {
				return nil, err
			}
		}

		return buf, nil
	default:
		return appendScalar(buf, engine, f.Kind, value, f.Name)
	}
}

// readElement is the decode-side mirror of appendElement.
func readElement(data []byte, pos int, engine endian.EndianEngine, f *schema.Field) (any, int, error) {
	switch f.Kind {
	case wire.KindBool:
		if pos >= len(data) {
			return nil, pos, fmt.Errorf("%w: field %q: no byte remaining for packed bool element", errs.ErrTruncated, f.Name)
		}

		return data[pos] != 0, pos + 1, nil
	case wire.KindRecord:
		builder := f.NewBuilder()
		for i := range f.Sub.Fields {
			v, newPos, err := readElement(data, pos, engine, &f.Sub.Fields[i])
			if err != nil {
				return nil, pos, err
			}
			builder.SetField(i, v)
			pos = newPos
		}

		return builder.Build(), pos, nil
	default:
		return readScalar(data, pos, engine, f.Kind, f.Name)
	}
}

// buildStringBlock returns the 4-byte-padded block body [u32 len, utf-8
// bytes] for a non-empty string.
func buildStringBlock(engine endian.EndianEngine, s string) []byte {
	buf := engine.AppendUint32(make([]byte, 0, 4+len(s)), uint32(len(s)))
	buf = append(buf, s...)

	return alignUp(buf, wire.WordSize)
}

// buildSeqBlock returns the 4-byte-padded block body [u32 count, packed
// elements...] for a non-empty sequence.
func buildSeqBlock(engine endian.EndianEngine, elemField *schema.Field, values []any) ([]byte, error) {
	buf := engine.AppendUint32(make([]byte, 0, 4+4*len(values)), uint32(len(values)))
	for i, v := range values {
		var err error
		buf, err = appendElement(buf, engine, elemField, v)
		if err != nil {
			return nil, fmt.Errorf("seq %q[%d]: %w", elemField.Name, i, err)
		}
	}

	return alignUp(buf, wire.WordSize), nil
}

// readStringBlock reads the [u32 len, utf-8 bytes] block at data[offset:].
func readStringBlock(data []byte, offset int, fieldName string) (string, error) {
	if offset < 0 || offset+4 > len(data) {
		return "", fmt.Errorf("%w: field %q: string block offset %d out of range", errs.ErrTruncated, fieldName, offset)
	}
	n := int(littleEndian32(data[offset : offset+4]))
	start, end := offset+4, offset+4+n
	if end > len(data) {
		return "", fmt.Errorf("%w: field %q: string block length %d exceeds buffer", errs.ErrTruncated, fieldName, n)
	}
	if !utf8.Valid(data[start:end]) {
		return "", fmt.Errorf("%w: field %q: string block is not valid UTF-8", errs.ErrSchemaMismatch, fieldName)
	}

	return string(data[start:end]), nil
}

// readSeqBlock reads the [u32 count, packed elements...] block at
// data[offset:].
func readSeqBlock(data []byte, offset int, engine endian.EndianEngine, elemField *schema.Field) ([]any, error) {
	if offset < 0 || offset+4 > len(data) {
		return nil, fmt.Errorf("%w: field %q: seq block offset %d out of range", errs.ErrTruncated, elemField.Name, offset)
	}
	count := int(littleEndian32(data[offset : offset+4]))
	pos := offset + 4
	values := make([]any, count)
	for i := 0; i < count; i++ {
		v, newPos, err := readElement(data, pos, engine, elemField)
		if err != nil {
			return nil, fmt.Errorf("seq %q[%d]: %w", elemField.Name, i, err)
		}
		values[i] = v
		pos = newPos
	}

	return values, nil
}

func littleEndian32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
