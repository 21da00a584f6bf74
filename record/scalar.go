package record

import (
	"fmt"
	"math"

	"github.com/patrickelectric/blueberry/endian"
	"github.com/patrickelectric/blueberry/errs"
	"github.com/patrickelectric/blueberry/wire"
)

// appendScalar encodes value (whose concrete Go type must match kind) as
// kind.Size() little-endian bytes appended to buf.
func appendScalar(buf []byte, engine endian.EndianEngine, kind wire.Kind, value any, fieldName string) ([]byte, error) {
	switch kind {
	case wire.KindU8:
		v, ok := value.(uint8)
		if !ok {
			return nil, typeErr(fieldName, kind, value)
		}

		return append(buf, v), nil
	case wire.KindI8:
		v, ok := value.(int8)
		if !ok {
			return nil, typeErr(fieldName, kind, value)
		}

		return append(buf, byte(v)), nil
	case wire.KindU16:
		v, ok := value.(uint16)
		if !ok {
			return nil, typeErr(fieldName, kind, value)
		}

		return engine.AppendUint16(buf, v), nil
	case wire.KindI16:
		v, ok := value.(int16)
		if !ok {
			return nil, typeErr(fieldName, kind, value)
		}

		return engine.AppendUint16(buf, uint16(v)), nil
	case wire.KindU32:
		v, ok := value.(uint32)
		if !ok {
			return nil, typeErr(fieldName, kind, value)
		}

		return engine.AppendUint32(buf, v), nil
	case wire.KindI32:
		v, ok := value.(int32)
		if !ok {
			return nil, typeErr(fieldName, kind, value)
		}

		return engine.AppendUint32(buf, uint32(v)), nil
	case wire.KindU64:
		v, ok := value.(uint64)
		if !ok {
			return nil, typeErr(fieldName, kind, value)
		}

		return engine.AppendUint64(buf, v), nil
	case wire.KindI64:
		v, ok := value.(int64)
		if !ok {
			return nil, typeErr(fieldName, kind, value)
		}

		return engine.AppendUint64(buf, uint64(v)), nil
	case wire.KindF32:
		v, ok := value.(float32)
		if !ok {
			return nil, typeErr(fieldName, kind, value)
		}

		return engine.AppendUint32(buf, math.Float32bits(v)), nil
	case wire.KindF64:
		v, ok := value.(float64)
		if !ok {
			return nil, typeErr(fieldName, kind, value)
		}

		return engine.AppendUint64(buf, math.Float64bits(v)), nil
	default:
		return nil, fmt.Errorf("%w: field %q: %s is not a scalar kind", errs.ErrSchemaMismatch, fieldName, kind)
	}
}

// readScalar decodes kind.Size() little-endian bytes from data[pos:] into
// the Go value type corresponding to kind.
func readScalar(data []byte, pos int, engine endian.EndianEngine, kind wire.Kind, fieldName string) (any, int, error) {
	size := kind.Size()
	if pos+size > len(data) {
		return nil, pos, fmt.Errorf("%w: field %q: %d bytes requested at offset %d, %d available", errs.ErrTruncated, fieldName, size, pos, len(data)-pos)
	}

	b := data[pos : pos+size]
	switch kind {
	case wire.KindU8:
		return b[0], pos + 1, nil
	case wire.KindI8:
		return int8(b[0]), pos + 1, nil
	case wire.KindU16:
		return engine.Uint16(b), pos + 2, nil
	case wire.KindI16:
		return int16(engine.Uint16(b)), pos + 2, nil
	case wire.KindU32:
		return engine.Uint32(b), pos + 4, nil
	case wire.KindI32:
		return int32(engine.Uint32(b)), pos + 4, nil
	case wire.KindU64:
		return engine.Uint64(b), pos + 8, nil
	case wire.KindI64:
		return int64(engine.Uint64(b)), pos + 8, nil
	case wire.KindF32:
		return math.Float32frombits(engine.Uint32(b)), pos + 4, nil
	case wire.KindF64:
		return math.Float64frombits(engine.Uint64(b)), pos + 8, nil
	default:
		return nil, pos, fmt.Errorf("%w: field %q: %s is not a scalar kind", errs.ErrSchemaMismatch, fieldName, kind)
	}
}

func typeErr(fieldName string, kind wire.Kind, value any) error {
	return fmt.Errorf("%w: field %q: value %v (%T) does not match wire kind %s", errs.ErrSchemaMismatch, fieldName, value, value, kind)
}

func alignUp(buf []byte, align int) []byte {
	for len(buf)%align != 0 {
		buf = append(buf, 0)
	}

	return buf
}

func alignPos(pos, align int) int {
	rem := pos % align
	if rem == 0 {
		return pos
	}

	return pos + (align - rem)
}
