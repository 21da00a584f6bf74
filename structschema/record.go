package structschema

import (
	"reflect"

	"github.com/patrickelectric/blueberry/schema"
	"github.com/patrickelectric/blueberry/wire"
)

// Wrap exposes v (a struct, or pointer to one, matching the Go type s was
// built from) as a schema.Record.
func Wrap(v any, s *schema.Schema) (schema.Record, error) {
	info, err := infoOf(reflect.TypeOf(v))
	if err != nil {
		return nil, err
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}

	return &structRecord{v: rv, info: info}, nil
}

type structRecord struct {
	v    reflect.Value
	info *structInfo
}

func (r *structRecord) FieldValue(i int) any {
	return toWireValue(r.v.Field(r.info.fields[i].goIndex), &r.info.schema.Fields[i], &r.info.fields[i])
}

func toWireValue(rv reflect.Value, f *schema.Field, meta *fieldMeta) any {
	switch f.Kind {
	case wire.KindSeq:
		n := rv.Len()
		out := make([]any, n)
		for i := 0; i < n; i++ {
			out[i] = toWireValue(rv.Index(i), f.Elem, meta.elem)
		}

		return out
	case wire.KindRecord:
		rec, _ := Wrap(rv.Interface(), f.Sub)

		return rec
	default:
		return rv.Interface()
	}
}

// NewBuilder returns a schema.Builder that accumulates decoded values and
// constructs a new value of the struct type s was built from.
func NewBuilder(s *schema.Schema, goType any) (schema.Builder, error) {
	info, err := infoOf(reflect.TypeOf(goType))
	if err != nil {
		return nil, err
	}

	return newBuilder(info), nil
}

func newBuilder(info *structInfo) schema.Builder {
	return &structBuilder{v: reflect.New(info.goType).Elem(), info: info}
}

type structBuilder struct {
	v    reflect.Value
	info *structInfo
}

func (b *structBuilder) SetField(i int, value any) {
	meta := &b.info.fields[i]
	f := &b.info.schema.Fields[i]
	fv := b.v.Field(meta.goIndex)
	setWireValue(fv, f, meta, value)
}

func setWireValue(fv reflect.Value, f *schema.Field, meta *fieldMeta, value any) {
	switch f.Kind {
	case wire.KindSeq:
		values, _ := value.([]any)
		slice := reflect.MakeSlice(meta.goType, len(values), len(values))
		for i, v := range values {
			setWireValue(slice.Index(i), f.Elem, meta.elem, v)
		}
		fv.Set(slice)
	case wire.KindRecord:
		fv.Set(reflect.ValueOf(value).Elem())
	default:
		fv.Set(reflect.ValueOf(value))
	}
}

func (b *structBuilder) Build() any {
	return b.v.Addr().Interface()
}
