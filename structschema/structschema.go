// Package structschema adapts ordinary Go structs to package schema via
// reflection and a `blueberry` struct tag, the same division of labor
// encoding/json uses for its tag-driven struct walk: reflect once per
// type, cache the result, and drive every later encode/decode off the
// cached field list instead of re-walking the type.
//
// Tag format: `blueberry:"name=...,kind=...,elem=..."`. kind is required
// and must be one of the wire.Kind names (u8, i8, u16, ..., bool, string,
// seq, record); name defaults to the Go field name when omitted; elem is
// required when kind=seq and is itself a wire.Kind name. Fields without a
// `blueberry` tag are skipped. seq<record> and record fields recurse into
// the referenced Go struct type, which must itself be tag-annotated.
package structschema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/patrickelectric/blueberry/schema"
	"github.com/patrickelectric/blueberry/wire"
)

// fieldMeta mirrors one schema.Field with the reflection bookkeeping
// needed to read and write it: which Go struct field it comes from, and
// (for seq/record fields) the metadata of what it contains.
type fieldMeta struct {
	goIndex int
	goType  reflect.Type
	elem    *fieldMeta
	sub     *structInfo
}

// structInfo is a struct type's resolved schema, plus per-field metadata
// in the same order as Schema.Fields.
type structInfo struct {
	schema *schema.Schema
	fields []fieldMeta
	goType reflect.Type
}

var infoCache sync.Map // map[reflect.Type]*structInfo

func underlyingStructType(t reflect.Type) (reflect.Type, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("structschema: %s is not a struct", t)
	}

	return t, nil
}

// Of returns the Schema describing v's struct type.
func Of(v any) (*schema.Schema, error) {
	info, err := infoOf(reflect.TypeOf(v))
	if err != nil {
		return nil, err
	}

	return info.schema, nil
}

func infoOf(t reflect.Type) (*structInfo, error) {
	t, err := underlyingStructType(t)
	if err != nil {
		return nil, err
	}
	if cached, ok := infoCache.Load(t); ok {
		return cached.(*structInfo), nil
	}

	info := &structInfo{goType: t}
	var fields []schema.Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, ok := sf.Tag.Lookup("blueberry")
		if !ok {
			continue
		}
		f, meta, err := parseField(sf, tag)
		if err != nil {
			return nil, err
		}
		meta.goIndex = i
		fields = append(fields, f)
		info.fields = append(info.fields, meta)
	}

	s := &schema.Schema{Fields: fields}
	info.schema = s

	// Store before recursing into nested struct types so a type that
	// (directly or indirectly) references itself resolves instead of
	// looping forever.
	infoCache.Store(t, info)

	for i := range info.fields {
		if err := resolveNested(&fields[i], &info.fields[i]); err != nil {
			return nil, err
		}
	}

	// Validate only once record fields and elements carry their resolved
	// sub-schemas and builder factories.
	if err := s.Validate(); err != nil {
		infoCache.Delete(t)

		return nil, err
	}

	return info, nil
}

func resolveNested(f *schema.Field, meta *fieldMeta) error {
	switch f.Kind {
	case wire.KindRecord:
		sub, err := infoOf(meta.goType)
		if err != nil {
			return err
		}
		meta.sub = sub
		f.Sub = sub.schema
		f.NewBuilder = func() schema.Builder { return newBuilder(sub) }
	case wire.KindSeq:
		if f.Elem.Kind == wire.KindRecord {
			sub, err := infoOf(meta.elem.goType)
			if err != nil {
				return err
			}
			meta.elem.sub = sub
			f.Elem.Sub = sub.schema
			f.Elem.NewBuilder = func() schema.Builder { return newBuilder(sub) }
		}
	}

	return nil
}

func parseField(sf reflect.StructField, tag string) (schema.Field, fieldMeta, error) {
	name := sf.Name
	kindName := ""
	elemKindName := ""
	for _, part := range strings.Split(tag, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.TrimSpace(kv[0]) {
		case "name":
			name = kv[1]
		case "kind":
			kindName = kv[1]
		case "elem":
			elemKindName = kv[1]
		}
	}

	kind := wire.ParseKind(kindName)
	if kind == wire.KindInvalid {
		return schema.Field{}, fieldMeta{}, fmt.Errorf("structschema: field %q: missing or unrecognized kind %q", sf.Name, kindName)
	}

	f := schema.Field{Name: name, Kind: kind}
	meta := fieldMeta{goType: sf.Type}

	if kind == wire.KindSeq {
		elemKind := wire.ParseKind(elemKindName)
		if elemKind == wire.KindInvalid {
			return schema.Field{}, fieldMeta{}, fmt.Errorf("structschema: field %q: seq missing or unrecognized elem kind %q", sf.Name, elemKindName)
		}
		if sf.Type.Kind() != reflect.Slice {
			return schema.Field{}, fieldMeta{}, fmt.Errorf("structschema: field %q: kind=seq requires a Go slice field, got %s", sf.Name, sf.Type)
		}
		f.Elem = &schema.Field{Name: name + "[]", Kind: elemKind}
		meta.elem = &fieldMeta{goType: sf.Type.Elem()}
	}

	return f, meta, nil
}
