package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickelectric/blueberry/endian"
	"github.com/patrickelectric/blueberry/schema"
	"github.com/patrickelectric/blueberry/wire"
)

// values is a minimal schema.Record/schema.Builder pair backed by a plain
// slice, used so these tests exercise the codec without depending on the
// reflection-based adapter.
type values []any

func (v values) FieldValue(i int) any { return v[i] }

type builder struct{ vals values }

func (b *builder) SetField(i int, v any) {
	for len(b.vals) <= i {
		b.vals = append(b.vals, nil)
	}
	b.vals[i] = v
}
func (b *builder) Build() any { return b.vals }

func newBuilder() schema.Builder { return &builder{} }

func TestEncodeDecode_Scalars(t *testing.T) {
	s, err := schema.New([]schema.Field{
		{Name: "a", Kind: wire.KindU32},
		{Name: "b", Kind: wire.KindF32},
		{Name: "c", Kind: wire.KindU16},
	})
	require.NoError(t, err)

	rec := values{uint32(42), float32(23.5), uint16(65)}
	engine := endian.GetLittleEndianEngine()

	buf, err := Encode(s, rec, engine, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x2A, 0x00, 0x00, 0x00, 0x00, 0x00, 0xBC, 0x41, 0x41, 0x00}, buf)

	out, err := Decode(s, buf, 0, engine, newBuilder)
	require.NoError(t, err)
	assert.Equal(t, rec, out)
}

func TestEncodeDecode_BoolPackOfEight(t *testing.T) {
	fields := make([]schema.Field, 8)
	for i := range fields {
		fields[i] = schema.Field{Name: string(rune('a' + i)), Kind: wire.KindBool}
	}
	s, err := schema.New(fields)
	require.NoError(t, err)

	rec := values{true, false, true, false, true, true, false, true}
	engine := endian.GetLittleEndianEngine()

	buf, err := Encode(s, rec, engine, 0)
	require.NoError(t, err)
	require.Len(t, buf, 1)
	assert.Equal(t, byte(0xB5), buf[0])

	out, err := Decode(s, buf, 0, engine, newBuilder)
	require.NoError(t, err)
	assert.Equal(t, rec, out)
}

func TestEncodeDecode_MixedBoolPrimitive(t *testing.T) {
	s, err := schema.New([]schema.Field{
		{Name: "a", Kind: wire.KindBool},
		{Name: "b", Kind: wire.KindBool},
		{Name: "c", Kind: wire.KindBool},
		{Name: "x", Kind: wire.KindU16},
		{Name: "d", Kind: wire.KindBool},
	})
	require.NoError(t, err)

	rec := values{true, false, true, uint16(0x1234), true}
	engine := endian.GetLittleEndianEngine()

	buf, err := Encode(s, rec, engine, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x05, 0x00, 0x34, 0x12, 0x01}, buf)

	out, err := Decode(s, buf, 0, engine, newBuilder)
	require.NoError(t, err)
	assert.Equal(t, rec, out)
}

func TestEncodeDecode_StringAndSeq(t *testing.T) {
	s, err := schema.New([]schema.Field{
		{Name: "device_id", Kind: wire.KindU32},
		{Name: "name", Kind: wire.KindString},
		{Name: "readings", Kind: wire.KindSeq, Elem: &schema.Field{Name: "elem", Kind: wire.KindU16}},
		{Name: "online", Kind: wire.KindBool},
		{Name: "calibrated", Kind: wire.KindBool},
	})
	require.NoError(t, err)

	rec := values{
		uint32(100),
		"sensor-alpha",
		[]any{uint16(1023), uint16(2047), uint16(4095)},
		true,
		false,
	}
	engine := endian.GetLittleEndianEngine()

	buf, err := Encode(s, rec, engine, 8)
	require.NoError(t, err)

	// Encode's baseOffset=8 means descriptor offsets are measured as if buf
	// were appended after an 8-byte message header; reconstruct that full
	// buffer before decoding, exactly as the message framer does.
	full := append(make([]byte, 8), buf...)

	out, err := Decode(s, full, 8, engine, newBuilder)
	require.NoError(t, err)
	assert.Equal(t, rec, out)
}

func TestEncodeDecode_EmptyStringAndSeq(t *testing.T) {
	s, err := schema.New([]schema.Field{
		{Name: "name", Kind: wire.KindString},
		{Name: "readings", Kind: wire.KindSeq, Elem: &schema.Field{Name: "elem", Kind: wire.KindU16}},
	})
	require.NoError(t, err)

	rec := values{"", []any{}}
	engine := endian.GetLittleEndianEngine()

	buf, err := Encode(s, rec, engine, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, buf)

	out, err := Decode(s, buf, 0, engine, newBuilder)
	require.NoError(t, err)
	assert.Equal(t, rec, out)
}

func TestEncodeDecode_NestedRecord(t *testing.T) {
	inner, err := schema.New([]schema.Field{
		{Name: "x", Kind: wire.KindU16},
		{Name: "y", Kind: wire.KindU16},
	})
	require.NoError(t, err)

	outer, err := schema.New([]schema.Field{
		{Name: "id", Kind: wire.KindU8},
		{Name: "point", Kind: wire.KindRecord, Sub: inner, NewBuilder: newBuilder},
	})
	require.NoError(t, err)

	rec := values{uint8(7), values{uint16(10), uint16(20)}}
	engine := endian.GetLittleEndianEngine()

	buf, err := Encode(outer, rec, engine, 0)
	require.NoError(t, err)

	out, err := Decode(outer, buf, 0, engine, newBuilder)
	require.NoError(t, err)
	assert.Equal(t, rec, out)
}

func TestEncodeDecode_BoolsAroundNestedRecordShareByte(t *testing.T) {
	inner, err := schema.New([]schema.Field{
		{Name: "b", Kind: wire.KindBool},
	})
	require.NoError(t, err)

	outer, err := schema.New([]schema.Field{
		{Name: "a", Kind: wire.KindBool},
		{Name: "inner", Kind: wire.KindRecord, Sub: inner, NewBuilder: newBuilder},
		{Name: "c", Kind: wire.KindBool},
	})
	require.NoError(t, err)

	rec := values{true, values{true}, true}
	engine := endian.GetLittleEndianEngine()

	buf, err := Encode(outer, rec, engine, 0)
	require.NoError(t, err)

	// a, inner.b, and c must land in bits 0, 1, 2 of the same shared byte:
	// recursing into a nested record must not flush the bool packer.
	require.Len(t, buf, 1)
	assert.Equal(t, byte(0x07), buf[0])

	out, err := Decode(outer, buf, 0, engine, newBuilder)
	require.NoError(t, err)
	assert.Equal(t, rec, out)
}

func TestDecode_TruncatedScalar(t *testing.T) {
	s, err := schema.New([]schema.Field{{Name: "a", Kind: wire.KindU32}})
	require.NoError(t, err)

	_, err = Decode(s, []byte{1, 2}, 0, endian.GetLittleEndianEngine(), newBuilder)
	assert.Error(t, err)
}
