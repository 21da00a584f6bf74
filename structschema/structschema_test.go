package structschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickelectric/blueberry/endian"
	"github.com/patrickelectric/blueberry/record"
	"github.com/patrickelectric/blueberry/schema"
	"github.com/patrickelectric/blueberry/wire"
)

type plainField struct {
	Value uint32 `blueberry:""`
}

type unrecognizedKind struct {
	Value uint32 `blueberry:"kind=nope"`
}

type seqMissingElem struct {
	Values []uint16 `blueberry:"kind=seq"`
}

type seqNotASlice struct {
	Value uint32 `blueberry:"kind=seq,elem=u16"`
}

type taggedOnly struct {
	ID      uint32 `blueberry:"name=id,kind=u32"`
	Skipped string
}

type point struct {
	X uint16 `blueberry:"name=x,kind=u16"`
	Y uint16 `blueberry:"name=y,kind=u16"`
}

type polyline struct {
	Points []point `blueberry:"name=points,kind=seq,elem=record"`
}

func TestOf_RejectsMissingKind(t *testing.T) {
	_, err := Of(plainField{})
	assert.Error(t, err)
}

func TestOf_RejectsUnrecognizedKind(t *testing.T) {
	_, err := Of(unrecognizedKind{})
	assert.Error(t, err)
}

func TestOf_RejectsSeqWithoutElem(t *testing.T) {
	_, err := Of(seqMissingElem{})
	assert.Error(t, err)
}

func TestOf_RejectsSeqOnNonSliceField(t *testing.T) {
	_, err := Of(seqNotASlice{})
	assert.Error(t, err)
}

func TestOf_SkipsUntaggedFields(t *testing.T) {
	s, err := Of(taggedOnly{})
	require.NoError(t, err)
	require.Len(t, s.Fields, 1)
	assert.Equal(t, "id", s.Fields[0].Name)
	assert.Equal(t, wire.KindU32, s.Fields[0].Kind)
}

func TestOf_DefaultsNameToGoFieldName(t *testing.T) {
	type noNameTag struct {
		Count uint8 `blueberry:"kind=u8"`
	}
	s, err := Of(noNameTag{})
	require.NoError(t, err)
	require.Len(t, s.Fields, 1)
	assert.Equal(t, "Count", s.Fields[0].Name)
}

func TestSeqOfRecord_RoundTrip(t *testing.T) {
	in := polyline{Points: []point{{X: 1, Y: 2}, {X: 3, Y: 4}}}

	s, err := Of(&in)
	require.NoError(t, err)
	require.Len(t, s.Fields, 1)
	require.Equal(t, wire.KindSeq, s.Fields[0].Kind)
	require.Equal(t, wire.KindRecord, s.Fields[0].Elem.Kind)

	rec, err := Wrap(&in, s)
	require.NoError(t, err)

	engine := endian.GetLittleEndianEngine()
	buf, err := record.Encode(s, rec, engine, 0)
	require.NoError(t, err)

	newBuilder := func() schema.Builder {
		b, err := NewBuilder(s, &in)
		require.NoError(t, err)

		return b
	}
	value, err := record.Decode(s, buf, 0, engine, newBuilder)
	require.NoError(t, err)

	out, ok := value.(*polyline)
	require.True(t, ok)
	assert.Equal(t, in, *out)
}

func TestInfoOf_CachesByType(t *testing.T) {
	s1, err := Of(taggedOnly{})
	require.NoError(t, err)
	s2, err := Of(taggedOnly{})
	require.NoError(t, err)
	assert.Same(t, s1, s2)
}
