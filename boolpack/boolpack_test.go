package boolpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_EightBoolsFillOneByte(t *testing.T) {
	var w Writer
	var buf []byte
	for _, v := range []bool{true, false, true, false, true, true, false, true} {
		buf = w.Write(buf, v)
	}
	require.Len(t, buf, 1)
	assert.Equal(t, byte(0xB5), buf[0])
}

func TestWriter_NineBoolsSpillIntoSecondByte(t *testing.T) {
	var w Writer
	var buf []byte
	for i := 0; i < 9; i++ {
		buf = w.Write(buf, true)
	}
	require.Len(t, buf, 2)
	assert.Equal(t, byte(0xFF), buf[0])
	assert.Equal(t, byte(0x01), buf[1])
}

func TestWriter_FlushStartsNewByte(t *testing.T) {
	var w Writer
	var buf []byte
	buf = w.Write(buf, true)
	w.Flush()
	buf = w.Write(buf, true)
	require.Len(t, buf, 2)
	assert.Equal(t, byte(0x01), buf[0])
	assert.Equal(t, byte(0x01), buf[1])
}

func TestReader_RoundTrip(t *testing.T) {
	values := []bool{true, false, true, false, true, true, false, true, true}

	var w Writer
	var buf []byte
	for _, v := range values {
		buf = w.Write(buf, v)
	}
	w.Flush()

	var r Reader
	pos := 0
	for i, want := range values {
		got, newPos, err := r.Read(buf, pos)
		require.NoError(t, err, "bit %d", i)
		assert.Equal(t, want, got, "bit %d", i)
		pos = newPos
	}
}

func TestReader_TruncatedReturnsError(t *testing.T) {
	var r Reader
	_, _, err := r.Read(nil, 0)
	assert.Error(t, err)
}
