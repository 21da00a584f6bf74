package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickelectric/blueberry/errs"
)

func sensorReadingMessage() []byte {
	return []byte{
		0x42, 0x00, 0x01, 0x00, 0x05, 0x00, 0x07, 0x00,
		0x2A, 0x00, 0x00, 0x00, 0x00, 0x00, 0xBC, 0x41,
		0x41, 0x00, 0x01, 0x00,
	}
}

func TestEncodeDecode_SensorReading_G1(t *testing.T) {
	got, err := Encode([][]byte{sensorReadingMessage()})
	require.NoError(t, err)

	want := append([]byte{0x42, 0x6C, 0x75, 0x65, 0x07, 0x00, 0xFF, 0x9B}, sensorReadingMessage()...)
	assert.Equal(t, want, got)

	h, messages, err := Decode(got)
	require.NoError(t, err)
	assert.Equal(t, uint16(7), h.LengthWords)
	assert.Equal(t, uint16(0x9BFF), h.CRC)
	require.Len(t, messages, 1)
	assert.Equal(t, sensorReadingMessage(), messages[0])
}

func TestEncodeDecode_EmptyMessage_G3(t *testing.T) {
	emptyMsg := []byte{0x02, 0x00, 0x01, 0x00, 0x02, 0x00, 0x02, 0x00}

	got, err := Encode([][]byte{emptyMsg})
	require.NoError(t, err)
	assert.Len(t, got, 16)

	h, messages, err := Decode(got)
	require.NoError(t, err)
	assert.Equal(t, uint16(4), h.LengthWords)
	require.Len(t, messages, 1)
	assert.Equal(t, emptyMsg, messages[0])
}

func TestEncodeDecode_MultiMessage_G6(t *testing.T) {
	u32Msg := func(value, module, message uint32) []byte {
		return []byte{
			byte(message), byte(message >> 8), byte(module), byte(module >> 8),
			0x03, 0x00, 0x03, 0x00,
			byte(value), byte(value >> 8), byte(value >> 16), byte(value >> 24),
		}
	}
	m1 := u32Msg(1, 0, 1)
	m2 := u32Msg(2, 0, 2)

	got, err := Encode([][]byte{m1, m2})
	require.NoError(t, err)

	_, messages, err := Decode(got)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, m1, messages[0])
	assert.Equal(t, m2, messages[1])
}

func TestDecode_BadMagic(t *testing.T) {
	data := append([]byte{0, 0, 0, 0}, sensorReadingMessage()...)
	_, _, err := Decode(data)
	assert.ErrorIs(t, err, errs.ErrBadMagic)
}

func TestDecode_CRCCorruption_G7(t *testing.T) {
	got, err := Encode([][]byte{sensorReadingMessage()})
	require.NoError(t, err)

	got[6] ^= 0xFF

	_, _, err = Decode(got)
	assert.ErrorIs(t, err, errs.ErrCRCMismatch)
}

func TestDecode_Truncated(t *testing.T) {
	got, err := Encode([][]byte{sensorReadingMessage()})
	require.NoError(t, err)

	_, _, err = Decode(got[:len(got)-4])
	assert.ErrorIs(t, err, errs.ErrTruncated)
}
