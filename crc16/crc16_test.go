package crc16

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum_KnownVector(t *testing.T) {
	// The standard CRC-16/CCITT-FALSE check value for the ASCII string
	// "123456789".
	assert.Equal(t, uint16(0x29B1), Checksum([]byte("123456789")))
}

func TestChecksum_Empty(t *testing.T) {
	assert.Equal(t, uint16(0xFFFF), Checksum(nil))
}

func TestChecksum_SingleBitFlipChangesResult(t *testing.T) {
	data := []byte{0x42, 0x00, 0x01, 0x00, 0x05, 0x00, 0x07, 0x00}
	base := Checksum(data)

	flipped := append([]byte(nil), data...)
	flipped[3] ^= 0x01
	assert.NotEqual(t, base, Checksum(flipped))
}
