// Package message frames a single encoded record body into a Blueberry
// message: an 8-byte header carrying routing keys and length, followed by
// the record's head and data blocks padded to a word boundary.
package message

import (
	"fmt"

	"github.com/patrickelectric/blueberry/endian"
	"github.com/patrickelectric/blueberry/errs"
	"github.com/patrickelectric/blueberry/wire"
)

// Header is the 8-byte prefix of every message.
type Header struct {
	// ModuleKey and MessageKey are the two 16-bit halves of the header's
	// first word, high and low respectively.
	ModuleKey  uint16
	MessageKey uint16
	// Length is the total message length in 4-byte words, including the
	// header itself.
	Length uint16
	// MaxOrdinal is field_count + wire.HeaderFieldCount - 1, the ordinal of
	// the last body field.
	MaxOrdinal uint8
	// TBD is reserved and always zero.
	TBD uint8
}

// ByteLen returns the message's total length in bytes (Length * 4).
func (h Header) ByteLen() int {
	return int(h.Length) * wire.WordSize
}

// Bytes encodes h as wire.MessageHeaderSize bytes.
func (h Header) Bytes(engine endian.EndianEngine) []byte {
	buf := make([]byte, 0, wire.MessageHeaderSize)
	key := uint32(h.ModuleKey)<<16 | uint32(h.MessageKey)
	buf = engine.AppendUint32(buf, key)
	buf = engine.AppendUint16(buf, h.Length)
	buf = append(buf, h.MaxOrdinal, h.TBD)

	return buf
}

// ParseHeader reads a message header from the first wire.MessageHeaderSize
// bytes of data.
func ParseHeader(data []byte, engine endian.EndianEngine) (Header, error) {
	if len(data) < wire.MessageHeaderSize {
		return Header{}, fmt.Errorf("%w: message header needs %d bytes, got %d", errs.ErrTruncated, wire.MessageHeaderSize, len(data))
	}
	key := engine.Uint32(data[0:4])

	return Header{
		ModuleKey:  uint16(key >> 16),
		MessageKey: uint16(key),
		Length:     engine.Uint16(data[4:6]),
		MaxOrdinal: data[6],
		TBD:        data[7],
	}, nil
}
