package message

import (
	"fmt"

	"github.com/patrickelectric/blueberry/endian"
	"github.com/patrickelectric/blueberry/errs"
	"github.com/patrickelectric/blueberry/record"
	"github.com/patrickelectric/blueberry/schema"
	"github.com/patrickelectric/blueberry/wire"
)

// Encode builds a word-aligned message carrying rec's fields under
// moduleKey/messageKey.
func Encode(s *schema.Schema, rec schema.Record, moduleKey, messageKey uint16, engine endian.EndianEngine) ([]byte, error) {
	body, err := record.Encode(s, rec, engine, wire.MessageHeaderSize)
	if err != nil {
		return nil, err
	}

	h := Header{
		ModuleKey:  moduleKey,
		MessageKey: messageKey,
		MaxOrdinal: s.MaxOrdinal(),
	}

	total := wire.RoundUpWord(wire.MessageHeaderSize + len(body))
	h.Length = uint16(total / wire.WordSize)

	out := make([]byte, 0, total)
	out = append(out, h.Bytes(engine)...)
	out = append(out, body...)
	for len(out) < total {
		out = append(out, 0)
	}

	return out, nil
}

// Empty returns the 8-byte message for a schema with no body fields.
func Empty(moduleKey, messageKey uint16, engine endian.EndianEngine) []byte {
	h := Header{
		ModuleKey:  moduleKey,
		MessageKey: messageKey,
		Length:     uint16(wire.MessageHeaderSize / wire.WordSize),
		MaxOrdinal: wire.HeaderFieldCount - 1,
	}

	return h.Bytes(engine)
}

// Decode reads the header and body out of data, which must contain at
// least one full message starting at offset 0. Trailing bytes beyond the
// header's declared length are ignored.
func Decode(s *schema.Schema, data []byte, engine endian.EndianEngine, newBuilder func() schema.Builder) (Header, any, error) {
	h, err := ParseHeader(data, engine)
	if err != nil {
		return Header{}, nil, err
	}

	byteLen := h.ByteLen()
	if byteLen < wire.MessageHeaderSize {
		return Header{}, nil, fmt.Errorf("%w: message length %d is smaller than the header", errs.ErrTruncated, byteLen)
	}
	if len(data) < byteLen {
		return Header{}, nil, fmt.Errorf("%w: message declares %d bytes, buffer has %d", errs.ErrTruncated, byteLen, len(data))
	}

	value, err := record.Decode(s, data[:byteLen], wire.MessageHeaderSize, engine, newBuilder)
	if err != nil {
		return Header{}, nil, err
	}

	return h, value, nil
}
