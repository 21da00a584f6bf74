// Package packet frames one or more already-encoded messages into a
// Blueberry packet: an 8-byte header carrying a magic, a word length, and
// a CRC-16-CCITT checksum, followed by the concatenated messages and
// terminal padding.
package packet

import (
	"bytes"
	"fmt"

	"github.com/patrickelectric/blueberry/crc16"
	"github.com/patrickelectric/blueberry/endian"
	"github.com/patrickelectric/blueberry/errs"
	"github.com/patrickelectric/blueberry/internal/pool"
	"github.com/patrickelectric/blueberry/wire"
)

// Header is the 8-byte prefix of every packet.
type Header struct {
	// LengthWords is the total packet length, in 4-byte words, including
	// the header itself.
	LengthWords uint16
	// CRC is the CRC-16-CCITT checksum over the message region (bytes 8
	// through LengthWords*4), including padding.
	CRC uint16
}

// ByteLen returns the packet's total length in bytes.
func (h Header) ByteLen() int {
	return int(h.LengthWords) * wire.WordSize
}

// Encode concatenates messages (each already a word multiple), pads the
// result to a word boundary, and prepends a header with the computed CRC.
func Encode(messages [][]byte) ([]byte, error) {
	bb := pool.GetPacketBuffer()
	defer pool.PutPacketBuffer(bb)

	for _, m := range messages {
		bb.MustWrite(m)
	}

	total := wire.RoundUpWord(wire.PacketHeaderSize + bb.Len())
	for bb.Len() < total-wire.PacketHeaderSize {
		bb.MustWrite([]byte{0})
	}
	body := bb.Bytes()

	h := Header{
		LengthWords: uint16(total / wire.WordSize),
		CRC:         crc16.Checksum(body),
	}

	engine := endian.GetLittleEndianEngine()
	out := make([]byte, 0, total)
	out = append(out, wire.PacketMagic[:]...)
	out = engine.AppendUint16(out, h.LengthWords)
	out = engine.AppendUint16(out, h.CRC)
	out = append(out, body...)

	return out, nil
}

// Decode validates the packet header and partitions the message region
// into individual message byte slices.
func Decode(data []byte) (Header, [][]byte, error) {
	if len(data) < wire.PacketHeaderSize {
		return Header{}, nil, fmt.Errorf("%w: packet needs %d header bytes, got %d", errs.ErrTruncated, wire.PacketHeaderSize, len(data))
	}
	if !bytes.Equal(data[0:4], wire.PacketMagic[:]) {
		return Header{}, nil, fmt.Errorf("%w: packet does not start with %q", errs.ErrBadMagic, string(wire.PacketMagic[:]))
	}

	engine := endian.GetLittleEndianEngine()
	h := Header{
		LengthWords: engine.Uint16(data[4:6]),
		CRC:         engine.Uint16(data[6:8]),
	}

	total := h.ByteLen()
	if total < wire.PacketHeaderSize || len(data) < total {
		return Header{}, nil, fmt.Errorf("%w: packet declares %d bytes, buffer has %d", errs.ErrTruncated, total, len(data))
	}

	body := data[wire.PacketHeaderSize:total]
	if got := crc16.Checksum(body); got != h.CRC {
		return Header{}, nil, fmt.Errorf("%w: computed CRC %#04x, header says %#04x", errs.ErrCRCMismatch, got, h.CRC)
	}

	messages, err := partition(body, engine)
	if err != nil {
		return Header{}, nil, err
	}

	return h, messages, nil
}

// partition walks body in message-sized chunks, stopping tolerantly at
// trailing padding shorter than a header or at a zero-length header.
func partition(body []byte, engine endian.EndianEngine) ([][]byte, error) {
	var messages [][]byte
	cursor := 0
	for len(body)-cursor >= wire.MessageHeaderSize {
		lengthWords := engine.Uint16(body[cursor+4 : cursor+6])
		msgLen := int(lengthWords) * wire.WordSize
		if msgLen == 0 {
			// Trailing zero padding parses as a zero-length header; stop
			// tolerantly rather than treat it as malformed.
			break
		}
		if msgLen < wire.MessageHeaderSize {
			return nil, fmt.Errorf("%w: inner message length %d is smaller than the header", errs.ErrTruncated, msgLen)
		}
		if cursor+msgLen > len(body) {
			return nil, fmt.Errorf("%w: inner message declares %d bytes, only %d remain", errs.ErrTruncated, msgLen, len(body)-cursor)
		}
		messages = append(messages, body[cursor:cursor+msgLen])
		cursor += msgLen
	}

	return messages, nil
}
