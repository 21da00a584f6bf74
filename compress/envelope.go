package compress

import (
	"encoding/binary"
	"fmt"
)

// Wrap compresses packet (or message) bytes with algo and prepends a
// 5-byte envelope: 1-byte Algorithm followed by a little-endian u32
// original length. Unwrap compares that length with the size of the
// decompressed output and rejects a mismatch; it does not use it to size
// the output buffer.
func Wrap(algo Algorithm, data []byte) ([]byte, error) {
	codec, err := GetCodec(algo)
	if err != nil {
		return nil, err
	}
	compressed, err := codec.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("compress: %s: %w", algo, err)
	}

	out := make([]byte, 0, 5+len(compressed))
	out = append(out, byte(algo))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(data)))
	out = append(out, compressed...)

	return out, nil
}

// Unwrap reverses Wrap.
func Unwrap(data []byte) ([]byte, error) {
	if len(data) < 5 {
		return nil, fmt.Errorf("compress: envelope needs 5 bytes, got %d", len(data))
	}
	algo := Algorithm(data[0])
	originalLen := binary.LittleEndian.Uint32(data[1:5])

	codec, err := GetCodec(algo)
	if err != nil {
		return nil, err
	}
	out, err := codec.Decompress(data[5:])
	if err != nil {
		return nil, fmt.Errorf("compress: %s: %w", algo, err)
	}
	if uint32(len(out)) != originalLen {
		return nil, fmt.Errorf("compress: %s: decompressed to %d bytes, envelope declares %d", algo, len(out), originalLen)
	}

	return out, nil
}
