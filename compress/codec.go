package compress

import "fmt"

// Compressor compresses an already-framed packet (or message) byte slice.
type Compressor interface {
	// Compress compresses data and returns the compressed result. The
	// input is not modified; NoOpCodec returns data itself, the other
	// codecs return a newly allocated slice.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
type Decompressor interface {
	// Decompress decompresses data, previously produced by the matching
	// Compressor, and returns the original bytes.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// Algorithm identifies which Codec produced a compressed payload.
type Algorithm uint8

const (
	AlgorithmNone Algorithm = iota
	AlgorithmS2
	AlgorithmLZ4
	AlgorithmZstd
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "none"
	case AlgorithmS2:
		return "s2"
	case AlgorithmLZ4:
		return "lz4"
	case AlgorithmZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

var builtinCodecs = map[Algorithm]Codec{
	AlgorithmNone: NewNoOpCodec(),
	AlgorithmS2:   NewS2Codec(),
	AlgorithmLZ4:  NewLZ4Codec(),
	AlgorithmZstd: NewZstdCodec(),
}

// GetCodec retrieves the built-in Codec for algo.
func GetCodec(algo Algorithm) (Codec, error) {
	codec, ok := builtinCodecs[algo]
	if !ok {
		return nil, fmt.Errorf("compress: unsupported algorithm %d", algo)
	}

	return codec, nil
}
