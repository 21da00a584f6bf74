package compress

// ZstdCodec offers the best compression ratio of the available codecs, at
// higher CPU cost; Compress/Decompress are implemented in zstd_pure.go
// (pure Go, default) or zstd_cgo.go (cgo-backed, opt-in build tag).
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a Zstd codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
