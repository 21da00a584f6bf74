// Package compress wraps already-encoded Blueberry packet bytes with an
// outer, transport-level compression layer. It never touches the wire
// format itself — Compress/Decompress operate on opaque byte slices
// produced by package packet, after framing and CRC are already final.
//
// Four algorithms are available:
//   - None: passthrough, use when the link is already constrained on CPU
//     rather than bandwidth.
//   - S2: fast, moderate ratio, a reasonable default for latency-sensitive
//     links.
//   - LZ4: very fast decompression, useful when the receiver is the more
//     resource-constrained side (an embedded device).
//   - Zstd: best ratio, higher CPU cost; a pure-Go implementation is used
//     by default, with a cgo-backed one available behind a build tag for
//     environments where the extra ratio is worth the dependency.
//
// Because Compress operates after CRC-16-CCITT has already been computed
// over the uncompressed packet, a compressed packet must carry its own
// framing (an Algorithm byte plus length) so the receiver knows how to
// invert it before handing the result to packet.Decode.
package compress
