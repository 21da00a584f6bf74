// Package errs defines the sentinel errors returned by the Blueberry codec.
//
// Every error returned by schema, record, message, and packet is wrapped
// around one of these sentinels with fmt.Errorf("%w: ...", ...), so callers
// can test the failure category with errors.Is while still getting a
// diagnostic message identifying the offending field or byte range.
package errs

import "errors"

var (
	// ErrBadMagic is returned when a packet does not begin with wire.PacketMagic.
	ErrBadMagic = errors.New("blueberry: bad packet magic")

	// ErrTruncated is returned when a declared length exceeds the available
	// buffer, an inner message extends past its packet, or a descriptor
	// offset points past the end of its message.
	ErrTruncated = errors.New("blueberry: truncated data")

	// ErrCRCMismatch is returned when a packet's computed CRC does not match
	// its header CRC.
	ErrCRCMismatch = errors.New("blueberry: crc mismatch")

	// ErrSchemaMismatch is returned when decoded bytes, or a schema
	// definition itself, cannot be reconciled with the wire format: invalid
	// UTF-8 in a string block, an unrecognized wire kind, a missing wire
	// kind on a numeric field, or an unsupported nested seq/string element.
	ErrSchemaMismatch = errors.New("blueberry: schema mismatch")

	// ErrOverflow is returned when a data block's absolute offset exceeds
	// the 16-bit descriptor range, i.e. a block starts more than 64 KiB
	// into its message. The 16-bit length-in-words header field allows
	// messages up to 256 KiB, so this is checked at the fixup boundary.
	ErrOverflow = errors.New("blueberry: offset overflow")
)
