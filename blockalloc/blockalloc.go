// Package blockalloc implements a forward-reference fixup allocator: the
// head writer emits placeholder u16 offsets for string/seq descriptors
// before it knows where their data blocks will land, and Allocator.Finalize
// patches every placeholder once each block's absolute position is known.
// Blocks are discovered incrementally as the head is walked field by field,
// so the layout cannot be computed up front and must be deferred to a
// final patch pass over the assembled buffer.
package blockalloc

import (
	"encoding/binary"
	"fmt"

	"github.com/patrickelectric/blueberry/errs"
	"github.com/patrickelectric/blueberry/wire"
)

// fixup records that the u16 at HeadOffset in the head buffer must be
// patched with the final absolute offset of the block at BlockIndex.
type fixup struct {
	HeadOffset int
	BlockIndex int
}

// Allocator owns the ordered list of pending data blocks and the fixups
// that reference them.
type Allocator struct {
	blocks [][]byte
	fixups []fixup
}

// AppendBlock pads data to a 4-byte boundary, appends it to the pending
// block list, and returns its index for a later RequestFixup call.
func (a *Allocator) AppendBlock(data []byte) int {
	padded := wire.RoundUpWord(len(data))
	if padded != len(data) {
		grown := make([]byte, padded)
		copy(grown, data)
		data = grown
	}
	a.blocks = append(a.blocks, data)

	return len(a.blocks) - 1
}

// RequestFixup records that the u16 descriptor offset at headOffset (an
// index into the head buffer passed to Finalize) must be patched with the
// final absolute offset of block blockIndex.
func (a *Allocator) RequestFixup(headOffset, blockIndex int) {
	a.fixups = append(a.fixups, fixup{HeadOffset: headOffset, BlockIndex: blockIndex})
}

// Finalize pads head to a 4-byte boundary, computes each block's absolute
// offset starting at baseOffset+len(head), patches every requested fixup
// into head, and returns head with all blocks appended in order.
//
// baseOffset is wire.MessageHeaderSize when the record is a message body,
// or 0 when encoding a standalone record.
func (a *Allocator) Finalize(head []byte, baseOffset int) ([]byte, error) {
	padded := wire.RoundUpWord(len(head))
	if padded != len(head) {
		grown := make([]byte, padded)
		copy(grown, head)
		head = grown
	}

	offsets := make([]int, len(a.blocks))
	cursor := baseOffset + len(head)
	for i, block := range a.blocks {
		offsets[i] = cursor
		cursor += len(block)
	}

	for _, fx := range a.fixups {
		off := offsets[fx.BlockIndex]
		if off > 0xFFFF {
			return nil, fmt.Errorf("%w: block offset %d exceeds u16 range", errs.ErrOverflow, off)
		}
		binary.LittleEndian.PutUint16(head[fx.HeadOffset:fx.HeadOffset+2], uint16(off))
	}

	out := head
	for _, block := range a.blocks {
		out = append(out, block...)
	}

	return out, nil
}
