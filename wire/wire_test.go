package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_Align(t *testing.T) {
	assert.Equal(t, 1, KindU8.Align())
	assert.Equal(t, 2, KindU16.Align())
	assert.Equal(t, 4, KindU32.Align())
	assert.Equal(t, 4, KindU64.Align())
	assert.Equal(t, 4, KindF64.Align())
}

func TestKind_ParseRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindU8, KindI8, KindU16, KindI16, KindU32, KindI32, KindU64, KindI64, KindF32, KindF64, KindBool, KindString, KindSeq, KindRecord} {
		assert.Equal(t, k, ParseKind(k.String()))
	}
}

func TestParseKind_Unknown(t *testing.T) {
	assert.Equal(t, KindInvalid, ParseKind("nope"))
}

func TestRoundUpWord(t *testing.T) {
	assert.Equal(t, 0, RoundUpWord(0))
	assert.Equal(t, 4, RoundUpWord(1))
	assert.Equal(t, 4, RoundUpWord(4))
	assert.Equal(t, 8, RoundUpWord(5))
}
