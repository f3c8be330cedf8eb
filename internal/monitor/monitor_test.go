package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreakpoints(t *testing.T) {
	bp := NewBreakpoints()
	assert.False(t, bp.Has(0x100))

	bp.Set(0x100)
	assert.True(t, bp.Has(0x100))

	bp.Clear(0x100)
	assert.False(t, bp.Has(0x100))
}

func TestParseAddr(t *testing.T) {
	v, ok := parseAddr("0x1F")
	assert.True(t, ok)
	assert.EqualValues(t, 0x1F, v)

	v, ok = parseAddr("2A")
	assert.True(t, ok)
	assert.EqualValues(t, 0x2A, v)

	_, ok = parseAddr("not-hex")
	assert.False(t, ok)
}
