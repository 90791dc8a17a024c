package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorSync(t *testing.T) {
	tests := []struct {
		name      string
		start     Cursor
		n         int
		wantIndex int
		wantSel   bool
	}{
		{name: "empty view clears", start: Cursor{index: 3, selected: true}, n: 0, wantSel: false},
		{name: "first non-empty view selects top", start: Cursor{}, n: 4, wantIndex: 0, wantSel: true},
		{name: "index kept when still valid", start: Cursor{index: 2, selected: true}, n: 4, wantIndex: 2, wantSel: true},
		{name: "index past end clamps", start: Cursor{index: 7, selected: true}, n: 3, wantIndex: 2, wantSel: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.start
			c.Sync(tt.n)
			index, ok := c.Index()
			assert.Equal(t, tt.wantSel, ok)
			if tt.wantSel {
				assert.Equal(t, tt.wantIndex, index)
			}
		})
	}
}

func TestCursorWraps(t *testing.T) {
	var c Cursor
	c.Sync(3)

	c.Up(3)
	index, _ := c.Index()
	assert.Equal(t, 2, index)

	c.Down(3)
	index, _ = c.Index()
	assert.Equal(t, 0, index)

	c.Down(3)
	c.Down(3)
	c.Down(3)
	index, _ = c.Index()
	assert.Equal(t, 0, index)
}

func TestCursorEmptyViewIsNoop(t *testing.T) {
	var c Cursor
	c.Down(0)
	c.Up(0)
	assert.True(t, c.Empty())
}

func TestCursorStaleIndexNeverPanics(t *testing.T) {
	c := Cursor{index: 10, selected: true}

	assert.NotPanics(t, func() { c.Down(2) })
	index, ok := c.Index()
	assert.True(t, ok)
	assert.Equal(t, 0, index)

	c = Cursor{index: 10, selected: true}
	assert.NotPanics(t, func() { c.Up(2) })
	index, _ = c.Index()
	assert.Equal(t, 0, index)
}

func TestCursorReset(t *testing.T) {
	c := Cursor{index: 2, selected: true}
	c.Reset(5)
	index, ok := c.Index()
	assert.True(t, ok)
	assert.Zero(t, index)

	c.Reset(0)
	assert.True(t, c.Empty())
}
