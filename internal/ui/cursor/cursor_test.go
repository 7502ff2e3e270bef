package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMove_Clamps(t *testing.T) {
	c := New(0)
	c.Move(-3, 5, 10)
	assert.Equal(t, 0, c.Pos())
	c.Move(10, 5, 10)
	assert.Equal(t, 4, c.Pos())
}

func TestMove_ScrollsWithMargin(t *testing.T) {
	c := New(1)
	for range 5 {
		c.Move(1, 20, 4)
	}
	assert.Equal(t, 5, c.Pos())
	start, end := c.VisibleRange(20, 4)
	assert.Equal(t, 3, start)
	assert.Equal(t, 7, end)

	c.Jump(0, 20, 4)
	start, _ = c.VisibleRange(20, 4)
	assert.Equal(t, 0, start)
}

func TestClamp_ListShrank(t *testing.T) {
	c := New(0)
	c.Jump(9, 10, 3)
	c.Clamp(4, 3)
	assert.Equal(t, 3, c.Pos())
	assert.Equal(t, 1, c.Offset())

	c.Clamp(0, 3)
	assert.Equal(t, 0, c.Pos())
	assert.Equal(t, 0, c.Offset())
}

func TestHandleKey(t *testing.T) {
	c := New(0)
	assert.True(t, c.HandleKey("G", 8, 3))
	assert.Equal(t, 7, c.Pos())
	assert.True(t, c.HandleKey("k", 8, 3))
	assert.Equal(t, 6, c.Pos())
	assert.True(t, c.HandleKey("g", 8, 3))
	assert.Equal(t, 0, c.Pos())
	assert.False(t, c.HandleKey("x", 8, 3))
}

func TestVisibleRange_Empty(t *testing.T) {
	c := New(2)
	start, end := c.VisibleRange(0, 5)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}
