package history_test

import (
	"testing"

	"codeberg.org/mutker/devconsole/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushOrdersMostRecentFirst(t *testing.T) {
	h := history.New(0)
	h.Push("a")
	h.Push("b")
	h.Push("")

	assert.Equal(t, []string{"", "b", "a"}, h.Lines())
	assert.Equal(t, 3, h.Len())
	assert.Zero(t, h.Cursor())
}

func TestUpWalksTowardsOldest(t *testing.T) {
	h := history.New(0)
	h.Push("a")
	h.Push("b")

	line, ok := h.Up()
	require.True(t, ok)
	assert.Equal(t, "b", line)
	assert.Equal(t, 1, h.Cursor())

	line, ok = h.Up()
	require.True(t, ok)
	assert.Equal(t, "a", line)
	assert.Equal(t, 2, h.Cursor())

	for i := 0; i < 3; i++ {
		_, ok = h.Up()
		assert.False(t, ok)
	}
	assert.Equal(t, 2, h.Cursor(), "cursor must not exceed history size")
}

func TestUpOnEmptyHistory(t *testing.T) {
	h := history.New(0)

	_, ok := h.Up()
	assert.False(t, ok)
	_, ok = h.Down()
	assert.False(t, ok)
	assert.Zero(t, h.Cursor())
}

// Down stops at the newest line instead of returning to "no selection".
func TestDownNeverReturnsToZero(t *testing.T) {
	h := history.New(0)
	h.Push("a")
	h.Push("b")
	h.Push("c")

	h.Up()
	h.Up()
	h.Up()
	require.Equal(t, 3, h.Cursor())

	line, ok := h.Down()
	require.True(t, ok)
	assert.Equal(t, "b", line)

	line, ok = h.Down()
	require.True(t, ok)
	assert.Equal(t, "c", line)
	assert.Equal(t, 1, h.Cursor())

	_, ok = h.Down()
	assert.False(t, ok)
	assert.Equal(t, 1, h.Cursor())
}

func TestPushResetsCursor(t *testing.T) {
	h := history.New(0)
	h.Push("a")
	h.Up()
	require.Equal(t, 1, h.Cursor())

	h.Push("b")
	assert.Zero(t, h.Cursor())
}

func TestLimitDropsOldest(t *testing.T) {
	h := history.New(2)
	h.Push("a")
	h.Push("b")
	h.Push("c")

	assert.Equal(t, []string{"c", "b"}, h.Lines())
}
