package banner

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/admissions/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard() (*Board, *clock.FakeClock) {
	c := clock.Fake(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	return New(c, 0, 0), c
}

func TestBoard_Expiry(t *testing.T) {
	b, c := newBoard()

	b.Success("personal", "Personal information saved successfully!")
	b.Error("documents", "Failed to upload document")

	m, ok := b.Get("personal")
	require.True(t, ok)
	assert.Equal(t, Success, m.Kind)

	c.Advance(3 * time.Second)
	_, ok = b.Get("personal")
	assert.False(t, ok, "success banners last 3s")
	_, ok = b.Get("documents")
	assert.True(t, ok)

	c.Advance(2 * time.Second)
	assert.Empty(t, b.Active())
	assert.Zero(t, c.Pending())
}

func TestBoard_ReplaceRestartsTimer(t *testing.T) {
	b, c := newBoard()

	b.Success("contact", "first")
	c.Advance(2 * time.Second)
	b.Success("contact", "second")
	assert.Equal(t, 1, c.Pending(), "previous timer stopped")

	c.Advance(2 * time.Second)
	m, ok := b.Get("contact")
	require.True(t, ok)
	assert.Equal(t, "second", m.Text)

	c.Advance(time.Second)
	_, ok = b.Get("contact")
	assert.False(t, ok)
}

func TestBoard_Close(t *testing.T) {
	b, c := newBoard()
	b.Success("a", "x")
	b.Error("b", "y")
	require.Equal(t, 2, c.Pending())

	b.Close()
	assert.Zero(t, c.Pending())
	assert.Empty(t, b.Active())

	b.Error("a", "after close")
	assert.Empty(t, b.Active())
	assert.Zero(t, c.Pending())
}

func TestBoard_ActiveOrderAndClear(t *testing.T) {
	b, _ := newBoard()
	b.Error("z", "1")
	b.Success("a", "2")
	assert.Equal(t, []Message{{Slot: "a", Kind: Success, Text: "2"}, {Slot: "z", Kind: Error, Text: "1"}}, b.Active())

	b.Clear("a")
	assert.Len(t, b.Active(), 1)
	assert.Equal(t, "error", Error.String())
}

func TestBoard_ClearErrorKeepsSuccess(t *testing.T) {
	b, c := newBoard()
	b.Error("docs", "Failed to retrieve documents")
	b.Success("info", "saved")

	b.ClearError("docs")
	b.ClearError("info")
	b.ClearError("missing")

	assert.Equal(t, []Message{{Slot: "info", Kind: Success, Text: "saved"}}, b.Active())
	assert.Equal(t, 1, c.Pending())
}
