package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, hm string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", "2026-09-07 "+hm)
	require.NoError(t, err)
	return parsed
}

func iv(t *testing.T, start, end string) Interval {
	t.Helper()
	return Interval{Start: at(t, start), End: at(t, end)}
}

func TestIntervalOverlaps(t *testing.T) {
	base := iv(t, "10:00", "11:00")

	assert.True(t, base.Overlaps(iv(t, "10:30", "11:30")))
	assert.True(t, base.Overlaps(iv(t, "09:30", "10:30")))
	assert.True(t, base.Overlaps(iv(t, "10:15", "10:45")))
	assert.True(t, base.Overlaps(iv(t, "09:00", "12:00")))

	// Extremos que apenas se tocam não conflitam.
	assert.False(t, base.Overlaps(iv(t, "11:00", "12:00")))
	assert.False(t, base.Overlaps(iv(t, "09:00", "10:00")))
	assert.False(t, base.Overlaps(iv(t, "12:00", "13:00")))
}

func TestIntervalEmpty(t *testing.T) {
	assert.True(t, Interval{}.Empty())
	assert.True(t, iv(t, "10:00", "10:00").Empty())
	assert.True(t, iv(t, "11:00", "10:00").Empty())
	assert.False(t, iv(t, "10:00", "10:01").Empty())
}

func TestIntervalContains(t *testing.T) {
	base := iv(t, "10:00", "11:00")

	assert.True(t, base.Contains(at(t, "10:00")))
	assert.True(t, base.Contains(at(t, "10:59")))
	assert.False(t, base.Contains(at(t, "11:00")))
	assert.False(t, base.Contains(at(t, "09:59")))
}

func TestIntervalIntersect(t *testing.T) {
	base := iv(t, "09:00", "17:00")

	got := iv(t, "08:00", "12:00").Intersect(base)
	assert.Equal(t, iv(t, "09:00", "12:00"), got)

	got = iv(t, "16:00", "18:00").Intersect(base)
	assert.Equal(t, iv(t, "16:00", "17:00"), got)

	// Sem interseção o resultado é vazio.
	got = iv(t, "18:00", "19:00").Intersect(base)
	assert.True(t, got.Empty())
}

func TestIntervalSubtract(t *testing.T) {
	window := iv(t, "09:00", "17:00")

	t.Run("bloco no meio divide em dois", func(t *testing.T) {
		got := window.Subtract(iv(t, "12:00", "13:00"))
		require.Len(t, got, 2)
		assert.Equal(t, iv(t, "09:00", "12:00"), got[0])
		assert.Equal(t, iv(t, "13:00", "17:00"), got[1])
	})

	t.Run("bloco no começo encurta", func(t *testing.T) {
		got := window.Subtract(iv(t, "08:00", "10:00"))
		require.Len(t, got, 1)
		assert.Equal(t, iv(t, "10:00", "17:00"), got[0])
	})

	t.Run("bloco cobrindo tudo zera", func(t *testing.T) {
		got := window.Subtract(iv(t, "08:00", "18:00"))
		assert.Empty(t, got)
	})

	t.Run("bloco sem sobreposição não mexe", func(t *testing.T) {
		got := window.Subtract(iv(t, "18:00", "19:00"))
		require.Len(t, got, 1)
		assert.Equal(t, window, got[0])
	})
}

func TestSubtractAll(t *testing.T) {
	windows := []Interval{iv(t, "09:00", "12:00"), iv(t, "13:00", "18:00")}
	blocks := []Interval{iv(t, "10:00", "10:30"), iv(t, "14:00", "19:00")}

	got := SubtractAll(windows, blocks)

	require.Len(t, got, 3)
	assert.Equal(t, iv(t, "09:00", "10:00"), got[0])
	assert.Equal(t, iv(t, "10:30", "12:00"), got[1])
	assert.Equal(t, iv(t, "13:00", "14:00"), got[2])
}

func TestSubtractAllIgnoresEmptyBlocks(t *testing.T) {
	windows := []Interval{iv(t, "09:00", "12:00")}

	got := SubtractAll(windows, []Interval{{}})
	require.Len(t, got, 1)
	assert.Equal(t, iv(t, "09:00", "12:00"), got[0])
}
