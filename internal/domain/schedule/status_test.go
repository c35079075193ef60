package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/navalha-app/navalha-api/internal/httperr"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "in_progress", "completed", "cancelled", "no_show"} {
		got, ok := ParseStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, Status(s), got)
	}

	_, ok := ParseStatus("scheduled")
	assert.False(t, ok)
	_, ok = ParseStatus("")
	assert.False(t, ok)
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusNoShow},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusCancelled},
	}
	for _, tc := range allowed {
		assert.NoError(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusInProgress},
		{StatusPending, StatusCompleted},
		{StatusPending, StatusNoShow},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusPending},
		{StatusInProgress, StatusNoShow},
		{StatusCompleted, StatusPending},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusConfirmed},
		{StatusNoShow, StatusConfirmed},
	}
	for _, tc := range denied {
		err := CanTransition(tc.from, tc.to)
		assert.Error(t, err, "%s -> %s", tc.from, tc.to)
		assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalAndLive(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.False(t, StatusInProgress.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusNoShow.Terminal())

	// completed ainda ocupou a cadeira: continua vivo na agenda.
	assert.True(t, StatusCompleted.Live())
	assert.True(t, StatusPending.Live())
	assert.False(t, StatusCancelled.Live())
	assert.False(t, StatusNoShow.Live())
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus())
}
