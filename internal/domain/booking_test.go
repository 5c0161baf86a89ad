package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingIsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: StatusCompleted}).IsActive())
	assert.False(t, (&Booking{Status: StatusNoShow}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelledByClient}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelledByTrainer}).IsActive())
}

func TestBookingSessionStartInLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	date, err := time.Parse(DateFormat, "2026-09-10")
	require.NoError(t, err)

	b := &Booking{
		SessionDate: date,
		StartTime:   "14:30",
		EndTime:     "15:30",
	}

	start, err := b.SessionStart(ny)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-10T14:30:00-04:00", start.Format(time.RFC3339))

	end, err := b.SessionEnd(ny)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, end.Sub(start))
}

func TestTrainerLocationFallback(t *testing.T) {
	assert.Equal(t, time.UTC, (&Trainer{}).Location())
	assert.Equal(t, time.UTC, (&Trainer{Timezone: "Mars/Olympus"}).Location())

	loc := (&Trainer{Timezone: "Europe/London"}).Location()
	assert.Equal(t, "Europe/London", loc.String())
}
