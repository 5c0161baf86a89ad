package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, bad := range []string{"9:30:00", "25:00", "10:65", "abc", ""} {
		_, err := NewTimeStringFromString(bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, bad)
	}
}

func TestTimeStringAddMinutes(t *testing.T) {
	tests := []struct {
		start   TimeString
		delta   int
		want    TimeString
		wantErr bool
	}{
		{"10:00", 30, "10:30", false},
		{"10:00", 90, "11:30", false},
		{"23:00", 60, "24:00", false},
		{"23:30", 60, "", true}, // переход через полночь
		{"00:30", -60, "", true},
	}

	for _, tt := range tests {
		got, err := tt.start.AddMinutes(tt.delta)
		if tt.wantErr {
			assert.Error(t, err, string(tt.start))
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestTimeStringOrdering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:01").IsAfter("10:00"))
}

func TestTimeStringAt(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	got, err := TimeString("14:45").At(date, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 10, 14, 45, 0, 0, time.UTC), got)
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("08:15:00"))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 18, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("18:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
