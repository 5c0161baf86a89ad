package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/FitMarket-BookingService/pkg/types"
)

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name                   string
		aStart, aEnd           types.TimeString
		bStart, bEnd           types.TimeString
		want                   bool
	}{
		{"точное совпадение", "10:00", "11:00", "10:00", "11:00", true},
		{"частичное пересечение справа", "10:00", "11:00", "10:30", "11:30", true},
		{"частичное пересечение слева", "10:30", "11:30", "10:00", "11:00", true},
		{"вложенный интервал", "09:00", "12:00", "10:00", "11:00", true},
		{"смежные интервалы не пересекаются", "10:00", "11:00", "11:00", "12:00", false},
		{"смежные интервалы в обратном порядке", "11:00", "12:00", "10:00", "11:00", false},
		{"непересекающиеся", "09:00", "10:00", "14:00", "15:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestSlotContains(t *testing.T) {
	slot := &AvailabilitySlot{StartTime: "09:00", EndTime: "17:00"}

	assert.True(t, slot.Contains("09:00", "10:00"))
	assert.True(t, slot.Contains("16:00", "17:00"))
	assert.True(t, slot.Contains("09:00", "17:00"))
	// Частичное перекрытие окна недостаточно
	assert.False(t, slot.Contains("08:30", "09:30"))
	assert.False(t, slot.Contains("16:30", "17:30"))
	assert.False(t, slot.Contains("17:00", "18:00"))
}

func TestSlotOverlaps(t *testing.T) {
	slot := &AvailabilitySlot{StartTime: "09:00", EndTime: "12:00"}

	assert.True(t, slot.Overlaps("11:00", "13:00"))
	assert.True(t, slot.Overlaps("08:00", "09:30"))
	assert.False(t, slot.Overlaps("12:00", "13:00"))
	assert.False(t, slot.Overlaps("07:00", "09:00"))
}

func TestDayOfWeekMonday0(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2026-08-31", 0}, // понедельник
		{"2026-09-01", 1}, // вторник
		{"2026-09-02", 2},
		{"2026-09-03", 3},
		{"2026-09-04", 4},
		{"2026-09-05", 5}, // суббота
		{"2026-09-06", 6}, // воскресенье
	}

	for _, tt := range tests {
		date, err := time.Parse(DateFormat, tt.date)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, DayOfWeekMonday0(date), tt.date)
	}
}
