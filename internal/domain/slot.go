package domain

import (
	"time"

	"github.com/m04kA/FitMarket-BookingService/pkg/types"
)

// AvailabilitySlot represents a recurring weekly availability window of a trainer
type AvailabilitySlot struct {
	ID        int64
	TrainerID int64
	DayOfWeek int // 0=Monday .. 6=Sunday
	StartTime types.TimeString
	EndTime   types.TimeString
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains returns true if [start, end) lies fully inside the slot window.
// Partial overlap is not enough to make a proposal bookable.
func (s *AvailabilitySlot) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(s.StartTime) && !end.IsAfter(s.EndTime)
}

// Overlaps returns true if the slot window intersects [start, end).
// Intervals are half-open, so windows that merely touch do not overlap.
func (s *AvailabilitySlot) Overlaps(start, end types.TimeString) bool {
	return IntervalsOverlap(s.StartTime, s.EndTime, start, end)
}

// IntervalsOverlap reports half-open interval intersection:
// [aStart, aEnd) and [bStart, bEnd) intersect iff aStart < bEnd && bStart < aEnd.
// Exact matches and partial overlaps intersect; adjacent intervals do not.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}

// DayOfWeekMonday0 возвращает день недели с понедельником = 0.
// Весь сервис (и слоты доступности) использует именно эту нумерацию;
// смешивание с time.Weekday (Sunday=0) дает ошибки на один день.
func DayOfWeekMonday0(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}
