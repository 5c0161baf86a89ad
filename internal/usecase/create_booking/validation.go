package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	"github.com/m04kA/FitMarket-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.TrainerID <= 0 {
		return fmt.Errorf("%w: trainerID must be positive", ErrInvalidInput)
	}

	if req.SessionDate.IsZero() {
		return fmt.Errorf("%w: sessionDate is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if !domain.IsAllowedDuration(req.DurationMinutes) {
		return fmt.Errorf("%w: duration must be one of %v minutes", ErrInvalidInput, domain.AllowedDurations)
	}

	if req.LocationAddress == "" {
		return fmt.Errorf("%w: locationAddress is required", ErrInvalidInput)
	}

	if len(req.LocationAddress) > domain.MaxLocationAddressLength {
		return fmt.Errorf("%w: locationAddress exceeds %d characters", ErrInvalidInput, domain.MaxLocationAddressLength)
	}

	if req.ClientNotes != nil && len(*req.ClientNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: clientNotes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// meetsLeadTime проверяет, что дата сессии наступает не раньше,
// чем через MinLeadTimeDays дней от текущей даты в зоне тренера
func meetsLeadTime(sessionDate time.Time, now time.Time, loc *time.Location) bool {
	localNow := now.In(loc)
	earliest := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc).
		AddDate(0, 0, domain.MinLeadTimeDays)

	sessionDay := time.Date(sessionDate.Year(), sessionDate.Month(), sessionDate.Day(), 0, 0, 0, 0, loc)

	return !sessionDay.Before(earliest)
}

// coveredByAvailability проверяет, что интервал сессии целиком лежит
// внутри хотя бы одного включенного слота доступности
func coveredByAvailability(slots []*domain.AvailabilitySlot, start, end types.TimeString) bool {
	for _, slot := range slots {
		if slot.Contains(start, end) {
			return true
		}
	}
	return false
}

// conflictsWithBookings проверяет пересечение интервала сессии
// с активными бронированиями (полуоткрытые интервалы, стык не конфликт)
func conflictsWithBookings(bookings []*domain.Booking, start, end types.TimeString) bool {
	for _, booking := range bookings {
		if domain.IntervalsOverlap(start, end, booking.StartTime, booking.EndTime) {
			return true
		}
	}
	return false
}
