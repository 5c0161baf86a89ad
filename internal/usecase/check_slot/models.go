package check_slot

import (
	"time"

	"github.com/m04kA/FitMarket-BookingService/pkg/types"
)

// Request модель запроса на проверку доступности слота
type Request struct {
	TrainerID       int64            // ID тренера
	Date            time.Time        // Дата сессии (без времени)
	StartTime       types.TimeString // Время начала сессии, например "10:00"
	DurationMinutes int              // Длительность сессии в минутах
}

// Причины, по которым слот недоступен для бронирования
const (
	ReasonOutsideAvailability = "outside_availability"
	ReasonSlotConflict        = "slot_conflict"
	ReasonLeadTimeTooShort    = "lead_time_too_short"
)

// Response модель ответа с результатом проверки
type Response struct {
	Bookable bool             // Доступен ли слот для бронирования
	Reason   string           // Причина недоступности (пусто, если bookable=true)
	EndTime  types.TimeString // Вычисленное время окончания сессии
}
