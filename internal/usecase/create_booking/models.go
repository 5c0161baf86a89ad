package create_booking

import (
	"time"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	"github.com/m04kA/FitMarket-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID        int64            // ID клиента
	TrainerID       int64            // ID тренера
	SessionDate     time.Time        // Дата сессии (без времени)
	StartTime       types.TimeString // Время начала сессии, например "10:00"
	DurationMinutes int              // Длительность сессии в минутах
	LocationAddress string           // Адрес проведения сессии
	ClientNotes     *string          // Заметки клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	TrainerID       int64
	ClientID        int64
	SessionDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	LocationAddress string
	ClientNotes     *string
	Status          string
	PaymentStatus   string

	// Цена зафиксирована на момент бронирования
	HourlyRate float64
	TotalPrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		TrainerID:       b.TrainerID,
		ClientID:        b.ClientID,
		SessionDate:     b.SessionDate,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: b.DurationMinutes,
		LocationAddress: b.LocationAddress,
		ClientNotes:     b.ClientNotes,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		HourlyRate:      b.HourlyRate,
		TotalPrice:      b.TotalPrice,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
