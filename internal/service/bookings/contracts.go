package bookings

import (
	"context"
	"time"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	"github.com/m04kA/FitMarket-BookingService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByClient(ctx context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error)
	GetByTrainerWithFilter(ctx context.Context, filter domain.TrainerBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, from, to domain.BookingStatus, reason string) error
	SetTrainerNotes(ctx context.Context, id int64, notes string) error
	SetPaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
}

// PaymentsClient интерфейс платежного клиента для возвратов при отмене
type PaymentsClient interface {
	Enabled() bool
	Refund(intentID string) error
}

// TrainerRepository интерфейс репозитория тренеров
type TrainerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Trainer, error)
}

// Notifier интерфейс для отправки уведомлений
type Notifier interface {
	NotifyAsync(notification notifier.BookingNotification)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
