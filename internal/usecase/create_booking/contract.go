package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	"github.com/m04kA/FitMarket-BookingService/internal/integrations/notifier"
	"github.com/m04kA/FitMarket-BookingService/internal/integrations/payments"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByTrainerAndDate(ctx context.Context, trainerID int64, date time.Time) ([]*domain.Booking, error)
	SetPaymentIntent(ctx context.Context, id int64, intentID string) error
}

// AvailabilityRepository интерфейс репозитория слотов доступности
type AvailabilityRepository interface {
	ListEnabledByTrainerAndDay(ctx context.Context, trainerID int64, dayOfWeek int) ([]*domain.AvailabilitySlot, error)
}

// TrainerRepository интерфейс репозитория тренеров
type TrainerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Trainer, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// PaymentsClient интерфейс платежного клиента
type PaymentsClient interface {
	Enabled() bool
	CreateIntent(bookingID int64, amount float64) (*payments.Intent, error)
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
