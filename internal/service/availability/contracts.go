package availability

import (
	"context"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория слотов доступности
type AvailabilityRepository interface {
	Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilitySlot, error)
	ListByTrainer(ctx context.Context, trainerID int64) ([]*domain.AvailabilitySlot, error)
	ListEnabledByTrainerAndDay(ctx context.Context, trainerID int64, dayOfWeek int) ([]*domain.AvailabilitySlot, error)
	ListEnabledByTrainerDayExcluding(ctx context.Context, trainerID int64, dayOfWeek int, excludeID int64) ([]*domain.AvailabilitySlot, error)
	SetEnabled(ctx context.Context, id int64, enabled bool) error
	Delete(ctx context.Context, id int64) error
}

// TrainerRepository интерфейс репозитория тренеров
type TrainerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Trainer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
