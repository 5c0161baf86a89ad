package search_trainers

import (
	"context"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	"github.com/m04kA/FitMarket-BookingService/internal/infra/storage/trainer"
	"github.com/m04kA/FitMarket-BookingService/internal/integrations/geocoder"
)

// TrainerRepository интерфейс репозитория тренеров
type TrainerRepository interface {
	ListPublished(ctx context.Context, filter trainer.SearchFilter) ([]*domain.Trainer, error)
}

// GeocoderClient интерфейс клиента геокодера
type GeocoderClient interface {
	GeocodeWithGracefulDegradation(ctx context.Context, address string) (*geocoder.Coordinate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
