package list_availability

import (
	"context"

	"github.com/m04kA/FitMarket-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	ListSlots(ctx context.Context, trainerID int64) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
