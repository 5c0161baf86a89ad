package remove_availability_slot

import (
	"context"

	"github.com/m04kA/FitMarket-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	RemoveSlot(ctx context.Context, slotID int64, actor models.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
