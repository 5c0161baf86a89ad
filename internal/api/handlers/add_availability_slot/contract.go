package add_availability_slot

import (
	"context"

	"github.com/m04kA/FitMarket-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	AddSlot(ctx context.Context, req *models.AddSlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
