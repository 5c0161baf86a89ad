package toggle_availability_slot

import (
	"context"

	"github.com/m04kA/FitMarket-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	ToggleSlot(ctx context.Context, req *models.ToggleSlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
