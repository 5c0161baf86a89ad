package decline_booking

import (
	"context"

	"github.com/m04kA/FitMarket-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	Decline(ctx context.Context, bookingID int64, actor models.Actor, reason string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
