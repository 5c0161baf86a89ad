package check_slot

import (
	"context"

	checkSlotUC "github.com/m04kA/FitMarket-BookingService/internal/usecase/check_slot"
)

type CheckSlotUseCase interface {
	Execute(ctx context.Context, req *checkSlotUC.Request) (*checkSlotUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
