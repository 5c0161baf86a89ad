package search_trainers

import (
	"context"

	searchTrainersUC "github.com/m04kA/FitMarket-BookingService/internal/usecase/search_trainers"
)

type SearchTrainersUseCase interface {
	Execute(ctx context.Context, req *searchTrainersUC.Request) (*searchTrainersUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
