package notifier

import (
	"context"

	"github.com/m04kA/FitMarket-BookingService/internal/integrations/identity"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

// UserProvider интерфейс для получения контактных данных адресатов
type UserProvider interface {
	GetUser(ctx context.Context, userID int64) (*identity.User, error)
}
