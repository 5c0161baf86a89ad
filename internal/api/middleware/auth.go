package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/FitMarket-BookingService/internal/api/handlers"
	"github.com/m04kA/FitMarket-BookingService/internal/domain"
)

// Заголовки аутентификации, проставляемые API-гейтвеем.
// Сервис доверяет гейтвею и не проверяет подписи самостоятельно.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const (
	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный заголовок X-User-ID"
	msgInvalidRole   = "некорректный заголовок X-User-Role"
)

// Principal аутентифицированный пользователь запроса
type Principal struct {
	UserID int64
	Role   domain.Role
}

type principalKey struct{}

// Auth middleware извлекает пользователя из заголовков гейтвея.
// При отсутствии X-User-Role роль по умолчанию - client.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(HeaderUserID)
		if rawID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		role := domain.RoleClient
		if rawRole := r.Header.Get(HeaderUserRole); rawRole != "" {
			role = domain.Role(rawRole)
			if !role.IsValid() {
				handlers.RespondUnauthorized(w, msgInvalidRole)
				return
			}
		}

		ctx := context.WithValue(r.Context(), principalKey{}, Principal{
			UserID: userID,
			Role:   role,
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PrincipalFromContext возвращает пользователя запроса.
// ok=false означает, что запрос прошел мимо Auth middleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
