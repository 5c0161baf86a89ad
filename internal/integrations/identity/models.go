package identity

// User контактные данные пользователя из сервиса идентификации
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ErrorResponse модель ошибки от сервиса идентификации
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
