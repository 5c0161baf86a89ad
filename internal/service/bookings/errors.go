package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrTrainerNotFound возвращается, когда тренер не найден
	ErrTrainerNotFound = errors.New("trainer not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается, когда переход статуса не разрешен графом переходов
	ErrInvalidTransition = errors.New("status transition not allowed")

	// ErrCancellationWindowExpired возвращается, когда клиент отменяет бронирование
	// менее чем за 24 часа до начала сессии
	ErrCancellationWindowExpired = errors.New("cancellation window has expired")

	// ErrReasonRequired возвращается, когда отмена тренером или администратором
	// выполняется без указания причины
	ErrReasonRequired = errors.New("cancellation reason is required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
