package availability

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот доступности не найден
	ErrSlotNotFound = errors.New("availability slot not found")

	// ErrTrainerNotFound возвращается, когда тренер не найден
	ErrTrainerNotFound = errors.New("trainer not found")

	// ErrAccessDenied возвращается, когда пользователь не владеет расписанием
	ErrAccessDenied = errors.New("access denied")

	// ErrSlotOverlap возвращается, когда слот пересекается с другим включенным
	// слотом того же дня недели
	ErrSlotOverlap = errors.New("slot overlaps an existing slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
