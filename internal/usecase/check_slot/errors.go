package check_slot

import "errors"

var (
	// ErrTrainerNotFound возвращается, когда тренер не найден
	ErrTrainerNotFound = errors.New("check_slot: trainer not found")

	// ErrTrainerNotPublished возвращается, когда профиль тренера не опубликован
	ErrTrainerNotPublished = errors.New("check_slot: trainer profile is not published")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_slot: internal error")
)
