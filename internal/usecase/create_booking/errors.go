package create_booking

import "errors"

var (
	// ErrTrainerNotFound возвращается, когда тренер не найден
	ErrTrainerNotFound = errors.New("create_booking: trainer not found")

	// ErrTrainerNotPublished возвращается, когда профиль тренера не опубликован
	ErrTrainerNotPublished = errors.New("create_booking: trainer profile is not published")

	// ErrOwnBooking возвращается при попытке тренера забронировать сессию у самого себя
	ErrOwnBooking = errors.New("create_booking: trainer cannot book own session")

	// ErrLeadTimeTooShort возвращается, когда дата сессии раньше минимального срока бронирования
	ErrLeadTimeTooShort = errors.New("create_booking: session date is too soon")

	// ErrOutsideAvailability возвращается, когда интервал сессии не покрыт расписанием тренера
	ErrOutsideAvailability = errors.New("create_booking: requested time is outside trainer availability")

	// ErrSlotConflict возвращается, когда интервал пересекается с активным бронированием
	ErrSlotConflict = errors.New("create_booking: requested time conflicts with an existing booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
