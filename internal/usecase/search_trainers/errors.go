package search_trainers

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("search_trainers: invalid input data")

	// ErrAddressNotFound возвращается, когда адрес клиента не удалось геокодировать
	ErrAddressNotFound = errors.New("search_trainers: address not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("search_trainers: internal error")
)
