package payments

import "errors"

var (
	// ErrNotConfigured возвращается, когда платежи отключены или не настроены
	ErrNotConfigured = errors.New("payments: not configured")

	// ErrCreateIntent возвращается при ошибке создания платежного намерения
	ErrCreateIntent = errors.New("payments: failed to create payment intent")

	// ErrRefund возвращается при ошибке возврата платежа
	ErrRefund = errors.New("payments: failed to refund payment")
)
