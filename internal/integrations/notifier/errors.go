package notifier

import "errors"

var (
	// ErrNotConfigured возвращается, когда отправка писем отключена или не настроена
	ErrNotConfigured = errors.New("notifier: not configured")

	// ErrSendFailed возвращается при ошибке отправки письма
	ErrSendFailed = errors.New("notifier: send failed")
)
