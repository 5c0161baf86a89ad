package notifier

import "github.com/m04kA/FitMarket-BookingService/internal/domain"

// Recipient адресат уведомления
type Recipient struct {
	Email string
	Name  string
}

// BookingEvent событие жизненного цикла бронирования, о котором уведомляем
type BookingEvent string

const (
	EventBookingCreated   BookingEvent = "booking_created"
	EventBookingConfirmed BookingEvent = "booking_confirmed"
	EventBookingDeclined  BookingEvent = "booking_declined"
	EventBookingCancelled BookingEvent = "booking_cancelled"
	EventBookingCompleted BookingEvent = "booking_completed"
)

// BookingNotification данные для письма о событии бронирования.
// Адресаты задаются ID пользователей; email и имя подтягиваются
// из сервиса идентификации при отправке.
type BookingNotification struct {
	Event        BookingEvent
	Booking      *domain.Booking
	RecipientIDs []int64
	Reason       string
}
