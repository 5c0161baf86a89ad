package domain

import (
	"time"

	"github.com/m04kA/FitMarket-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending            BookingStatus = "pending"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusCompleted          BookingStatus = "completed"
	StatusNoShow             BookingStatus = "no_show"
	StatusCancelledByClient  BookingStatus = "cancelled_by_client"
	StatusCancelledByTrainer BookingStatus = "cancelled_by_trainer"
)

// PaymentStatus represents the payment state of a booking.
// Tracked independently from BookingStatus and never drives status transitions.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking represents a single training session reserved by a client
type Booking struct {
	ID        int64
	TrainerID int64
	ClientID  int64

	SessionDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int

	LocationAddress string
	ClientNotes     *string
	TrainerNotes    *string

	Status        BookingStatus
	PaymentStatus PaymentStatus

	// ID платежного намерения провайдера; nil, пока платеж не инициирован
	PaymentIntentID *string

	// Denormalized pricing at booking time
	HourlyRate float64
	TotalPrice float64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its time slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if no further status transition is permitted
func (b *Booking) IsTerminal() bool {
	return !b.IsActive()
}

// CanBeCancelled returns true if the booking is in a cancellable state
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled by either party
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByClient || b.Status == StatusCancelledByTrainer
}

// SessionStart returns the session start as a full timestamp in loc
func (b *Booking) SessionStart(loc *time.Location) (time.Time, error) {
	return b.StartTime.At(b.SessionDate, loc)
}

// SessionEnd returns the session end as a full timestamp in loc
func (b *Booking) SessionEnd(loc *time.Location) (time.Time, error) {
	return b.EndTime.At(b.SessionDate, loc)
}

// ClientBookingsFilter фильтр для выборки бронирований клиента
type ClientBookingsFilter struct {
	ClientID int64
	Status   *BookingStatus
}

// TrainerBookingsFilter фильтр для выборки бронирований тренера
type TrainerBookingsFilter struct {
	TrainerID       int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	IncludeInactive bool
}
