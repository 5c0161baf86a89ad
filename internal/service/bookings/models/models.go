package models

import (
	"errors"
	"time"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidRole возвращается при некорректной роли
	ErrInvalidRole = errors.New("invalid role")
)

// Actor пользователь, выполняющий операцию
type Actor struct {
	UserID int64
	Role   domain.Role
}

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Actor  Actor
	Reason string
}

// CompleteBookingRequest запрос на завершение сессии
type CompleteBookingRequest struct {
	Actor        Actor
	TrainerNotes *string
}

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	Actor    Actor
	ClientID int64
	Status   *string
}

// GetTrainerBookingsRequest запрос на получение бронирований тренера
type GetTrainerBookingsRequest struct {
	Actor           Actor
	TrainerID       int64
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	Status          *string    // Фильтр по статусу (опционально)
	IncludeInactive bool       // Включить отмененные и завершенные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetTrainerBookingsRequest) ToDomainFilter() (domain.TrainerBookingsFilter, error) {
	filter := domain.TrainerBookingsFilter{
		TrainerID:       r.TrainerID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	TrainerID       int64  `json:"trainerId"`
	ClientID        int64  `json:"clientId"`
	SessionDate     string `json:"sessionDate"` // "2026-09-15"
	StartTime       string `json:"startTime"`   // "10:00"
	EndTime         string `json:"endTime"`     // "11:30"
	DurationMinutes int    `json:"durationMinutes"`
	LocationAddress string `json:"locationAddress"`
	Status          string `json:"status"`
	PaymentStatus   string `json:"paymentStatus"`

	// Цена, зафиксированная на момент бронирования
	HourlyRate float64 `json:"hourlyRate"`
	TotalPrice float64 `json:"totalPrice"`

	ClientNotes  *string `json:"clientNotes,omitempty"`
	TrainerNotes *string `json:"trainerNotes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		TrainerID:       b.TrainerID,
		ClientID:        b.ClientID,
		SessionDate:     b.SessionDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime.String(),
		DurationMinutes: b.DurationMinutes,
		LocationAddress: b.LocationAddress,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		HourlyRate:      b.HourlyRate,
		TotalPrice:      b.TotalPrice,
		ClientNotes:     b.ClientNotes,
		TrainerNotes:    b.TrainerNotes,

		CancellationReason: b.CancellationReason,

		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if converted := FromDomainBooking(b); converted != nil {
			resp.Bookings = append(resp.Bookings, *converted)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !domain.ValidBookingStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ToDomainRole конвертирует строку в domain роль
func ToDomainRole(s string) (domain.Role, error) {
	role := domain.Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
