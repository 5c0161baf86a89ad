package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	createBookingUC "github.com/m04kA/FitMarket-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/FitMarket-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TrainerID       int64   `json:"trainerId"`
	SessionDate     string  `json:"sessionDate"` // "2026-09-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	LocationAddress string  `json:"locationAddress"`
	ClientNotes     *string `json:"clientNotes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBookingUC.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.SessionDate)
	if err != nil {
		return nil, fmt.Errorf("invalid sessionDate: %v", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid startTime: %v", err)
	}

	return &createBookingUC.Request{
		ClientID:        clientID,
		TrainerID:       r.TrainerID,
		SessionDate:     date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		LocationAddress: r.LocationAddress,
		ClientNotes:     r.ClientNotes,
	}, nil
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID              int64   `json:"id"`
	TrainerID       int64   `json:"trainerId"`
	ClientID        int64   `json:"clientId"`
	SessionDate     string  `json:"sessionDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	LocationAddress string  `json:"locationAddress"`
	ClientNotes     *string `json:"clientNotes,omitempty"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"paymentStatus"`
	HourlyRate      float64 `json:"hourlyRate"`
	TotalPrice      float64 `json:"totalPrice"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *createBookingUC.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:              resp.ID,
		TrainerID:       resp.TrainerID,
		ClientID:        resp.ClientID,
		SessionDate:     resp.SessionDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		LocationAddress: resp.LocationAddress,
		ClientNotes:     resp.ClientNotes,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		HourlyRate:      resp.HourlyRate,
		TotalPrice:      resp.TotalPrice,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
}
