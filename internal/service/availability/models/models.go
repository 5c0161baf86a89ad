package models

import (
	"time"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	"github.com/m04kA/FitMarket-BookingService/pkg/types"
)

// Actor пользователь, выполняющий операцию
type Actor struct {
	UserID int64
	Role   domain.Role
}

// Request модели

// AddSlotRequest запрос на добавление слота доступности
type AddSlotRequest struct {
	Actor     Actor
	TrainerID int64
	DayOfWeek int              // 0=понедельник .. 6=воскресенье
	StartTime types.TimeString // Например "09:00"
	EndTime   types.TimeString // Например "17:00"
}

// ToggleSlotRequest запрос на включение/выключение слота
type ToggleSlotRequest struct {
	Actor   Actor
	SlotID  int64
	Enabled bool
}

// Response модели

// SlotResponse ответ с данными слота доступности
type SlotResponse struct {
	ID        int64  `json:"id"`
	TrainerID int64  `json:"trainerId"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Enabled   bool   `json:"enabled"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.AvailabilitySlot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:        s.ID,
		TrainerID: s.TrainerID,
		DayOfWeek: s.DayOfWeek,
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		Enabled:   s.Enabled,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.AvailabilitySlot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}

	for _, s := range slots {
		if converted := FromDomainSlot(s); converted != nil {
			resp.Slots = append(resp.Slots, *converted)
		}
	}

	return resp
}
