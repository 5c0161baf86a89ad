package add_availability_slot

import (
	"fmt"

	"github.com/m04kA/FitMarket-BookingService/internal/service/availability/models"
	"github.com/m04kA/FitMarket-BookingService/pkg/types"
)

// AddSlotRequest HTTP request model
type AddSlotRequest struct {
	TrainerID int64  `json:"trainerId"`
	DayOfWeek int    `json:"dayOfWeek"` // 0=понедельник .. 6=воскресенье
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "17:00"
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *AddSlotRequest) ToServiceRequest(actor models.Actor) (*models.AddSlotRequest, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid startTime: %v", err)
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid endTime: %v", err)
	}

	return &models.AddSlotRequest{
		Actor:     actor,
		TrainerID: r.TrainerID,
		DayOfWeek: r.DayOfWeek,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}
