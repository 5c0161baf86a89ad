package add_availability_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/FitMarket-BookingService/internal/api/handlers"
	"github.com/m04kA/FitMarket-BookingService/internal/api/middleware"
	"github.com/m04kA/FitMarket-BookingService/internal/service/availability"
	"github.com/m04kA/FitMarket-BookingService/internal/service/availability/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgTrainerNotFound    = "тренер не найден"
	msgForbidden          = "доступ запрещен"
	msgSlotOverlap        = "слот пересекается с существующим слотом"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/trainers/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	var req AddSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /trainers/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(models.Actor{
		UserID: principal.UserID,
		Role:   principal.Role,
	})
	if err != nil {
		h.logger.Warn("POST /trainers/availability - Invalid request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.AddSlot(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /trainers/availability - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, availability.ErrTrainerNotFound):
			handlers.RespondNotFound(w, msgTrainerNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /trainers/availability - Access denied: trainer_id=%d, user_id=%d",
				req.TrainerID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrSlotOverlap):
			h.logger.Warn("POST /trainers/availability - Slot overlap: trainer_id=%d, day=%d",
				req.TrainerID, req.DayOfWeek)
			handlers.RespondConflict(w, msgSlotOverlap)

		default:
			h.logger.Error("POST /trainers/availability - Failed to add slot: trainer_id=%d, error=%v",
				req.TrainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /trainers/availability - Slot added: slot_id=%d, trainer_id=%d",
		resp.ID, req.TrainerID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}
