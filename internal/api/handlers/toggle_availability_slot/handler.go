package toggle_availability_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FitMarket-BookingService/internal/api/handlers"
	"github.com/m04kA/FitMarket-BookingService/internal/api/middleware"
	"github.com/m04kA/FitMarket-BookingService/internal/service/availability"
	"github.com/m04kA/FitMarket-BookingService/internal/service/availability/models"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotNotFound       = "слот не найден"
	msgForbidden          = "доступ запрещен"
	msgSlotOverlap        = "включение слота приведет к пересечению с другим слотом"
)

// ToggleSlotRequest HTTP request model
type ToggleSlotRequest struct {
	Enabled bool `json:"enabled"`
}

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

// Handle PATCH /api/v1/trainers/availability/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /trainers/availability/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req ToggleSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /trainers/availability/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.ToggleSlot(r.Context(), &models.ToggleSlotRequest{
		Actor: models.Actor{
			UserID: principal.UserID,
			Role:   principal.Role,
		},
		SlotID:  slotID,
		Enabled: req.Enabled,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PATCH /trainers/availability/{id} - Access denied: slot_id=%d, user_id=%d",
				slotID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrSlotOverlap):
			h.logger.Warn("PATCH /trainers/availability/{id} - Slot overlap: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotOverlap)

		default:
			h.logger.Error("PATCH /trainers/availability/{id} - Failed to toggle slot: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /trainers/availability/{id} - Slot toggled: slot_id=%d, enabled=%t",
		slotID, req.Enabled)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
