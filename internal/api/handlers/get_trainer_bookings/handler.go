package get_trainer_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/FitMarket-BookingService/internal/api/handlers"
	"github.com/m04kA/FitMarket-BookingService/internal/api/middleware"
	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	"github.com/m04kA/FitMarket-BookingService/internal/service/bookings"
	"github.com/m04kA/FitMarket-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidTrainerID = "некорректный ID тренера"
	msgInvalidQuery     = "некорректные параметры запроса"
	msgTrainerNotFound  = "тренер не найден"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/trainers/{trainerId}/bookings?startDate=...&endDate=...&status=...&includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	vars := mux.Vars(r)
	trainerID, err := strconv.ParseInt(vars["trainerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/bookings - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	req := &models.GetTrainerBookingsRequest{
		Actor: models.Actor{
			UserID: principal.UserID,
			Role:   principal.Role,
		},
		TrainerID: trainerID,
	}

	query := r.URL.Query()

	if raw := query.Get("startDate"); raw != "" {
		startDate, parseErr := time.Parse(domain.DateFormat, raw)
		if parseErr != nil {
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, parseErr := time.Parse(domain.DateFormat, raw)
		if parseErr != nil {
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	resp, err := h.service.GetTrainerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrTrainerNotFound):
			handlers.RespondNotFound(w, msgTrainerNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /trainers/{id}/bookings - Access denied: trainer_id=%d, user_id=%d",
				trainerID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /trainers/{id}/bookings - Failed to get bookings: trainer_id=%d, error=%v",
				trainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
