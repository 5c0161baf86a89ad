package check_slot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/FitMarket-BookingService/internal/api/handlers"
	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	checkSlotUC "github.com/m04kA/FitMarket-BookingService/internal/usecase/check_slot"
	"github.com/m04kA/FitMarket-BookingService/pkg/types"
)

const (
	msgInvalidTrainerID    = "некорректный ID тренера"
	msgInvalidQuery        = "некорректные параметры запроса"
	msgTrainerNotFound     = "тренер не найден"
	msgTrainerNotPublished = "профиль тренера не опубликован"
)

// CheckSlotResponse HTTP response model
type CheckSlotResponse struct {
	Bookable bool   `json:"bookable"`
	Reason   string `json:"reason,omitempty"`
	EndTime  string `json:"endTime"`
}

type Handler struct {
	usecase CheckSlotUseCase
	logger  Logger
}

func NewHandler(usecase CheckSlotUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle GET /api/v1/trainers/{trainerId}/check-slot?date=2026-09-15&startTime=10:00&duration=60
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	trainerID, err := strconv.ParseInt(vars["trainerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/check-slot - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/check-slot - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	startTime, err := types.NewTimeStringFromString(query.Get("startTime"))
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/check-slot - Invalid startTime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	duration, err := strconv.Atoi(query.Get("duration"))
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/check-slot - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	resp, err := h.usecase.Execute(r.Context(), &checkSlotUC.Request{
		TrainerID:       trainerID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkSlotUC.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, checkSlotUC.ErrTrainerNotFound):
			handlers.RespondNotFound(w, msgTrainerNotFound)

		case errors.Is(err, checkSlotUC.ErrTrainerNotPublished):
			handlers.RespondUnprocessable(w, msgTrainerNotPublished)

		default:
			h.logger.Error("GET /trainers/{id}/check-slot - Failed to check slot: trainer_id=%d, error=%v",
				trainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CheckSlotResponse{
		Bookable: resp.Bookable,
		Reason:   resp.Reason,
		EndTime:  resp.EndTime.String(),
	})
}
