package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/FitMarket-BookingService/internal/api/handlers"
	"github.com/m04kA/FitMarket-BookingService/internal/api/middleware"
	createBookingUC "github.com/m04kA/FitMarket-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgTrainerNotFound     = "тренер не найден"
	msgTrainerNotPublished = "профиль тренера не опубликован"
	msgOwnBooking          = "нельзя забронировать сессию у самого себя"
	msgLeadTimeTooShort    = "бронирование возможно не позднее чем за сутки до сессии"
	msgOutsideAvailability = "выбранное время вне расписания тренера"
	msgSlotConflict        = "выбранное время уже занято"
)

type Handler struct {
	usecase CreateBookingUseCase
	logger  Logger
}

func NewHandler(usecase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest(principal.UserID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.usecase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, createBookingUC.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBookingUC.ErrTrainerNotFound):
			handlers.RespondNotFound(w, msgTrainerNotFound)

		case errors.Is(err, createBookingUC.ErrTrainerNotPublished):
			handlers.RespondUnprocessable(w, msgTrainerNotPublished)

		case errors.Is(err, createBookingUC.ErrOwnBooking):
			handlers.RespondUnprocessable(w, msgOwnBooking)

		case errors.Is(err, createBookingUC.ErrLeadTimeTooShort):
			handlers.RespondUnprocessable(w, msgLeadTimeTooShort)

		case errors.Is(err, createBookingUC.ErrOutsideAvailability):
			handlers.RespondUnprocessable(w, msgOutsideAvailability)

		case errors.Is(err, createBookingUC.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: trainer_id=%d, date=%s",
				req.TrainerID, req.SessionDate)
			handlers.RespondConflict(w, msgSlotConflict)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, client_id=%d, trainer_id=%d",
		resp.ID, resp.ClientID, resp.TrainerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
