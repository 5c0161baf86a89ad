package search_trainers

import (
	"errors"
	"net/http"

	"github.com/m04kA/FitMarket-BookingService/internal/api/handlers"
	searchTrainersUC "github.com/m04kA/FitMarket-BookingService/internal/usecase/search_trainers"
)

const (
	msgInvalidQuery    = "некорректные параметры запроса"
	msgAddressNotFound = "адрес не найден"
)

type Handler struct {
	usecase SearchTrainersUseCase
	logger  Logger
}

func NewHandler(usecase SearchTrainersUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle GET /api/v1/trainers/search
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /trainers/search - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	resp, err := h.usecase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, searchTrainersUC.ErrInvalidInput):
			h.logger.Warn("GET /trainers/search - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, searchTrainersUC.ErrAddressNotFound):
			handlers.RespondUnprocessable(w, msgAddressNotFound)

		default:
			h.logger.Error("GET /trainers/search - Search failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
