package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitMarket-BookingService/internal/api/middleware"
	createBookingUC "github.com/m04kA/FitMarket-BookingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	resp    *createBookingUC.Response
	err     error
	lastReq *createBookingUC.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBookingUC.Request) (*createBookingUC.Response, error) {
	f.lastReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"trainerId": 1,
	"sessionDate": "2026-09-15",
	"startTime": "10:00",
	"durationMinutes": 60,
	"locationAddress": "Central Park, NYC"
}`

func doRequest(uc CreateBookingUseCase, body string, authenticated bool) *httptest.ResponseRecorder {
	handler := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if authenticated {
		req.Header.Set(middleware.HeaderUserID, "200")
		req.Header.Set(middleware.HeaderUserRole, "client")
	}

	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(handler.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	date, err := time.Parse("2006-01-02", "2026-09-15")
	require.NoError(t, err)

	uc := &fakeUseCase{resp: &createBookingUC.Response{
		ID:              7,
		TrainerID:       1,
		ClientID:        200,
		SessionDate:     date,
		StartTime:       "10:00",
		EndTime:         "11:00",
		DurationMinutes: 60,
		LocationAddress: "Central Park, NYC",
		Status:          "pending",
		PaymentStatus:   "unpaid",
		HourlyRate:      75,
		TotalPrice:      75,
	}}

	rec := doRequest(uc, validBody, true)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2026-09-15", resp.SessionDate)

	// ClientID берется из заголовка аутентификации, не из тела
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, int64(200), uc.lastReq.ClientID)
}

func TestHandle_Unauthenticated(t *testing.T) {
	rec := doRequest(&fakeUseCase{}, validBody, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"пустое тело", ""},
		{"битый json", "{"},
		{"неизвестное поле", `{"trainerId": 1, "unknown": true}`},
		{"кривая дата", `{"trainerId": 1, "sessionDate": "15.09.2026", "startTime": "10:00", "durationMinutes": 60, "locationAddress": "a"}`},
		{"кривое время", `{"trainerId": 1, "sessionDate": "2026-09-15", "startTime": "10am", "durationMinutes": 60, "locationAddress": "a"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(&fakeUseCase{}, tt.body, true)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"конфликт слота", createBookingUC.ErrSlotConflict, http.StatusConflict},
		{"тренер не найден", createBookingUC.ErrTrainerNotFound, http.StatusNotFound},
		{"профиль не опубликован", createBookingUC.ErrTrainerNotPublished, http.StatusUnprocessableEntity},
		{"своя сессия", createBookingUC.ErrOwnBooking, http.StatusUnprocessableEntity},
		{"поздно бронировать", createBookingUC.ErrLeadTimeTooShort, http.StatusUnprocessableEntity},
		{"вне расписания", createBookingUC.ErrOutsideAvailability, http.StatusUnprocessableEntity},
		{"ошибка валидации", createBookingUC.ErrInvalidInput, http.StatusBadRequest},
		{"внутренняя ошибка", createBookingUC.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(&fakeUseCase{err: tt.err}, validBody, true)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
