package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	trainerRepo "github.com/m04kA/FitMarket-BookingService/internal/infra/storage/trainer"
	"github.com/m04kA/FitMarket-BookingService/internal/integrations/notifier"
)

type fakeBookingRepo struct {
	active  []*domain.Booking
	created *domain.Booking
	nextID  int64
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	b := *booking
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.created = &b
	return &b, nil
}

func (f *fakeBookingRepo) GetActiveByTrainerAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return f.active, nil
}

func (f *fakeBookingRepo) SetPaymentIntent(_ context.Context, _ int64, _ string) error {
	return nil
}

type fakeAvailabilityRepo struct {
	slots []*domain.AvailabilitySlot
}

func (f *fakeAvailabilityRepo) ListEnabledByTrainerAndDay(_ context.Context, _ int64, _ int) ([]*domain.AvailabilitySlot, error) {
	return f.slots, nil
}

type fakeTrainerRepo struct {
	trainer *domain.Trainer
	err     error
}

func (f *fakeTrainerRepo) GetByID(_ context.Context, _ int64) (*domain.Trainer, error) {
	return f.trainer, f.err
}

// inlineTxManager выполняет функцию без реальной транзакции
type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type capturingNotifier struct {
	notifications []notifier.BookingNotification
}

func (c *capturingNotifier) NotifyAsync(n notifier.BookingNotification) {
	c.notifications = append(c.notifications, n)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testTrainer() *domain.Trainer {
	return &domain.Trainer{
		ID:         1,
		UserID:     100,
		HourlyRate: 75.00,
		Timezone:   "America/New_York",
		Published:  true,
	}
}

func workingDaySlots() []*domain.AvailabilitySlot {
	return []*domain.AvailabilitySlot{
		{TrainerID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", Enabled: true},
	}
}

func testRequest(t *testing.T) *Request {
	t.Helper()
	date, err := time.Parse(domain.DateFormat, "2026-09-08") // вторник
	require.NoError(t, err)
	return &Request{
		ClientID:        200,
		TrainerID:       1,
		SessionDate:     date,
		StartTime:       "10:00",
		DurationMinutes: 90,
		LocationAddress: "Central Park, NYC",
	}
}

func newTestUseCase(bookings *fakeBookingRepo, slots *fakeAvailabilityRepo, trainers *fakeTrainerRepo, n Notifier) *UseCase {
	uc := NewUseCase(bookings, slots, trainers, inlineTxManager{}, nil, n, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_Success(t *testing.T) {
	bookings := &fakeBookingRepo{nextID: 7}
	notifications := &capturingNotifier{}
	uc := newTestUseCase(bookings, &fakeAvailabilityRepo{slots: workingDaySlots()},
		&fakeTrainerRepo{trainer: testTrainer()}, notifications)

	resp, err := uc.Execute(context.Background(), testRequest(t))

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "unpaid", resp.PaymentStatus)
	assert.Equal(t, "11:30", resp.EndTime.String())
	// Цена зафиксирована: 75.00 * 90/60 = 112.50
	assert.InDelta(t, 112.50, resp.TotalPrice, 0.001)
	assert.InDelta(t, 75.00, resp.HourlyRate, 0.001)

	require.Len(t, notifications.notifications, 1)
	assert.Equal(t, notifier.EventBookingCreated, notifications.notifications[0].Event)
	// О новой заявке уведомляется тренер
	assert.Equal(t, []int64{100}, notifications.notifications[0].RecipientIDs)
}

func TestExecute_SlotConflict(t *testing.T) {
	bookings := &fakeBookingRepo{
		nextID: 7,
		active: []*domain.Booking{
			{StartTime: "10:30", EndTime: "11:30", Status: domain.StatusPending},
		},
	}
	uc := newTestUseCase(bookings, &fakeAvailabilityRepo{slots: workingDaySlots()},
		&fakeTrainerRepo{trainer: testTrainer()}, &capturingNotifier{})

	_, err := uc.Execute(context.Background(), testRequest(t))

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, bookings.created)
}

func TestExecute_OutsideAvailability(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{nextID: 7},
		&fakeAvailabilityRepo{slots: []*domain.AvailabilitySlot{
			{TrainerID: 1, DayOfWeek: 1, StartTime: "12:00", EndTime: "14:00", Enabled: true},
		}},
		&fakeTrainerRepo{trainer: testTrainer()}, &capturingNotifier{})

	_, err := uc.Execute(context.Background(), testRequest(t))

	assert.ErrorIs(t, err, ErrOutsideAvailability)
}

func TestExecute_OwnBooking(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{nextID: 7},
		&fakeAvailabilityRepo{slots: workingDaySlots()},
		&fakeTrainerRepo{trainer: testTrainer()}, &capturingNotifier{})

	req := testRequest(t)
	req.ClientID = 100 // userID тренера

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrOwnBooking)
}

func TestExecute_LeadTimeTooShort(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{nextID: 7},
		&fakeAvailabilityRepo{slots: workingDaySlots()},
		&fakeTrainerRepo{trainer: testTrainer()}, &capturingNotifier{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), testRequest(t))

	assert.ErrorIs(t, err, ErrLeadTimeTooShort)
}

func TestExecute_TrainerNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{nextID: 7},
		&fakeAvailabilityRepo{},
		&fakeTrainerRepo{err: trainerRepo.ErrTrainerNotFound}, &capturingNotifier{})

	_, err := uc.Execute(context.Background(), testRequest(t))

	assert.ErrorIs(t, err, ErrTrainerNotFound)
}

func TestExecute_TrainerNotPublished(t *testing.T) {
	trainer := testTrainer()
	trainer.Published = false

	uc := newTestUseCase(&fakeBookingRepo{nextID: 7},
		&fakeAvailabilityRepo{},
		&fakeTrainerRepo{trainer: trainer}, &capturingNotifier{})

	_, err := uc.Execute(context.Background(), testRequest(t))

	assert.ErrorIs(t, err, ErrTrainerNotPublished)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{nextID: 7},
		&fakeAvailabilityRepo{slots: workingDaySlots()},
		&fakeTrainerRepo{trainer: testTrainer()}, &capturingNotifier{})

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"нулевой clientID", func(r *Request) { r.ClientID = 0 }},
		{"нулевой trainerID", func(r *Request) { r.TrainerID = 0 }},
		{"недопустимая длительность", func(r *Request) { r.DurationMinutes = 45 }},
		{"пустой адрес", func(r *Request) { r.LocationAddress = "" }},
		{"пустое время начала", func(r *Request) { r.StartTime = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest(t)
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_AdjacentBookingAllowed(t *testing.T) {
	bookings := &fakeBookingRepo{
		nextID: 8,
		active: []*domain.Booking{
			{StartTime: "08:30", EndTime: "10:00", Status: domain.StatusConfirmed},
			{StartTime: "11:30", EndTime: "12:30", Status: domain.StatusConfirmed},
		},
	}
	uc := newTestUseCase(bookings, &fakeAvailabilityRepo{slots: workingDaySlots()},
		&fakeTrainerRepo{trainer: testTrainer()}, &capturingNotifier{})

	resp, err := uc.Execute(context.Background(), testRequest(t))

	require.NoError(t, err)
	assert.Equal(t, int64(8), resp.ID)
}
