package check_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	trainerRepo "github.com/m04kA/FitMarket-BookingService/internal/infra/storage/trainer"
)

type fakeTrainerRepo struct {
	trainer *domain.Trainer
	err     error
}

func (f *fakeTrainerRepo) GetByID(_ context.Context, _ int64) (*domain.Trainer, error) {
	return f.trainer, f.err
}

type fakeAvailabilityRepo struct {
	slots []*domain.AvailabilitySlot
	err   error
}

func (f *fakeAvailabilityRepo) ListEnabledByTrainerAndDay(_ context.Context, _ int64, _ int) ([]*domain.AvailabilitySlot, error) {
	return f.slots, f.err
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetActiveByTrainerAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, f.err
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

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateFormat, s)
	require.NoError(t, err)
	return d
}

func publishedTrainer() *domain.Trainer {
	return &domain.Trainer{
		ID:        1,
		UserID:    100,
		Timezone:  "America/New_York",
		Published: true,
	}
}

func newUseCaseForTest(trainers *fakeTrainerRepo, slots *fakeAvailabilityRepo, bookings *fakeBookingRepo, now time.Time) *UseCase {
	uc := NewUseCase(trainers, slots, bookings, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_Bookable(t *testing.T) {
	uc := newUseCaseForTest(
		&fakeTrainerRepo{trainer: publishedTrainer()},
		&fakeAvailabilityRepo{slots: []*domain.AvailabilitySlot{
			{TrainerID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", Enabled: true},
		}},
		&fakeBookingRepo{},
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		TrainerID:       1,
		Date:            mustDate(t, "2026-09-08"),
		StartTime:       "10:00",
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	assert.True(t, resp.Bookable)
	assert.Empty(t, resp.Reason)
	assert.Equal(t, "11:00", resp.EndTime.String())
}

func TestExecute_OutsideAvailability(t *testing.T) {
	uc := newUseCaseForTest(
		&fakeTrainerRepo{trainer: publishedTrainer()},
		&fakeAvailabilityRepo{slots: []*domain.AvailabilitySlot{
			{TrainerID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", Enabled: true},
		}},
		&fakeBookingRepo{},
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	// 11:30-12:30 выходит за границу окна 09:00-12:00
	resp, err := uc.Execute(context.Background(), &Request{
		TrainerID:       1,
		Date:            mustDate(t, "2026-09-08"),
		StartTime:       "11:30",
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	assert.False(t, resp.Bookable)
	assert.Equal(t, ReasonOutsideAvailability, resp.Reason)
}

func TestExecute_SlotConflict(t *testing.T) {
	uc := newUseCaseForTest(
		&fakeTrainerRepo{trainer: publishedTrainer()},
		&fakeAvailabilityRepo{slots: []*domain.AvailabilitySlot{
			{TrainerID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", Enabled: true},
		}},
		&fakeBookingRepo{bookings: []*domain.Booking{
			{StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed},
		}},
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		TrainerID:       1,
		Date:            mustDate(t, "2026-09-08"),
		StartTime:       "10:30",
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	assert.False(t, resp.Bookable)
	assert.Equal(t, ReasonSlotConflict, resp.Reason)
}

func TestExecute_AdjacentBookingIsNotConflict(t *testing.T) {
	uc := newUseCaseForTest(
		&fakeTrainerRepo{trainer: publishedTrainer()},
		&fakeAvailabilityRepo{slots: []*domain.AvailabilitySlot{
			{TrainerID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", Enabled: true},
		}},
		&fakeBookingRepo{bookings: []*domain.Booking{
			{StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed},
		}},
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		TrainerID:       1,
		Date:            mustDate(t, "2026-09-08"),
		StartTime:       "11:00",
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	assert.True(t, resp.Bookable)
}

func TestExecute_LeadTimeTooShort(t *testing.T) {
	uc := newUseCaseForTest(
		&fakeTrainerRepo{trainer: publishedTrainer()},
		&fakeAvailabilityRepo{slots: []*domain.AvailabilitySlot{
			{TrainerID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", Enabled: true},
		}},
		&fakeBookingRepo{},
		// "сейчас" - тот же день, что и сессия
		time.Date(2026, 9, 8, 8, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		TrainerID:       1,
		Date:            mustDate(t, "2026-09-08"),
		StartTime:       "10:00",
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	assert.False(t, resp.Bookable)
	assert.Equal(t, ReasonLeadTimeTooShort, resp.Reason)
}

func TestExecute_LeadTimeUsesTrainerZone(t *testing.T) {
	// В UTC уже 9 сентября, но в Нью-Йорке еще 8-е,
	// поэтому бронирование на 9-е все еще проходит по lead time.
	uc := newUseCaseForTest(
		&fakeTrainerRepo{trainer: publishedTrainer()},
		&fakeAvailabilityRepo{slots: []*domain.AvailabilitySlot{
			{TrainerID: 1, DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00", Enabled: true},
		}},
		&fakeBookingRepo{},
		time.Date(2026, 9, 9, 2, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		TrainerID:       1,
		Date:            mustDate(t, "2026-09-09"),
		StartTime:       "10:00",
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	assert.True(t, resp.Bookable)
}

func TestExecute_TrainerNotFound(t *testing.T) {
	uc := newUseCaseForTest(
		&fakeTrainerRepo{err: trainerRepo.ErrTrainerNotFound},
		&fakeAvailabilityRepo{},
		&fakeBookingRepo{},
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{
		TrainerID:       42,
		Date:            mustDate(t, "2026-09-08"),
		StartTime:       "10:00",
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrTrainerNotFound)
}

func TestExecute_TrainerNotPublished(t *testing.T) {
	trainer := publishedTrainer()
	trainer.Published = false

	uc := newUseCaseForTest(
		&fakeTrainerRepo{trainer: trainer},
		&fakeAvailabilityRepo{},
		&fakeBookingRepo{},
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{
		TrainerID:       1,
		Date:            mustDate(t, "2026-09-08"),
		StartTime:       "10:00",
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrTrainerNotPublished)
}

func TestExecute_InvalidDuration(t *testing.T) {
	uc := newUseCaseForTest(
		&fakeTrainerRepo{trainer: publishedTrainer()},
		&fakeAvailabilityRepo{},
		&fakeBookingRepo{},
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{
		TrainerID:       1,
		Date:            mustDate(t, "2026-09-08"),
		StartTime:       "10:00",
		DurationMinutes: 45,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
