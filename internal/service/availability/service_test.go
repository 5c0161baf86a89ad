package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	availabilityRepo "github.com/m04kA/FitMarket-BookingService/internal/infra/storage/availability"
	trainerRepo "github.com/m04kA/FitMarket-BookingService/internal/infra/storage/trainer"
	"github.com/m04kA/FitMarket-BookingService/internal/service/availability/models"
)

type fakeAvailabilityRepo struct {
	slots   map[int64]*domain.AvailabilitySlot
	nextID  int64
	deleted []int64
}

func newFakeAvailabilityRepo(slots ...*domain.AvailabilitySlot) *fakeAvailabilityRepo {
	repo := &fakeAvailabilityRepo{slots: map[int64]*domain.AvailabilitySlot{}, nextID: 100}
	for _, s := range slots {
		repo.slots[s.ID] = s
	}
	return repo
}

func (f *fakeAvailabilityRepo) Create(_ context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	s := *slot
	s.ID = f.nextID
	f.nextID++
	f.slots[s.ID] = &s
	return &s, nil
}

func (f *fakeAvailabilityRepo) GetByID(_ context.Context, id int64) (*domain.AvailabilitySlot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, availabilityRepo.ErrSlotNotFound
	}
	return slot, nil
}

func (f *fakeAvailabilityRepo) ListByTrainer(_ context.Context, trainerID int64) ([]*domain.AvailabilitySlot, error) {
	var out []*domain.AvailabilitySlot
	for _, s := range f.slots {
		if s.TrainerID == trainerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) ListEnabledByTrainerAndDay(_ context.Context, trainerID int64, dayOfWeek int) ([]*domain.AvailabilitySlot, error) {
	return f.ListEnabledByTrainerDayExcluding(context.Background(), trainerID, dayOfWeek, 0)
}

func (f *fakeAvailabilityRepo) ListEnabledByTrainerDayExcluding(_ context.Context, trainerID int64, dayOfWeek int, excludeID int64) ([]*domain.AvailabilitySlot, error) {
	var out []*domain.AvailabilitySlot
	for _, s := range f.slots {
		if s.TrainerID == trainerID && s.DayOfWeek == dayOfWeek && s.Enabled && s.ID != excludeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) SetEnabled(_ context.Context, id int64, enabled bool) error {
	slot, ok := f.slots[id]
	if !ok {
		return availabilityRepo.ErrSlotNotFound
	}
	slot.Enabled = enabled
	return nil
}

func (f *fakeAvailabilityRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.slots[id]; !ok {
		return availabilityRepo.ErrSlotNotFound
	}
	delete(f.slots, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeTrainerRepo struct {
	trainer *domain.Trainer
}

func (f *fakeTrainerRepo) GetByID(_ context.Context, _ int64) (*domain.Trainer, error) {
	if f.trainer == nil {
		return nil, trainerRepo.ErrTrainerNotFound
	}
	return f.trainer, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const trainerUserID = 100

func testTrainer() *domain.Trainer {
	return &domain.Trainer{ID: 1, UserID: trainerUserID, Published: true}
}

func ownerActor() models.Actor {
	return models.Actor{UserID: trainerUserID, Role: domain.RoleTrainer}
}

func mondayMorning(id int64, enabled bool) *domain.AvailabilitySlot {
	return &domain.AvailabilitySlot{
		ID:        id,
		TrainerID: 1,
		DayOfWeek: 0,
		StartTime: "09:00",
		EndTime:   "12:00",
		Enabled:   enabled,
	}
}

func TestAddSlot(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := NewService(repo, &fakeTrainerRepo{trainer: testTrainer()}, nopLogger{})

	resp, err := svc.AddSlot(context.Background(), &models.AddSlotRequest{
		Actor:     ownerActor(),
		TrainerID: 1,
		DayOfWeek: 0,
		StartTime: "09:00",
		EndTime:   "12:00",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.True(t, resp.Enabled)
	assert.Equal(t, "09:00", resp.StartTime)
}

func TestAddSlot_Overlap(t *testing.T) {
	repo := newFakeAvailabilityRepo(mondayMorning(1, true))
	svc := NewService(repo, &fakeTrainerRepo{trainer: testTrainer()}, nopLogger{})

	_, err := svc.AddSlot(context.Background(), &models.AddSlotRequest{
		Actor:     ownerActor(),
		TrainerID: 1,
		DayOfWeek: 0,
		StartTime: "11:00",
		EndTime:   "14:00",
	})

	assert.ErrorIs(t, err, ErrSlotOverlap)
}

func TestAddSlot_AdjacentAllowed(t *testing.T) {
	repo := newFakeAvailabilityRepo(mondayMorning(1, true))
	svc := NewService(repo, &fakeTrainerRepo{trainer: testTrainer()}, nopLogger{})

	_, err := svc.AddSlot(context.Background(), &models.AddSlotRequest{
		Actor:     ownerActor(),
		TrainerID: 1,
		DayOfWeek: 0,
		StartTime: "12:00",
		EndTime:   "15:00",
	})

	assert.NoError(t, err)
}

func TestAddSlot_DisabledSlotDoesNotBlock(t *testing.T) {
	repo := newFakeAvailabilityRepo(mondayMorning(1, false))
	svc := NewService(repo, &fakeTrainerRepo{trainer: testTrainer()}, nopLogger{})

	_, err := svc.AddSlot(context.Background(), &models.AddSlotRequest{
		Actor:     ownerActor(),
		TrainerID: 1,
		DayOfWeek: 0,
		StartTime: "10:00",
		EndTime:   "11:00",
	})

	assert.NoError(t, err)
}

func TestAddSlot_Validation(t *testing.T) {
	svc := NewService(newFakeAvailabilityRepo(), &fakeTrainerRepo{trainer: testTrainer()}, nopLogger{})

	tests := []struct {
		name string
		req  *models.AddSlotRequest
	}{
		{"день вне диапазона", &models.AddSlotRequest{Actor: ownerActor(), TrainerID: 1, DayOfWeek: 7, StartTime: "09:00", EndTime: "12:00"}},
		{"начало после конца", &models.AddSlotRequest{Actor: ownerActor(), TrainerID: 1, DayOfWeek: 0, StartTime: "12:00", EndTime: "09:00"}},
		{"пустое окно", &models.AddSlotRequest{Actor: ownerActor(), TrainerID: 1, DayOfWeek: 0, StartTime: "09:00", EndTime: "09:00"}},
		{"кривой формат", &models.AddSlotRequest{Actor: ownerActor(), TrainerID: 1, DayOfWeek: 0, StartTime: "9am", EndTime: "12:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddSlot(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestAddSlot_NotOwner(t *testing.T) {
	svc := NewService(newFakeAvailabilityRepo(), &fakeTrainerRepo{trainer: testTrainer()}, nopLogger{})

	_, err := svc.AddSlot(context.Background(), &models.AddSlotRequest{
		Actor:     models.Actor{UserID: 777, Role: domain.RoleTrainer},
		TrainerID: 1,
		DayOfWeek: 0,
		StartTime: "09:00",
		EndTime:   "12:00",
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestAddSlot_AdminAllowed(t *testing.T) {
	svc := NewService(newFakeAvailabilityRepo(), &fakeTrainerRepo{trainer: testTrainer()}, nopLogger{})

	_, err := svc.AddSlot(context.Background(), &models.AddSlotRequest{
		Actor:     models.Actor{UserID: 999, Role: domain.RoleAdmin},
		TrainerID: 1,
		DayOfWeek: 0,
		StartTime: "09:00",
		EndTime:   "12:00",
	})

	assert.NoError(t, err)
}

func TestToggleSlot_Disable(t *testing.T) {
	repo := newFakeAvailabilityRepo(mondayMorning(1, true))
	svc := NewService(repo, &fakeTrainerRepo{trainer: testTrainer()}, nopLogger{})

	resp, err := svc.ToggleSlot(context.Background(), &models.ToggleSlotRequest{
		Actor:   ownerActor(),
		SlotID:  1,
		Enabled: false,
	})

	require.NoError(t, err)
	assert.False(t, resp.Enabled)
	assert.False(t, repo.slots[1].Enabled)
}

func TestToggleSlot_Idempotent(t *testing.T) {
	repo := newFakeAvailabilityRepo(mondayMorning(1, true))
	svc := NewService(repo, &fakeTrainerRepo{trainer: testTrainer()}, nopLogger{})

	resp, err := svc.ToggleSlot(context.Background(), &models.ToggleSlotRequest{
		Actor:   ownerActor(),
		SlotID:  1,
		Enabled: true,
	})

	require.NoError(t, err)
	assert.True(t, resp.Enabled)
}

func TestToggleSlot_ReenableChecksOverlap(t *testing.T) {
	disabled := mondayMorning(1, false)
	// Пока слот был выключен, тренер добавил пересекающийся
	added := &domain.AvailabilitySlot{
		ID: 2, TrainerID: 1, DayOfWeek: 0,
		StartTime: "10:00", EndTime: "13:00", Enabled: true,
	}
	repo := newFakeAvailabilityRepo(disabled, added)
	svc := NewService(repo, &fakeTrainerRepo{trainer: testTrainer()}, nopLogger{})

	_, err := svc.ToggleSlot(context.Background(), &models.ToggleSlotRequest{
		Actor:   ownerActor(),
		SlotID:  1,
		Enabled: true,
	})

	assert.ErrorIs(t, err, ErrSlotOverlap)
	assert.False(t, repo.slots[1].Enabled)
}

func TestToggleSlot_NotFound(t *testing.T) {
	svc := NewService(newFakeAvailabilityRepo(), &fakeTrainerRepo{trainer: testTrainer()}, nopLogger{})

	_, err := svc.ToggleSlot(context.Background(), &models.ToggleSlotRequest{
		Actor:   ownerActor(),
		SlotID:  42,
		Enabled: false,
	})

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestRemoveSlot(t *testing.T) {
	repo := newFakeAvailabilityRepo(mondayMorning(1, true))
	svc := NewService(repo, &fakeTrainerRepo{trainer: testTrainer()}, nopLogger{})

	err := svc.RemoveSlot(context.Background(), 1, ownerActor())

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.deleted)
}

func TestRemoveSlot_NotOwner(t *testing.T) {
	repo := newFakeAvailabilityRepo(mondayMorning(1, true))
	svc := NewService(repo, &fakeTrainerRepo{trainer: testTrainer()}, nopLogger{})

	err := svc.RemoveSlot(context.Background(), 1, models.Actor{UserID: 777, Role: domain.RoleTrainer})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.deleted)
}

func TestListSlots_TrainerNotFound(t *testing.T) {
	svc := NewService(newFakeAvailabilityRepo(), &fakeTrainerRepo{}, nopLogger{})

	_, err := svc.ListSlots(context.Background(), 42)

	assert.ErrorIs(t, err, ErrTrainerNotFound)
}
