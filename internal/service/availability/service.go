package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	availabilityRepo "github.com/m04kA/FitMarket-BookingService/internal/infra/storage/availability"
	trainerRepo "github.com/m04kA/FitMarket-BookingService/internal/infra/storage/trainer"
	"github.com/m04kA/FitMarket-BookingService/internal/service/availability/models"
	"github.com/m04kA/FitMarket-BookingService/pkg/types"
)

// Service сервис управления еженедельным расписанием доступности тренера
type Service struct {
	availabilityRepo AvailabilityRepository
	trainerRepo      TrainerRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepository AvailabilityRepository,
	trainerRepository TrainerRepository,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepository,
		trainerRepo:      trainerRepository,
		logger:           logger,
	}
}

// ListSlots возвращает еженедельное расписание тренера.
// Публичная операция: клиенты видят расписание при выборе времени.
func (s *Service) ListSlots(ctx context.Context, trainerID int64) (*models.SlotListResponse, error) {
	s.logger.Info("ListSlots: fetching slots for trainer=%d", trainerID)

	if _, err := s.getTrainer(ctx, "ListSlots", trainerID); err != nil {
		return nil, err
	}

	slots, err := s.availabilityRepo.ListByTrainer(ctx, trainerID)
	if err != nil {
		s.logger.Error("ListSlots: repository error for trainer=%d: %v", trainerID, err)
		return nil, fmt.Errorf("%w: ListSlots - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlotList(slots), nil
}

// AddSlot добавляет слот в еженедельное расписание тренера.
// Слот не может пересекаться с другими включенными слотами того же дня.
func (s *Service) AddSlot(ctx context.Context, req *models.AddSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("AddSlot: trainer=%d, day=%d, %s-%s by user=%d",
		req.TrainerID, req.DayOfWeek, req.StartTime, req.EndTime, req.Actor.UserID)

	if err := validateSlotWindow(req.DayOfWeek, req.StartTime, req.EndTime); err != nil {
		s.logger.Warn("AddSlot: validation failed: %v", err)
		return nil, err
	}

	trainer, err := s.getTrainer(ctx, "AddSlot", req.TrainerID)
	if err != nil {
		return nil, err
	}

	if err := checkOwnerAccess(trainer, req.Actor); err != nil {
		s.logger.Warn("AddSlot: access denied for user=%d to trainer=%d", req.Actor.UserID, req.TrainerID)
		return nil, err
	}

	existing, err := s.availabilityRepo.ListEnabledByTrainerAndDay(ctx, req.TrainerID, req.DayOfWeek)
	if err != nil {
		s.logger.Error("AddSlot: repository error for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: AddSlot - repository error: %v", ErrInternal, err)
	}

	if overlapping := findOverlap(existing, req.StartTime, req.EndTime); overlapping != nil {
		s.logger.Warn("AddSlot: %s-%s overlaps slot id=%d of trainer=%d",
			req.StartTime, req.EndTime, overlapping.ID, req.TrainerID)
		return nil, ErrSlotOverlap
	}

	created, err := s.availabilityRepo.Create(ctx, &domain.AvailabilitySlot{
		TrainerID: req.TrainerID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Enabled:   true,
	})
	if err != nil {
		s.logger.Error("AddSlot: failed to create slot for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: AddSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddSlot: created slot id=%d for trainer=%d", created.ID, req.TrainerID)
	return models.FromDomainSlot(created), nil
}

// ToggleSlot включает или выключает слот расписания.
// Операция идемпотентна. Включение повторно проверяет пересечения:
// пока слот был выключен, тренер мог добавить другие слоты в этот день.
func (s *Service) ToggleSlot(ctx context.Context, req *models.ToggleSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("ToggleSlot: slot=%d, enabled=%t by user=%d", req.SlotID, req.Enabled, req.Actor.UserID)

	slot, err := s.getSlot(ctx, "ToggleSlot", req.SlotID)
	if err != nil {
		return nil, err
	}

	trainer, err := s.getTrainer(ctx, "ToggleSlot", slot.TrainerID)
	if err != nil {
		return nil, err
	}

	if err := checkOwnerAccess(trainer, req.Actor); err != nil {
		s.logger.Warn("ToggleSlot: access denied for user=%d to slot=%d", req.Actor.UserID, req.SlotID)
		return nil, err
	}

	if req.Enabled && !slot.Enabled {
		siblings, err := s.availabilityRepo.ListEnabledByTrainerDayExcluding(ctx, slot.TrainerID, slot.DayOfWeek, slot.ID)
		if err != nil {
			s.logger.Error("ToggleSlot: repository error for slot=%d: %v", req.SlotID, err)
			return nil, fmt.Errorf("%w: ToggleSlot - repository error: %v", ErrInternal, err)
		}

		if overlapping := findOverlap(siblings, slot.StartTime, slot.EndTime); overlapping != nil {
			s.logger.Warn("ToggleSlot: enabling slot id=%d would overlap slot id=%d", slot.ID, overlapping.ID)
			return nil, ErrSlotOverlap
		}
	}

	if err := s.availabilityRepo.SetEnabled(ctx, req.SlotID, req.Enabled); err != nil {
		if errors.Is(err, availabilityRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("ToggleSlot: repository error for slot=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: ToggleSlot - repository error: %v", ErrInternal, err)
	}

	slot.Enabled = req.Enabled
	s.logger.Info("ToggleSlot: slot id=%d enabled=%t", req.SlotID, req.Enabled)
	return models.FromDomainSlot(slot), nil
}

// RemoveSlot удаляет слот из расписания.
// Существующие бронирования при этом не отменяются: удаление слота
// закрывает только будущие бронирования на это окно.
func (s *Service) RemoveSlot(ctx context.Context, slotID int64, actor models.Actor) error {
	s.logger.Info("RemoveSlot: slot=%d by user=%d", slotID, actor.UserID)

	slot, err := s.getSlot(ctx, "RemoveSlot", slotID)
	if err != nil {
		return err
	}

	trainer, err := s.getTrainer(ctx, "RemoveSlot", slot.TrainerID)
	if err != nil {
		return err
	}

	if err := checkOwnerAccess(trainer, actor); err != nil {
		s.logger.Warn("RemoveSlot: access denied for user=%d to slot=%d", actor.UserID, slotID)
		return err
	}

	if err := s.availabilityRepo.Delete(ctx, slotID); err != nil {
		if errors.Is(err, availabilityRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("RemoveSlot: repository error for slot=%d: %v", slotID, err)
		return fmt.Errorf("%w: RemoveSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveSlot: slot id=%d removed", slotID)
	return nil
}

// Вспомогательные методы

func (s *Service) getSlot(ctx context.Context, op string, id int64) (*domain.AvailabilitySlot, error) {
	slot, err := s.availabilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrSlotNotFound) {
			s.logger.Warn("%s: slot id=%d not found", op, id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("%s: repository error for slot id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return slot, nil
}

func (s *Service) getTrainer(ctx context.Context, op string, id int64) (*domain.Trainer, error) {
	trainer, err := s.trainerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, trainerRepo.ErrTrainerNotFound) {
			s.logger.Warn("%s: trainer id=%d not found", op, id)
			return nil, ErrTrainerNotFound
		}
		s.logger.Error("%s: failed to get trainer id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - failed to get trainer: %v", ErrInternal, op, err)
	}
	return trainer, nil
}

// checkOwnerAccess разрешает операцию владельцу расписания и администратору
func checkOwnerAccess(trainer *domain.Trainer, actor models.Actor) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}

	if actor.Role == domain.RoleTrainer && trainer.UserID == actor.UserID {
		return nil
	}

	return ErrAccessDenied
}

// validateSlotWindow проверяет корректность окна слота
func validateSlotWindow(dayOfWeek int, start, end types.TimeString) error {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}

	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !start.IsBefore(end) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return nil
}

// findOverlap возвращает первый слот, пересекающийся с окном [start, end)
func findOverlap(slots []*domain.AvailabilitySlot, start, end types.TimeString) *domain.AvailabilitySlot {
	for _, slot := range slots {
		if slot.Overlaps(start, end) {
			return slot
		}
	}
	return nil
}
