package check_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	trainerRepo "github.com/m04kA/FitMarket-BookingService/internal/infra/storage/trainer"
)

// UseCase use case для проверки доступности слота тренера
type UseCase struct {
	trainerRepo      TrainerRepository
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	trainerRepo TrainerRepository,
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		trainerRepo:      trainerRepo,
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute проверяет, доступен ли слот для бронирования.
// Проверка read-only и не гарантирует, что слот останется свободным:
// окончательный контроль конфликтов выполняется при создании бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckSlot: trainer=%d, date=%s, time=%s, duration=%d",
		req.TrainerID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckSlot: validation failed: %v", err)
		return nil, err
	}

	endTime, err := req.StartTime.AddMinutes(req.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CheckSlot: session does not fit into the day: %v", err)
		return nil, fmt.Errorf("%w: session end time: %v", ErrInvalidInput, err)
	}

	trainer, err := uc.trainerRepo.GetByID(ctx, req.TrainerID)
	if err != nil {
		if errors.Is(err, trainerRepo.ErrTrainerNotFound) {
			uc.logger.Warn("CheckSlot: trainer id=%d not found", req.TrainerID)
			return nil, ErrTrainerNotFound
		}
		uc.logger.Error("CheckSlot: failed to get trainer id=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: failed to get trainer: %v", ErrInternal, err)
	}

	if !trainer.Published {
		uc.logger.Warn("CheckSlot: trainer id=%d is not published", req.TrainerID)
		return nil, ErrTrainerNotPublished
	}

	now := uc.timeProvider.Now()

	if !meetsLeadTime(req.Date, now, trainer.Location()) {
		uc.logger.Info("CheckSlot: lead time too short for trainer=%d, date=%s",
			req.TrainerID, req.Date.Format(domain.DateFormat))
		return &Response{Bookable: false, Reason: ReasonLeadTimeTooShort, EndTime: endTime}, nil
	}

	dayOfWeek := domain.DayOfWeekMonday0(req.Date)

	slots, err := uc.availabilityRepo.ListEnabledByTrainerAndDay(ctx, req.TrainerID, dayOfWeek)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to get availability for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	if !coveredByAvailability(slots, req.StartTime, endTime) {
		uc.logger.Info("CheckSlot: %s-%s is outside availability of trainer=%d",
			req.StartTime, endTime, req.TrainerID)
		return &Response{Bookable: false, Reason: ReasonOutsideAvailability, EndTime: endTime}, nil
	}

	bookings, err := uc.bookingRepo.GetActiveByTrainerAndDate(ctx, req.TrainerID, req.Date)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to get bookings for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	if conflictsWithBookings(bookings, req.StartTime, endTime) {
		uc.logger.Info("CheckSlot: %s-%s conflicts with an active booking of trainer=%d",
			req.StartTime, endTime, req.TrainerID)
		return &Response{Bookable: false, Reason: ReasonSlotConflict, EndTime: endTime}, nil
	}

	uc.logger.Info("CheckSlot: slot %s-%s is bookable for trainer=%d", req.StartTime, endTime, req.TrainerID)
	return &Response{Bookable: true, EndTime: endTime}, nil
}
