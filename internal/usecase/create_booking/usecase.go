package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	trainerRepo "github.com/m04kA/FitMarket-BookingService/internal/infra/storage/trainer"
	"github.com/m04kA/FitMarket-BookingService/internal/integrations/notifier"
	"github.com/m04kA/FitMarket-BookingService/internal/pricing"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	trainerRepo      TrainerRepository
	txManager        TransactionManager
	payments         PaymentsClient
	notifier         Notifier
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	trainerRepo TrainerRepository,
	txManager TransactionManager,
	paymentsClient PaymentsClient,
	bookingNotifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		trainerRepo:      trainerRepo,
		txManager:        txManager,
		payments:         paymentsClient,
		notifier:         bookingNotifier,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка конфликтов и вставка выполняются в одной сериализуемой транзакции,
// выборка активных бронирований блокирует строки через FOR UPDATE.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, trainer=%d, date=%s, time=%s, duration=%d",
		req.ClientID, req.TrainerID, req.SessionDate.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Вычисляем время окончания сессии
	endTime, err := req.StartTime.AddMinutes(req.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: session does not fit into the day: %v", err)
		return nil, fmt.Errorf("%w: session end time: %v", ErrInvalidInput, err)
	}

	// 3. Получаем профиль тренера
	trainer, err := uc.trainerRepo.GetByID(ctx, req.TrainerID)
	if err != nil {
		if errors.Is(err, trainerRepo.ErrTrainerNotFound) {
			uc.logger.Warn("CreateBooking: trainer id=%d not found", req.TrainerID)
			return nil, ErrTrainerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get trainer id=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: failed to get trainer: %v", ErrInternal, err)
	}

	if !trainer.Published {
		uc.logger.Warn("CreateBooking: trainer id=%d is not published", req.TrainerID)
		return nil, ErrTrainerNotPublished
	}

	// Тренер не может бронировать сессию сам у себя
	if trainer.UserID == req.ClientID {
		uc.logger.Warn("CreateBooking: user=%d attempted to book own session", req.ClientID)
		return nil, ErrOwnBooking
	}

	// 4. Проверяем минимальный срок бронирования в зоне тренера
	now := uc.timeProvider.Now()
	if !meetsLeadTime(req.SessionDate, now, trainer.Location()) {
		uc.logger.Warn("CreateBooking: lead time too short for trainer=%d, date=%s",
			req.TrainerID, req.SessionDate.Format(domain.DateFormat))
		return nil, ErrLeadTimeTooShort
	}

	var result *domain.Booking

	// 5. Проверка доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Интервал сессии должен быть покрыт расписанием тренера
		dayOfWeek := domain.DayOfWeekMonday0(req.SessionDate)

		slots, err := uc.availabilityRepo.ListEnabledByTrainerAndDay(txCtx, req.TrainerID, dayOfWeek)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get availability: %v", err)
			return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}

		if !coveredByAvailability(slots, req.StartTime, endTime) {
			uc.logger.Warn("CreateBooking: %s-%s is outside availability of trainer=%d",
				req.StartTime, endTime, req.TrainerID)
			return ErrOutsideAvailability
		}

		// 5.2. Активные бронирования на эту дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetActiveByTrainerAndDate(txCtx, req.TrainerID, req.SessionDate)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if conflictsWithBookings(bookings, req.StartTime, endTime) {
			uc.logger.Warn("CreateBooking: %s-%s conflicts with an active booking of trainer=%d",
				req.StartTime, endTime, req.TrainerID)
			return ErrSlotConflict
		}

		// 5.3. Фиксируем цену на момент бронирования
		totalPrice := pricing.ComputeTotal(trainer.HourlyRate, req.DurationMinutes)

		booking := &domain.Booking{
			TrainerID:       req.TrainerID,
			ClientID:        req.ClientID,
			SessionDate:     req.SessionDate,
			StartTime:       req.StartTime,
			EndTime:         endTime,
			DurationMinutes: req.DurationMinutes,
			LocationAddress: req.LocationAddress,
			ClientNotes:     req.ClientNotes,
			Status:          domain.StatusPending,
			PaymentStatus:   domain.PaymentUnpaid,
			HourlyRate:      trainer.HourlyRate,
			TotalPrice:      totalPrice,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d, total=%.2f", result.ID, result.TotalPrice)

	// 6. Платежное намерение создается best-effort после коммита:
	// бронирование валидно и в статусе unpaid, пока платеж не инициирован
	if uc.payments != nil && uc.payments.Enabled() {
		uc.createIntentAsync(result)
	}

	// 7. Уведомляем тренера о новой заявке
	if uc.notifier != nil {
		uc.notifier.NotifyAsync(notifier.BookingNotification{
			Event:        notifier.EventBookingCreated,
			Booking:      result,
			RecipientIDs: []int64{trainer.UserID},
		})
	}

	return toResponse(result), nil
}

func (uc *UseCase) createIntentAsync(booking *domain.Booking) {
	go func() {
		intent, err := uc.payments.CreateIntent(booking.ID, booking.TotalPrice)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create payment intent for booking id=%d: %v",
				booking.ID, err)
			return
		}

		if err := uc.bookingRepo.SetPaymentIntent(context.Background(), booking.ID, intent.ID); err != nil {
			uc.logger.Error("CreateBooking: failed to attach payment intent to booking id=%d: %v",
				booking.ID, err)
			return
		}

		uc.logger.Info("CreateBooking: payment intent %s created for booking id=%d", intent.ID, booking.ID)
	}()
}
