package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/FitMarket-BookingService/internal/infra/storage/booking"
	trainerRepo "github.com/m04kA/FitMarket-BookingService/internal/infra/storage/trainer"
	"github.com/m04kA/FitMarket-BookingService/internal/integrations/notifier"
	"github.com/m04kA/FitMarket-BookingService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo  BookingRepository
	trainerRepo  TrainerRepository
	notifier     Notifier
	payments     PaymentsClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepository BookingRepository,
	trainerRepository TrainerRepository,
	bookingNotifier Notifier,
	paymentsClient PaymentsClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepository,
		trainerRepo:  trainerRepository,
		notifier:     bookingNotifier,
		payments:     paymentsClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно только сторонам бронирования (клиенту и тренеру) и администратору.
func (s *Service) GetByID(ctx context.Context, id int64, actor models.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d role=%s", id, actor.UserID, actor.Role)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkPartyAccess(ctx, booking, actor); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента.
// Клиент видит только собственную историю, администратор - любую.
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	if req.Actor.Role != domain.RoleAdmin && req.Actor.UserID != req.ClientID {
		s.logger.Warn("GetClientBookings: user=%d is not client=%d", req.Actor.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	filter := domain.ClientBookingsFilter{ClientID: req.ClientID}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetByClient(ctx, filter)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetTrainerBookings получает расписание бронирований тренера с фильтрацией
// по периоду и статусу. Доступно самому тренеру и администратору.
func (s *Service) GetTrainerBookings(ctx context.Context, req *models.GetTrainerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetTrainerBookings: fetching bookings for trainer=%d by user=%d", req.TrainerID, req.Actor.UserID)

	if req.Actor.Role != domain.RoleAdmin {
		trainer, err := s.getTrainer(ctx, "GetTrainerBookings", req.TrainerID)
		if err != nil {
			return nil, err
		}

		if trainer.UserID != req.Actor.UserID {
			s.logger.Warn("GetTrainerBookings: user=%d is not trainer=%d", req.Actor.UserID, req.TrainerID)
			return nil, ErrAccessDenied
		}
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTrainerBookings: invalid filter for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByTrainerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTrainerBookings: repository error for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: GetTrainerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTrainerBookings: fetched %d bookings for trainer=%d", len(bookings), req.TrainerID)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает заявку на бронирование.
// Доступно тренеру бронирования; переход pending -> confirmed.
func (s *Service) Confirm(ctx context.Context, bookingID int64, actor models.Actor) error {
	s.logger.Info("Confirm: confirming booking id=%d by user=%d", bookingID, actor.UserID)

	booking, err := s.getBooking(ctx, "Confirm", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkTrainerAccess(ctx, booking, actor); err != nil {
		s.logger.Warn("Confirm: access denied for user=%d to booking id=%d", actor.UserID, bookingID)
		return err
	}

	if !domain.CanTransition(booking.Status, domain.StatusConfirmed) {
		s.logger.Warn("Confirm: booking id=%d cannot be confirmed from status=%s", bookingID, booking.Status)
		return ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, booking.Status, domain.StatusConfirmed); err != nil {
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			s.logger.Warn("Confirm: booking id=%d status changed concurrently", bookingID)
			return ErrInvalidTransition
		}
		s.logger.Error("Confirm: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Confirm: booking id=%d confirmed", bookingID)
	s.notify(notifier.EventBookingConfirmed, booking, "", booking.ClientID)
	return nil
}

// Decline отклоняет заявку на бронирование.
// Доступно тренеру бронирования; причина обязательна.
// Отклонение фиксируется как отмена со стороны тренера.
func (s *Service) Decline(ctx context.Context, bookingID int64, actor models.Actor, reason string) error {
	s.logger.Info("Decline: declining booking id=%d by user=%d", bookingID, actor.UserID)

	if reason == "" {
		s.logger.Warn("Decline: missing reason for booking id=%d", bookingID)
		return ErrReasonRequired
	}
	if len(reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.getBooking(ctx, "Decline", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkTrainerAccess(ctx, booking, actor); err != nil {
		s.logger.Warn("Decline: access denied for user=%d to booking id=%d", actor.UserID, bookingID)
		return err
	}

	if booking.Status != domain.StatusPending {
		s.logger.Warn("Decline: booking id=%d is not pending, status=%s", bookingID, booking.Status)
		return ErrInvalidTransition
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, booking.Status, domain.StatusCancelledByTrainer, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			s.logger.Warn("Decline: booking id=%d status changed concurrently", bookingID)
			return ErrInvalidTransition
		}
		s.logger.Error("Decline: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Decline - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Decline: booking id=%d declined", bookingID)
	s.refundAsync(booking)
	s.notify(notifier.EventBookingDeclined, booking, reason, booking.ClientID)
	return nil
}

// Cancel отменяет бронирование.
// Клиент отменяет свое бронирование не позднее чем за 24 часа до начала
// сессии (по времени в зоне тренера). Тренер и администратор отменяют
// в любой момент, но обязаны указать причину.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d role=%s",
		bookingID, req.Actor.UserID, req.Actor.Role)

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	trainer, err := s.getTrainer(ctx, "Cancel", booking.TrainerID)
	if err != nil {
		return err
	}

	cancelStatus, err := s.resolveCancelStatus(booking, trainer, req)
	if err != nil {
		return err
	}

	if !domain.CanTransition(booking.Status, cancelStatus) {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled from status=%s", bookingID, booking.Status)
		return ErrInvalidTransition
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, booking.Status, cancelStatus, req.Reason); err != nil {
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			s.logger.Warn("Cancel: booking id=%d status changed concurrently", bookingID)
			return ErrInvalidTransition
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking id=%d cancelled with status=%s", bookingID, cancelStatus)
	s.refundAsync(booking)
	// Об отмене уведомляем обе стороны бронирования
	s.notify(notifier.EventBookingCancelled, booking, req.Reason, booking.ClientID, trainer.UserID)
	return nil
}

// Complete отмечает сессию проведенной.
// Доступно тренеру бронирования и администратору; переход confirmed -> completed.
// Завершение до времени окончания сессии допускается, но логируется.
func (s *Service) Complete(ctx context.Context, bookingID int64, req *models.CompleteBookingRequest) error {
	s.logger.Info("Complete: completing booking id=%d by user=%d", bookingID, req.Actor.UserID)

	if req.TrainerNotes != nil && len(*req.TrainerNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: trainerNotes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	booking, err := s.getBooking(ctx, "Complete", bookingID)
	if err != nil {
		return err
	}

	trainer, err := s.checkTrainerAccessReturning(ctx, booking, req.Actor)
	if err != nil {
		s.logger.Warn("Complete: access denied for user=%d to booking id=%d", req.Actor.UserID, bookingID)
		return err
	}

	if !domain.CanTransition(booking.Status, domain.StatusCompleted) {
		s.logger.Warn("Complete: booking id=%d cannot be completed from status=%s", bookingID, booking.Status)
		return ErrInvalidTransition
	}

	s.warnIfBeforeSessionEnd("Complete", booking, trainer)

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, booking.Status, domain.StatusCompleted); err != nil {
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			s.logger.Warn("Complete: booking id=%d status changed concurrently", bookingID)
			return ErrInvalidTransition
		}
		s.logger.Error("Complete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	if req.TrainerNotes != nil {
		if err := s.bookingRepo.SetTrainerNotes(ctx, bookingID, *req.TrainerNotes); err != nil {
			s.logger.Error("Complete: failed to save trainer notes for booking id=%d: %v", bookingID, err)
		}
	}

	s.logger.Info("Complete: booking id=%d completed", bookingID)
	s.notify(notifier.EventBookingCompleted, booking, "", booking.ClientID)
	return nil
}

// MarkNoShow отмечает неявку клиента.
// Доступно тренеру бронирования и администратору; переход confirmed -> no_show.
func (s *Service) MarkNoShow(ctx context.Context, bookingID int64, actor models.Actor) error {
	s.logger.Info("MarkNoShow: marking booking id=%d by user=%d", bookingID, actor.UserID)

	booking, err := s.getBooking(ctx, "MarkNoShow", bookingID)
	if err != nil {
		return err
	}

	trainer, err := s.checkTrainerAccessReturning(ctx, booking, actor)
	if err != nil {
		s.logger.Warn("MarkNoShow: access denied for user=%d to booking id=%d", actor.UserID, bookingID)
		return err
	}

	if !domain.CanTransition(booking.Status, domain.StatusNoShow) {
		s.logger.Warn("MarkNoShow: booking id=%d cannot be marked from status=%s", bookingID, booking.Status)
		return ErrInvalidTransition
	}

	s.warnIfBeforeSessionEnd("MarkNoShow", booking, trainer)

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, booking.Status, domain.StatusNoShow); err != nil {
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			s.logger.Warn("MarkNoShow: booking id=%d status changed concurrently", bookingID)
			return ErrInvalidTransition
		}
		s.logger.Error("MarkNoShow: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkNoShow: booking id=%d marked as no-show", bookingID)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
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

// checkPartyAccess разрешает доступ сторонам бронирования и администратору
func (s *Service) checkPartyAccess(ctx context.Context, booking *domain.Booking, actor models.Actor) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}

	if booking.ClientID == actor.UserID {
		return nil
	}

	trainer, err := s.getTrainer(ctx, "checkPartyAccess", booking.TrainerID)
	if err != nil {
		return err
	}

	if trainer.UserID == actor.UserID {
		return nil
	}

	return ErrAccessDenied
}

// checkTrainerAccess разрешает доступ тренеру бронирования и администратору
func (s *Service) checkTrainerAccess(ctx context.Context, booking *domain.Booking, actor models.Actor) error {
	_, err := s.checkTrainerAccessReturning(ctx, booking, actor)
	return err
}

func (s *Service) checkTrainerAccessReturning(ctx context.Context, booking *domain.Booking, actor models.Actor) (*domain.Trainer, error) {
	trainer, err := s.getTrainer(ctx, "checkTrainerAccess", booking.TrainerID)
	if err != nil {
		return nil, err
	}

	if actor.Role == domain.RoleAdmin {
		return trainer, nil
	}

	if trainer.UserID != actor.UserID {
		return nil, ErrAccessDenied
	}

	return trainer, nil
}

// resolveCancelStatus определяет статус отмены и проверяет права и ограничения
func (s *Service) resolveCancelStatus(booking *domain.Booking, trainer *domain.Trainer, req *models.CancelBookingRequest) (domain.BookingStatus, error) {
	// Клиент отменяет свое бронирование
	if booking.ClientID == req.Actor.UserID && req.Actor.Role == domain.RoleClient {
		if err := s.checkCancellationWindow(booking, trainer); err != nil {
			return "", err
		}
		return domain.StatusCancelledByClient, nil
	}

	// Тренер отменяет бронирование на себя
	if trainer.UserID == req.Actor.UserID && req.Actor.Role == domain.RoleTrainer {
		if req.Reason == "" {
			s.logger.Warn("Cancel: trainer cancellation of booking id=%d requires a reason", booking.ID)
			return "", ErrReasonRequired
		}
		return domain.StatusCancelledByTrainer, nil
	}

	// Администратор отменяет от имени платформы; фиксируется как отмена тренером
	if req.Actor.Role == domain.RoleAdmin {
		if req.Reason == "" {
			s.logger.Warn("Cancel: admin cancellation of booking id=%d requires a reason", booking.ID)
			return "", ErrReasonRequired
		}
		return domain.StatusCancelledByTrainer, nil
	}

	return "", ErrAccessDenied
}

// checkCancellationWindow проверяет правило 24 часов для отмены клиентом.
// Момент начала сессии вычисляется в зоне тренера.
func (s *Service) checkCancellationWindow(booking *domain.Booking, trainer *domain.Trainer) error {
	sessionStart, err := booking.SessionStart(trainer.Location())
	if err != nil {
		s.logger.Error("Cancel: failed to compute session start for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: failed to compute session start: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	if now.Add(domain.CancellationWindowHours * time.Hour).After(sessionStart) {
		s.logger.Warn("Cancel: cancellation window expired for booking id=%d, session at %s",
			booking.ID, sessionStart.Format(time.RFC3339))
		return ErrCancellationWindowExpired
	}

	return nil
}

// warnIfBeforeSessionEnd логирует преждевременное завершение или отметку неявки.
// Операция при этом не блокируется: тренер может закрыть сессию заранее.
func (s *Service) warnIfBeforeSessionEnd(op string, booking *domain.Booking, trainer *domain.Trainer) {
	sessionEnd, err := booking.SessionEnd(trainer.Location())
	if err != nil {
		return
	}

	if s.timeProvider.Now().Before(sessionEnd) {
		s.logger.Warn("%s: booking id=%d closed before session end %s",
			op, booking.ID, sessionEnd.Format(time.RFC3339))
	}
}

// refundAsync возвращает платеж при отмене бронирования.
// Возврат best-effort: его сбой не откатывает отмену, ошибка только логируется.
func (s *Service) refundAsync(booking *domain.Booking) {
	if s.payments == nil || !s.payments.Enabled() {
		return
	}
	if booking.PaymentIntentID == nil {
		return
	}
	if booking.PaymentStatus != domain.PaymentPaid && booking.PaymentStatus != domain.PaymentPending {
		return
	}

	intentID := *booking.PaymentIntentID
	bookingID := booking.ID

	go func() {
		if err := s.payments.Refund(intentID); err != nil {
			s.logger.Error("Cancel: failed to refund payment for booking id=%d: %v", bookingID, err)
			return
		}

		if err := s.bookingRepo.SetPaymentStatus(context.Background(), bookingID, domain.PaymentRefunded); err != nil {
			s.logger.Error("Cancel: failed to mark booking id=%d refunded: %v", bookingID, err)
			return
		}

		s.logger.Info("Cancel: payment for booking id=%d refunded", bookingID)
	}()
}

func (s *Service) notify(event notifier.BookingEvent, booking *domain.Booking, reason string, recipientIDs ...int64) {
	if s.notifier == nil || len(recipientIDs) == 0 {
		return
	}

	s.notifier.NotifyAsync(notifier.BookingNotification{
		Event:        event,
		Booking:      booking,
		RecipientIDs: recipientIDs,
		Reason:       reason,
	})
}
