package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// lookupTimeout таймаут на получение контактных данных одного адресата
const lookupTimeout = 5 * time.Second

// Notifier отправляет email-уведомления о событиях бронирования через SendGrid.
// Адреса получателей подтягиваются из сервиса идентификации по ID пользователя.
// Отправка выполняется best-effort: ошибки логируются, но не влияют
// на результат бизнес-операции.
type Notifier struct {
	client    *sendgrid.Client
	users     UserProvider
	fromEmail string
	fromName  string
	enabled   bool
	log       Logger

	// Точка отправки письма; подменяется в тестах
	sendFn func(notification BookingNotification, recipient Recipient) error
}

// New создает новый экземпляр нотификатора.
// При enabled=false, пустом API-ключе или отсутствии провайдера
// пользователей письма не отправляются.
func New(apiKey, fromEmail, fromName string, enabled bool, users UserProvider, log Logger) *Notifier {
	n := &Notifier{
		users:     users,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   enabled && apiKey != "" && fromEmail != "" && users != nil,
		log:       log,
	}

	if n.enabled {
		n.client = sendgrid.NewSendClient(apiKey)
	}
	n.sendFn = n.send

	return n
}

// NotifyAsync отправляет уведомление адресатам в отдельной горутине.
// Вызывается из сервисного слоя после успешного коммита операции.
func (n *Notifier) NotifyAsync(notification BookingNotification) {
	if !n.enabled {
		return
	}

	if len(notification.RecipientIDs) == 0 {
		n.log.Warn("No recipients for %s notification for booking %d",
			notification.Event, notification.Booking.ID)
		return
	}

	go func() {
		for _, userID := range notification.RecipientIDs {
			n.deliver(userID, notification)
		}
	}()
}

// deliver находит контактные данные адресата и отправляет письмо
func (n *Notifier) deliver(userID int64, notification BookingNotification) {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	user, err := n.users.GetUser(ctx, userID)
	if err != nil {
		n.log.Error("Failed to resolve recipient user=%d for %s notification for booking %d: %v",
			userID, notification.Event, notification.Booking.ID, err)
		return
	}

	if user.Email == "" {
		n.log.Warn("Recipient user=%d has no email, skipping %s notification for booking %d",
			userID, notification.Event, notification.Booking.ID)
		return
	}

	recipient := Recipient{Email: user.Email, Name: user.Name}
	if err := n.sendFn(notification, recipient); err != nil {
		n.log.Error("Failed to send %s notification for booking %d to user=%d: %v",
			notification.Event, notification.Booking.ID, userID, err)
	}
}

func (n *Notifier) send(notification BookingNotification, recipient Recipient) error {
	if !n.enabled {
		return ErrNotConfigured
	}

	subject, plainText := renderBookingEmail(notification)

	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail(recipient.Name, recipient.Email)
	message := mail.NewSingleEmail(from, subject, to, plainText, "")

	resp, err := n.client.Send(message)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: sendgrid returned status %d: %s", ErrSendFailed, resp.StatusCode, resp.Body)
	}

	n.log.Info("Sent %s notification for booking %d to %s",
		notification.Event, notification.Booking.ID, recipient.Email)

	return nil
}

func renderBookingEmail(notification BookingNotification) (subject, body string) {
	b := notification.Booking
	session := fmt.Sprintf("%s %s-%s",
		b.SessionDate.Format("2006-01-02"), b.StartTime, b.EndTime)

	switch notification.Event {
	case EventBookingCreated:
		subject = "New booking request"
		body = fmt.Sprintf("You have a new booking request for %s. Total price: %.2f.", session, b.TotalPrice)
	case EventBookingConfirmed:
		subject = "Booking confirmed"
		body = fmt.Sprintf("Your booking for %s has been confirmed by the trainer.", session)
	case EventBookingDeclined:
		subject = "Booking declined"
		body = fmt.Sprintf("Your booking request for %s was declined. Reason: %s.", session, notification.Reason)
	case EventBookingCancelled:
		subject = "Booking cancelled"
		body = fmt.Sprintf("The booking for %s has been cancelled.", session)
		if notification.Reason != "" {
			body = fmt.Sprintf("%s Reason: %s.", body, notification.Reason)
		}
	case EventBookingCompleted:
		subject = "Session completed"
		body = fmt.Sprintf("Your session on %s has been marked as completed.", session)
	default:
		subject = "Booking update"
		body = fmt.Sprintf("Your booking for %s has been updated.", session)
	}

	return subject, body
}
