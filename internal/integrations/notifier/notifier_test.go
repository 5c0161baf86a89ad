package notifier

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	"github.com/m04kA/FitMarket-BookingService/internal/integrations/identity"
)

type fakeUserProvider struct {
	users map[int64]*identity.User
}

func (f *fakeUserProvider) GetUser(_ context.Context, userID int64) (*identity.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, identity.ErrUserNotFound
	}
	return user, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func testNotification(event BookingEvent, recipientIDs ...int64) BookingNotification {
	date, _ := time.Parse(domain.DateFormat, "2026-09-10")
	return BookingNotification{
		Event: event,
		Booking: &domain.Booking{
			ID:          5,
			SessionDate: date,
			StartTime:   "10:00",
			EndTime:     "11:00",
			TotalPrice:  112.50,
		},
		RecipientIDs: recipientIDs,
	}
}

// Письмо о подтверждении должно реально уходить адресату,
// чей email получен из сервиса идентификации
func TestNotifyAsync_SendsToResolvedRecipient(t *testing.T) {
	provider := &fakeUserProvider{users: map[int64]*identity.User{
		200: {ID: 200, Email: "client@example.com", Name: "Alex"},
	}}
	n := New("sg-key", "bookings@fitmarket.example", "FitMarket", true, provider, nopLogger{})
	require.True(t, n.enabled)

	sent := make(chan Recipient, 1)
	n.sendFn = func(_ BookingNotification, r Recipient) error {
		sent <- r
		return nil
	}

	n.NotifyAsync(testNotification(EventBookingConfirmed, 200))

	select {
	case recipient := <-sent:
		assert.Equal(t, "client@example.com", recipient.Email)
		assert.Equal(t, "Alex", recipient.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a send attempt for the confirmed booking")
	}
}

func TestNotifyAsync_SendsToAllRecipients(t *testing.T) {
	provider := &fakeUserProvider{users: map[int64]*identity.User{
		100: {ID: 100, Email: "trainer@example.com", Name: "Sam"},
		200: {ID: 200, Email: "client@example.com", Name: "Alex"},
	}}
	n := New("sg-key", "bookings@fitmarket.example", "FitMarket", true, provider, nopLogger{})

	sent := make(chan Recipient, 2)
	n.sendFn = func(_ BookingNotification, r Recipient) error {
		sent <- r
		return nil
	}

	n.NotifyAsync(testNotification(EventBookingCancelled, 200, 100))

	emails := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		select {
		case recipient := <-sent:
			emails = append(emails, recipient.Email)
		case <-time.After(2 * time.Second):
			t.Fatal("expected send attempts to both parties")
		}
	}
	assert.ElementsMatch(t, []string{"client@example.com", "trainer@example.com"}, emails)
}

// Адресат, не найденный в сервисе идентификации, пропускается без отправки
func TestDeliver_UnknownRecipientSkipped(t *testing.T) {
	provider := &fakeUserProvider{users: map[int64]*identity.User{}}
	n := New("sg-key", "bookings@fitmarket.example", "FitMarket", true, provider, nopLogger{})

	attempts := 0
	n.sendFn = func(BookingNotification, Recipient) error {
		attempts++
		return nil
	}

	n.deliver(999, testNotification(EventBookingConfirmed, 999))

	assert.Zero(t, attempts)
}

func TestDeliver_RecipientWithoutEmailSkipped(t *testing.T) {
	provider := &fakeUserProvider{users: map[int64]*identity.User{
		200: {ID: 200, Name: "Alex"},
	}}
	n := New("sg-key", "bookings@fitmarket.example", "FitMarket", true, provider, nopLogger{})

	attempts := 0
	n.sendFn = func(BookingNotification, Recipient) error {
		attempts++
		return nil
	}

	n.deliver(200, testNotification(EventBookingConfirmed, 200))

	assert.Zero(t, attempts)
}

func TestDeliver_SendErrorDoesNotPanic(t *testing.T) {
	provider := &fakeUserProvider{users: map[int64]*identity.User{
		200: {ID: 200, Email: "client@example.com", Name: "Alex"},
	}}
	n := New("sg-key", "bookings@fitmarket.example", "FitMarket", true, provider, nopLogger{})
	n.sendFn = func(BookingNotification, Recipient) error {
		return fmt.Errorf("%w: sendgrid returned status 401", ErrSendFailed)
	}

	assert.NotPanics(t, func() {
		n.deliver(200, testNotification(EventBookingConfirmed, 200))
	})
}

func TestNew_DisabledWithoutUserProvider(t *testing.T) {
	n := New("sg-key", "bookings@fitmarket.example", "FitMarket", true, nil, nopLogger{})
	assert.False(t, n.enabled)
}

func TestNew_DisabledWithoutAPIKey(t *testing.T) {
	provider := &fakeUserProvider{}
	n := New("", "bookings@fitmarket.example", "FitMarket", true, provider, nopLogger{})
	assert.False(t, n.enabled)
}

func TestRenderBookingEmail(t *testing.T) {
	tests := []struct {
		event       BookingEvent
		wantSubject string
	}{
		{EventBookingCreated, "New booking request"},
		{EventBookingConfirmed, "Booking confirmed"},
		{EventBookingDeclined, "Booking declined"},
		{EventBookingCancelled, "Booking cancelled"},
		{EventBookingCompleted, "Session completed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.event), func(t *testing.T) {
			subject, body := renderBookingEmail(testNotification(tt.event, 200))
			assert.Equal(t, tt.wantSubject, subject)
			assert.Contains(t, body, "2026-09-10 10:00-11:00")
		})
	}
}
