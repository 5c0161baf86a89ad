package payments

import (
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/refund"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...any)
	Error(format string, v ...any)
}

// Intent результат создания платежного намерения
type Intent struct {
	ID           string
	ClientSecret string
}

// Client обертка над Stripe для платежей по бронированиям.
// При enabled=false все операции возвращают ErrNotConfigured.
type Client struct {
	currency string
	enabled  bool
	log      Logger
}

// New создает новый платежный клиент. API-ключ Stripe глобальный.
func New(apiKey, currency string, enabled bool, log Logger) *Client {
	c := &Client{
		currency: currency,
		enabled:  enabled && apiKey != "",
		log:      log,
	}

	if c.enabled {
		stripe.Key = apiKey
	}

	return c
}

// Enabled сообщает, настроен ли платежный контур
func (c *Client) Enabled() bool {
	return c.enabled
}

// CreateIntent создает платежное намерение на сумму бронирования.
// amount передается в основной валюте, конвертация в центы выполняется здесь.
func (c *Client) CreateIntent(bookingID int64, amount float64) (*Intent, error) {
	if !c.enabled {
		return nil, ErrNotConfigured
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(c.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("booking_id", fmt.Sprintf("%d", bookingID))

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: booking_id=%d: %v", ErrCreateIntent, bookingID, err)
	}

	c.log.Info("Created payment intent %s for booking %d, amount %.2f %s",
		pi.ID, bookingID, amount, c.currency)

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}

// Refund возвращает платеж по ID платежного намерения
func (c *Client) Refund(intentID string) error {
	if !c.enabled {
		return ErrNotConfigured
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
	}

	if _, err := refund.New(params); err != nil {
		return fmt.Errorf("%w: intent_id=%s: %v", ErrRefund, intentID, err)
	}

	c.log.Info("Refunded payment intent %s", intentID)

	return nil
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Floor(amount*100 + 0.5))
}
