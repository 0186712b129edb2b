package interfaces

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidWebhookSignature is returned by ParseWebhook when the payload was not
// signed with the shared secret.
var ErrInvalidWebhookSignature = errors.New("invalid webhook signature")

// Metadata keys and payment types tagged onto intents.
const (
	MetadataType        = "type"
	MetadataOrderID     = "orderId"
	MetadataOrderNumber = "orderNumber"
	MetadataQuoteID     = "quoteId"
	MetadataQuoteNumber = "quoteNumber"

	PaymentTypeOrderDeposit = "order_deposit"
	PaymentTypeOrderBalance = "order_balance"
	PaymentTypeQuoteDeposit = "quote_deposit"

	IntentStatusSucceeded = "succeeded"

	EventPaymentIntentSucceeded = "payment_intent.succeeded"
)

type PaymentIntentRequest struct {
	Amount      decimal.Decimal
	Currency    string
	Description string
	Metadata    map[string]string
}

type PaymentIntent struct {
	ID             string
	ClientSecret   string
	Status         string
	Amount         decimal.Decimal
	AmountReceived decimal.Decimal
	Currency       string
	Metadata       map[string]string
}

func (p PaymentIntent) Succeeded() bool {
	return p.Status == IntentStatusSucceeded
}

// WebhookEvent is a verified provider event. Intent is set for payment_intent.* events.
type WebhookEvent struct {
	ID     string
	Type   string
	Intent *PaymentIntent
}

// IPaymentIntentGateway abstracts the intent-based provider (e.g. Stripe) used for
// deposit and balance payments.
type IPaymentIntentGateway interface {
	CreateIntent(ctx context.Context, req PaymentIntentRequest) (PaymentIntent, error)
	GetIntent(ctx context.Context, id string) (PaymentIntent, error)
	ParseWebhook(payload []byte, signature string) (WebhookEvent, error)
}

type CheckoutRequest struct {
	Reference   string
	Description string
	Amount      decimal.Decimal
	Currency    string
}

type Checkout struct {
	ID          string
	Status      string
	ApprovalURL string
}

type CheckoutCapture struct {
	ID        string
	Status    string
	Completed bool
	Amount    decimal.Decimal
}

// ICheckoutGateway abstracts checkout-style providers (PayPal, Mercado Pago) used for
// one-off offer purchases: the buyer approves on the provider page, then we capture.
type ICheckoutGateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (Checkout, error)
	CaptureCheckout(ctx context.Context, checkoutID string) (CheckoutCapture, error)
}
