package payments

import (
	"context"
	"fmt"

	"agency_billing/internal/usecase/interfaces"
)

// UnconfiguredGateway stands in for a provider whose credentials are missing.
// Every call fails with ErrGatewayNotConfigured.
type UnconfiguredGateway struct {
	Provider string
}

func (g UnconfiguredGateway) CreateIntent(ctx context.Context, req interfaces.PaymentIntentRequest) (interfaces.PaymentIntent, error) {
	return interfaces.PaymentIntent{}, g.err()
}

func (g UnconfiguredGateway) GetIntent(ctx context.Context, id string) (interfaces.PaymentIntent, error) {
	return interfaces.PaymentIntent{}, g.err()
}

func (g UnconfiguredGateway) ParseWebhook(payload []byte, signature string) (interfaces.WebhookEvent, error) {
	return interfaces.WebhookEvent{}, fmt.Errorf("%w: %w", interfaces.ErrInvalidWebhookSignature, g.err())
}

func (g UnconfiguredGateway) CreateCheckout(ctx context.Context, req interfaces.CheckoutRequest) (interfaces.Checkout, error) {
	return interfaces.Checkout{}, g.err()
}

func (g UnconfiguredGateway) CaptureCheckout(ctx context.Context, checkoutID string) (interfaces.CheckoutCapture, error) {
	return interfaces.CheckoutCapture{}, g.err()
}

func (g UnconfiguredGateway) err() error {
	return fmt.Errorf("%s: %w", g.Provider, ErrGatewayNotConfigured)
}
