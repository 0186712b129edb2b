package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"agency_billing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76/webhook"
)

func TestClassifyGatewayError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New(`{"error":"bad_request","status":400}`), "bad_request"},
		{errors.New(`{"status":401}`), "unauthorized"},
		{errors.New("resource_missing: No such payment_intent"), "not_found"},
		{errors.New(`{"code":2034,"message":"Invalid users involved"}`), "invalid_users"},
		{errors.New("dial tcp: timeout"), "unknown"},
	}
	for _, tc := range cases {
		if got := classifyGatewayError(tc.err); got != tc.want {
			t.Fatalf("classifyGatewayError(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestStripeGateway_ParseWebhook(t *testing.T) {
	const secret = "whsec_test"
	g := &StripeGateway{webhookSecret: secret}
	payload := []byte(`{
		"id": "evt_1",
		"object": "event",
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_1", "object": "payment_intent", "status": "succeeded",
			"amount": 40000, "amount_received": 40000, "currency": "eur",
			"metadata": {"type": "order_deposit", "orderId": "o-1"}}}
	}`)

	t.Run("valid signature", func(t *testing.T) {
		now := time.Now()
		sig := webhook.ComputeSignature(now, payload, secret)
		header := fmt.Sprintf("t=%d,v1=%x", now.Unix(), sig)

		ev, err := g.ParseWebhook(payload, header)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ev.ID != "evt_1" || ev.Type != interfaces.EventPaymentIntentSucceeded {
			t.Fatalf("unexpected event: %+v", ev)
		}
		if ev.Intent == nil || ev.Intent.ID != "pi_1" || !ev.Intent.AmountReceived.Equal(decimal.NewFromInt(400)) {
			t.Fatalf("unexpected intent: %+v", ev.Intent)
		}
		if ev.Intent.Metadata[interfaces.MetadataOrderID] != "o-1" {
			t.Fatalf("metadata lost: %+v", ev.Intent.Metadata)
		}
	})

	t.Run("bad signature", func(t *testing.T) {
		_, err := g.ParseWebhook(payload, "t=1,v1=deadbeef")
		if !errors.Is(err, interfaces.ErrInvalidWebhookSignature) {
			t.Fatalf("expected ErrInvalidWebhookSignature, got %v", err)
		}
	})

	t.Run("signed event with an undecodable intent", func(t *testing.T) {
		malformed := []byte(`{
			"id": "evt_2",
			"object": "event",
			"type": "payment_intent.succeeded",
			"data": {"object": {"id": "pi_2", "object": "payment_intent", "amount": "forty", "metadata": {"type": "order_deposit"}}}
		}`)
		now := time.Now()
		sig := webhook.ComputeSignature(now, malformed, secret)
		header := fmt.Sprintf("t=%d,v1=%x", now.Unix(), sig)

		ev, err := g.ParseWebhook(malformed, header)
		if err != nil {
			t.Fatalf("a signed event must be acknowledged, got %v", err)
		}
		if ev.ID != "evt_2" || ev.Type != interfaces.EventPaymentIntentSucceeded || ev.Intent != nil {
			t.Fatalf("expected the event without an intent, got %+v", ev)
		}
	})
}

func TestNewGatewaysRequireCredentials(t *testing.T) {
	if _, err := NewStripeGateway("", ""); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("stripe: expected ErrMissingCredentials, got %v", err)
	}
	if _, err := NewPayPalGateway("id", " ", "sandbox", ""); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("paypal: expected ErrMissingCredentials, got %v", err)
	}
	if _, err := NewMercadoPagoGateway("", ""); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("mercadopago: expected ErrMissingCredentials, got %v", err)
	}
}

func TestMockIntentGateway(t *testing.T) {
	g := NewMockIntentGateway()
	ctx := context.Background()

	pi, err := g.CreateIntent(ctx, interfaces.PaymentIntentRequest{
		Amount:   decimal.NewFromInt(600),
		Currency: "eur",
		Metadata: map[string]string{interfaces.MetadataOrderID: "o-1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pi.Succeeded() || !strings.HasPrefix(pi.ID, "pi_mock_") {
		t.Fatalf("unexpected intent: %+v", pi)
	}

	got, err := g.GetIntent(ctx, pi.ID)
	if err != nil || got.Metadata[interfaces.MetadataOrderID] != "o-1" {
		t.Fatalf("unexpected lookup: %+v (%v)", got, err)
	}

	ev, err := g.ParseWebhook([]byte(`{"id":"evt_9","type":"payment_intent.succeeded","data":{"object":{"id":"`+pi.ID+`"}}}`), "")
	if err != nil || ev.Intent == nil || ev.Intent.ID != pi.ID {
		t.Fatalf("unexpected event: %+v (%v)", ev, err)
	}
}

func TestMockCheckoutGateway(t *testing.T) {
	g := NewMockCheckoutGateway()
	ctx := context.Background()

	co, err := g.CreateCheckout(ctx, interfaces.CheckoutRequest{Reference: "CMD-2026-00001", Amount: decimal.NewFromInt(490), Currency: "eur"})
	if err != nil || co.ApprovalURL == "" {
		t.Fatalf("unexpected checkout: %+v (%v)", co, err)
	}
	captured, err := g.CaptureCheckout(ctx, co.ID)
	if err != nil || !captured.Completed || !captured.Amount.Equal(decimal.NewFromInt(490)) {
		t.Fatalf("unexpected capture: %+v (%v)", captured, err)
	}
	unknown, _ := g.CaptureCheckout(ctx, "nope")
	if unknown.Completed {
		t.Fatalf("unknown checkout must not complete")
	}
}

func TestUnconfiguredGateway(t *testing.T) {
	g := UnconfiguredGateway{Provider: "stripe"}

	if _, err := g.CreateIntent(context.Background(), interfaces.PaymentIntentRequest{}); !errors.Is(err, ErrGatewayNotConfigured) {
		t.Fatalf("expected ErrGatewayNotConfigured, got %v", err)
	}
	if _, err := g.CaptureCheckout(context.Background(), "chk"); !errors.Is(err, ErrGatewayNotConfigured) {
		t.Fatalf("expected ErrGatewayNotConfigured, got %v", err)
	}
	_, err := g.ParseWebhook([]byte(`{}`), "")
	if !errors.Is(err, interfaces.ErrInvalidWebhookSignature) || !errors.Is(err, ErrGatewayNotConfigured) {
		t.Fatalf("webhook error must carry both causes, got %v", err)
	}
}
