package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"agency_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockIntentGateway stands in for Stripe when PAYMENT_GATEWAY_MOCK is on.
// Intents succeed immediately for their full amount.
type MockIntentGateway struct {
	mu      sync.Mutex
	intents map[string]interfaces.PaymentIntent
}

var _ interfaces.IPaymentIntentGateway = (*MockIntentGateway)(nil)

func NewMockIntentGateway() *MockIntentGateway {
	log.Printf("[payment][mock] intent gateway mock mode enabled")
	return &MockIntentGateway{intents: map[string]interfaces.PaymentIntent{}}
}

func (g *MockIntentGateway) CreateIntent(_ context.Context, req interfaces.PaymentIntentRequest) (interfaces.PaymentIntent, error) {
	id := "pi_mock_" + uuid.NewString()
	meta := make(map[string]string, len(req.Metadata))
	for k, v := range req.Metadata {
		meta[k] = v
	}
	pi := interfaces.PaymentIntent{
		ID:             id,
		ClientSecret:   id + "_secret",
		Status:         interfaces.IntentStatusSucceeded,
		Amount:         req.Amount,
		AmountReceived: req.Amount,
		Currency:       req.Currency,
		Metadata:       meta,
	}
	g.mu.Lock()
	g.intents[id] = pi
	g.mu.Unlock()
	log.Printf("[payment][mock] create intent id=%s amount=%s", id, req.Amount.StringFixed(2))
	return pi, nil
}

func (g *MockIntentGateway) GetIntent(_ context.Context, id string) (interfaces.PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	pi, ok := g.intents[id]
	if !ok {
		return interfaces.PaymentIntent{}, fmt.Errorf("mock intent %s: \"status\":404", id)
	}
	return pi, nil
}

type mockEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

// ParseWebhook skips signature checks and resolves the intent from memory.
func (g *MockIntentGateway) ParseWebhook(payload []byte, _ string) (interfaces.WebhookEvent, error) {
	var ev mockEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return interfaces.WebhookEvent{}, fmt.Errorf("%w: %v", interfaces.ErrInvalidWebhookSignature, err)
	}
	out := interfaces.WebhookEvent{ID: ev.ID, Type: ev.Type}
	if pi, err := g.GetIntent(context.Background(), ev.Data.Object.ID); err == nil {
		out.Intent = &pi
	}
	return out, nil
}

// MockCheckoutGateway approves every checkout for the requested amount.
type MockCheckoutGateway struct {
	mu      sync.Mutex
	amounts map[string]decimal.Decimal
}

var _ interfaces.ICheckoutGateway = (*MockCheckoutGateway)(nil)

func NewMockCheckoutGateway() *MockCheckoutGateway {
	log.Printf("[payment][mock] checkout gateway mock mode enabled")
	return &MockCheckoutGateway{amounts: map[string]decimal.Decimal{}}
}

func (g *MockCheckoutGateway) CreateCheckout(_ context.Context, req interfaces.CheckoutRequest) (interfaces.Checkout, error) {
	id := "mock_checkout_" + uuid.NewString()
	g.mu.Lock()
	g.amounts[id] = req.Amount
	g.mu.Unlock()
	return interfaces.Checkout{ID: id, Status: "CREATED", ApprovalURL: "https://checkout.mock/approve/" + id}, nil
}

func (g *MockCheckoutGateway) CaptureCheckout(_ context.Context, checkoutID string) (interfaces.CheckoutCapture, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	amount, ok := g.amounts[checkoutID]
	if !ok {
		return interfaces.CheckoutCapture{ID: checkoutID, Status: "NOT_FOUND", Amount: decimal.Zero}, nil
	}
	return interfaces.CheckoutCapture{ID: checkoutID, Status: "COMPLETED", Completed: true, Amount: amount}, nil
}
