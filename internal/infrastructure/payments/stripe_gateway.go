package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase/interfaces"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// StripeGateway creates and reads payment intents and verifies webhook signatures.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

var _ interfaces.IPaymentIntentGateway = (*StripeGateway)(nil)

func NewStripeGateway(secretKey, webhookSecret string) (*StripeGateway, error) {
	if strings.TrimSpace(secretKey) == "" {
		log.Printf("[payment][stripe] missing STRIPE_SECRET_KEY")
		return nil, fmt.Errorf("stripe: %w", ErrMissingCredentials)
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	log.Printf("[payment][stripe] client initialized")
	return &StripeGateway{api: api, webhookSecret: webhookSecret}, nil
}

func (g *StripeGateway) CreateIntent(ctx context.Context, req interfaces.PaymentIntentRequest) (interfaces.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(entities.ToMinorUnits(req.Amount)),
		Currency:    stripe.String(strings.ToLower(req.Currency)),
		Description: stripe.String(req.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	log.Printf("[payment][stripe] create intent start amount=%s currency=%s", req.Amount.StringFixed(2), req.Currency)
	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		log.Printf("[payment][stripe] create intent failed reason=%s err=%v", classifyGatewayError(err), err)
		return interfaces.PaymentIntent{}, err
	}
	log.Printf("[payment][stripe] create intent success id=%s status=%s", pi.ID, pi.Status)
	return fromStripeIntent(pi), nil
}

func (g *StripeGateway) GetIntent(ctx context.Context, id string) (interfaces.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		log.Printf("[payment][stripe] get intent failed id=%s reason=%s err=%v", id, classifyGatewayError(err), err)
		return interfaces.PaymentIntent{}, err
	}
	return fromStripeIntent(pi), nil
}

func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (interfaces.WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return interfaces.WebhookEvent{}, fmt.Errorf("%w: %v", interfaces.ErrInvalidWebhookSignature, err)
	}

	out := interfaces.WebhookEvent{ID: event.ID, Type: string(event.Type)}
	if strings.HasPrefix(out.Type, "payment_intent.") && event.Data != nil {
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			log.Printf("[payment][stripe] undecodable payment intent event_id=%s type=%s err=%v", event.ID, out.Type, err)
			return out, nil
		}
		intent := fromStripeIntent(&pi)
		out.Intent = &intent
	}
	return out, nil
}

func fromStripeIntent(pi *stripe.PaymentIntent) interfaces.PaymentIntent {
	return interfaces.PaymentIntent{
		ID:             pi.ID,
		ClientSecret:   pi.ClientSecret,
		Status:         string(pi.Status),
		Amount:         entities.FromMinorUnits(pi.Amount),
		AmountReceived: entities.FromMinorUnits(pi.AmountReceived),
		Currency:       string(pi.Currency),
		Metadata:       pi.Metadata,
	}
}
