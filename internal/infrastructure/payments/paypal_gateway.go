package payments

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"agency_billing/internal/usecase/interfaces"

	"github.com/plutov/paypal/v4"
	"github.com/shopspring/decimal"
)

// PayPalGateway runs the approve-then-capture checkout through PayPal Orders v2.
type PayPalGateway struct {
	client    *paypal.Client
	returnURL string
	cancelURL string

	tokenMu sync.Mutex
}

var _ interfaces.ICheckoutGateway = (*PayPalGateway)(nil)

func NewPayPalGateway(clientID, secret, mode, frontendURL string) (*PayPalGateway, error) {
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(secret) == "" {
		log.Printf("[payment][paypal] missing PAYPAL_CLIENT_ID or PAYPAL_SECRET")
		return nil, fmt.Errorf("paypal: %w", ErrMissingCredentials)
	}
	base := paypal.APIBaseSandBox
	if mode == "live" {
		base = paypal.APIBaseLive
	}
	c, err := paypal.NewClient(clientID, secret, base)
	if err != nil {
		return nil, err
	}
	frontendURL = strings.TrimRight(frontendURL, "/")
	log.Printf("[payment][paypal] client initialized mode=%s", mode)
	return &PayPalGateway{
		client:    c,
		returnURL: frontendURL + "/checkout/success",
		cancelURL: frontendURL + "/checkout/cancel",
	}, nil
}

// ensureToken fetches the first access token; the client refreshes it afterwards.
func (g *PayPalGateway) ensureToken(ctx context.Context) error {
	g.tokenMu.Lock()
	defer g.tokenMu.Unlock()
	if g.client.Token != nil {
		return nil
	}
	_, err := g.client.GetAccessToken(ctx)
	return err
}

func (g *PayPalGateway) CreateCheckout(ctx context.Context, req interfaces.CheckoutRequest) (interfaces.Checkout, error) {
	if err := g.ensureToken(ctx); err != nil {
		log.Printf("[payment][paypal] token failed reason=%s err=%v", classifyGatewayError(err), err)
		return interfaces.Checkout{}, err
	}

	units := []paypal.PurchaseUnitRequest{{
		ReferenceID: req.Reference,
		Description: req.Description,
		Amount: &paypal.PurchaseUnitAmount{
			Currency: strings.ToUpper(req.Currency),
			Value:    req.Amount.StringFixed(2),
		},
	}}
	appCtx := &paypal.ApplicationContext{
		ReturnURL:  g.returnURL,
		CancelURL:  g.cancelURL,
		UserAction: "PAY_NOW",
	}

	log.Printf("[payment][paypal] create order start reference=%s amount=%s", req.Reference, req.Amount.StringFixed(2))
	order, err := g.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, appCtx)
	if err != nil {
		log.Printf("[payment][paypal] create order failed reason=%s err=%v", classifyGatewayError(err), err)
		return interfaces.Checkout{}, err
	}

	out := interfaces.Checkout{ID: order.ID, Status: order.Status}
	for _, l := range order.Links {
		if l.Rel == "approve" || l.Rel == "payer-action" {
			out.ApprovalURL = l.Href
			break
		}
	}
	log.Printf("[payment][paypal] create order success id=%s status=%s", order.ID, order.Status)
	return out, nil
}

func (g *PayPalGateway) CaptureCheckout(ctx context.Context, checkoutID string) (interfaces.CheckoutCapture, error) {
	if err := g.ensureToken(ctx); err != nil {
		return interfaces.CheckoutCapture{}, err
	}
	resp, err := g.client.CaptureOrder(ctx, checkoutID, paypal.CaptureOrderRequest{})
	if err != nil {
		log.Printf("[payment][paypal] capture failed id=%s reason=%s err=%v", checkoutID, classifyGatewayError(err), err)
		return interfaces.CheckoutCapture{}, err
	}

	out := interfaces.CheckoutCapture{
		ID:        resp.ID,
		Status:    resp.Status,
		Completed: resp.Status == "COMPLETED",
		Amount:    decimal.Zero,
	}
	for _, unit := range resp.PurchaseUnits {
		if unit.Payments == nil {
			continue
		}
		for _, c := range unit.Payments.Captures {
			if c.Amount == nil || c.Status != "COMPLETED" {
				continue
			}
			if v, err := decimal.NewFromString(c.Amount.Value); err == nil {
				out.Amount = out.Amount.Add(v)
			}
		}
	}
	log.Printf("[payment][paypal] capture done id=%s status=%s amount=%s", checkoutID, resp.Status, out.Amount.StringFixed(2))
	return out, nil
}
