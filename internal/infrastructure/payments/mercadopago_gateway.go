package payments

import (
	"context"
	"fmt"
	"log"
	"strings"

	"agency_billing/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
)

const mercadoPagoApproved = "approved"

// MercadoPagoGateway runs checkout through Checkout Pro preferences. Capture looks
// up the payments made against the preference's external reference.
type MercadoPagoGateway struct {
	preferences preference.Client
	payments    payment.Client
	backURL     string
}

var _ interfaces.ICheckoutGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken, frontendURL string) (*MercadoPagoGateway, error) {
	if strings.TrimSpace(accessToken) == "" {
		log.Printf("[payment][mercadopago] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, fmt.Errorf("mercadopago: %w", ErrMissingCredentials)
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][mercadopago] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][mercadopago] client initialized")

	return &MercadoPagoGateway{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
		backURL:     strings.TrimRight(frontendURL, "/") + "/checkout",
	}, nil
}

func (g *MercadoPagoGateway) CreateCheckout(ctx context.Context, req interfaces.CheckoutRequest) (interfaces.Checkout, error) {
	amount, _ := req.Amount.Float64()
	pref := preference.Request{
		ExternalReference: req.Reference,
		Items: []preference.ItemRequest{{
			ID:         req.Reference,
			Title:      req.Description,
			Quantity:   1,
			UnitPrice:  amount,
			CurrencyID: strings.ToUpper(req.Currency),
		}},
		BackURLs: &preference.BackURLsRequest{
			Success: g.backURL + "/success",
			Failure: g.backURL + "/cancel",
			Pending: g.backURL + "/pending",
		},
		AutoReturn: mercadoPagoApproved,
	}

	log.Printf("[payment][mercadopago] create preference start reference=%s amount=%s", req.Reference, req.Amount.StringFixed(2))
	resp, err := g.preferences.Create(ctx, pref)
	if err != nil {
		log.Printf("[payment][mercadopago] create preference failed reason=%s err=%v", classifyGatewayError(err), err)
		return interfaces.Checkout{}, err
	}
	log.Printf("[payment][mercadopago] create preference success id=%s", resp.ID)

	return interfaces.Checkout{ID: resp.ID, Status: "created", ApprovalURL: resp.InitPoint}, nil
}

func (g *MercadoPagoGateway) CaptureCheckout(ctx context.Context, checkoutID string) (interfaces.CheckoutCapture, error) {
	pref, err := g.preferences.Get(ctx, checkoutID)
	if err != nil {
		log.Printf("[payment][mercadopago] get preference failed id=%s reason=%s err=%v", checkoutID, classifyGatewayError(err), err)
		return interfaces.CheckoutCapture{}, err
	}

	found, err := g.payments.Search(ctx, payment.SearchRequest{
		Filters: map[string]string{"external_reference": pref.ExternalReference},
	})
	if err != nil {
		log.Printf("[payment][mercadopago] search payments failed reference=%s reason=%s err=%v", pref.ExternalReference, classifyGatewayError(err), err)
		return interfaces.CheckoutCapture{}, err
	}

	out := interfaces.CheckoutCapture{ID: checkoutID, Status: "pending", Amount: decimal.Zero}
	for _, p := range found.Results {
		if p.Status != mercadoPagoApproved {
			continue
		}
		out.Completed = true
		out.Status = mercadoPagoApproved
		out.ID = fmt.Sprintf("%d", p.ID)
		out.Amount = out.Amount.Add(decimal.NewFromFloat(p.TransactionAmount))
	}
	log.Printf("[payment][mercadopago] capture done id=%s status=%s amount=%s", checkoutID, out.Status, out.Amount.StringFixed(2))
	return out, nil
}
