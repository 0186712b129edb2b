package response

import (
	"agency_billing/internal/usecase"
)

type PaymentIntentResponse struct {
	ClientSecret    string  `json:"clientSecret"`
	PaymentIntentID string  `json:"paymentIntentId"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}

func FromPaymentIntent(r usecase.PaymentIntentResult) PaymentIntentResponse {
	return PaymentIntentResponse{
		ClientSecret:    r.ClientSecret,
		PaymentIntentID: r.PaymentIntentID,
		Amount:          money(r.Amount),
		Currency:        r.Currency,
	}
}

type CheckoutResponse struct {
	Order       OrderResponse `json:"order"`
	CheckoutID  string        `json:"checkoutId"`
	ApprovalURL string        `json:"approvalUrl,omitempty"`
}

func FromCheckout(r usecase.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		Order:       FromOrder(r.Order),
		CheckoutID:  r.CheckoutID,
		ApprovalURL: r.ApprovalURL,
	}
}
