package response

import (
	"time"

	"github.com/shopspring/decimal"
)

// Envelope wraps every successful JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// WebhookAck is the provider-facing acknowledgement; its shape is fixed.
type WebhookAck struct {
	Received bool `json:"received"`
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func moneyPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	v := money(*d)
	return &v
}

func timePtr(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	return t
}
