package request

import (
	"strings"

	"agency_billing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type CheckoutOrderRequest struct {
	OfferID string `json:"offerId" binding:"required"`
}

type CaptureOrderRequest struct {
	CheckoutID string `json:"checkoutId" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateOrderStatusRequest) ResolveStatus() entities.OrderStatus {
	return entities.OrderStatus(normalizeStatus(r.Status))
}

type UpdateOrderAmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func normalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
