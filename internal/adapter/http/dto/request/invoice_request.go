package request

import (
	"time"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase"

	"github.com/shopspring/decimal"
)

type InvoiceItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type CreateInvoiceRequest struct {
	OrderID  string               `json:"orderId"`
	UserID   string               `json:"userId"`
	Amount   decimal.Decimal      `json:"amount"`
	Tax      *decimal.Decimal     `json:"tax"`
	Status   string               `json:"status"`
	DueDate  *time.Time           `json:"dueDate"`
	Currency string               `json:"currency"`
	Items    []InvoiceItemRequest `json:"items"`
}

func (r CreateInvoiceRequest) ToInput() usecase.ManualInvoiceInput {
	return usecase.ManualInvoiceInput{
		OrderID:  r.OrderID,
		UserID:   r.UserID,
		Amount:   r.Amount,
		Tax:      r.Tax,
		Status:   entities.InvoiceStatus(normalizeStatus(r.Status)),
		DueDate:  r.DueDate,
		Items:    toItemInputs(r.Items),
		Currency: r.Currency,
	}
}

type UpdateInvoiceRequest struct {
	Amount  *decimal.Decimal      `json:"amount"`
	Tax     *decimal.Decimal      `json:"tax"`
	Status  *string               `json:"status"`
	DueDate *time.Time            `json:"dueDate"`
	Items   *[]InvoiceItemRequest `json:"items"`
}

func (r UpdateInvoiceRequest) ToUpdate() usecase.InvoiceUpdate {
	out := usecase.InvoiceUpdate{Amount: r.Amount, Tax: r.Tax, DueDate: r.DueDate}
	if r.Status != nil {
		s := entities.InvoiceStatus(normalizeStatus(*r.Status))
		out.Status = &s
	}
	if r.Items != nil {
		items := toItemInputs(*r.Items)
		out.Items = &items
	}
	return out
}

func toItemInputs(items []InvoiceItemRequest) []usecase.InvoiceItemInput {
	out := make([]usecase.InvoiceItemInput, 0, len(items))
	for _, it := range items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		out = append(out, usecase.InvoiceItemInput{Description: it.Description, Quantity: qty, UnitPrice: it.UnitPrice})
	}
	return out
}
