package response

import (
	"time"

	"agency_billing/internal/domain/entities"
)

type InvoiceItemResponse struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoiceNumber"`
	OrderID       string                `json:"orderId,omitempty"`
	UserID        string                `json:"userId"`
	Amount        float64               `json:"amount"`
	Tax           float64               `json:"tax"`
	Total         float64               `json:"total"`
	Currency      string                `json:"currency"`
	Status        string                `json:"status"`
	DueDate       *time.Time            `json:"dueDate,omitempty"`
	PaidDate      *time.Time            `json:"paidDate,omitempty"`
	Items         []InvoiceItemResponse `json:"items"`
	DocumentKey   string                `json:"documentKey,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, InvoiceItemResponse{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   money(it.UnitPrice),
			Total:       money(it.Total),
		})
	}
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		OrderID:       inv.OrderID,
		UserID:        inv.UserID,
		Amount:        money(inv.Amount),
		Tax:           money(inv.Tax),
		Total:         money(inv.Total),
		Currency:      inv.Currency,
		Status:        string(inv.Status),
		DueDate:       timePtr(inv.DueDate),
		PaidDate:      timePtr(inv.PaidDate),
		Items:         items,
		DocumentKey:   inv.DocumentKey,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func FromInvoices(invs []entities.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invs))
	for _, inv := range invs {
		out = append(out, FromInvoice(inv))
	}
	return out
}
