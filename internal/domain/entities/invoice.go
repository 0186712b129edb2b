package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

const InvoiceNumberPrefix = "FACT"

func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid || s == InvoiceStatusOverdue
}

type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

func NewInvoiceItem(description string, quantity int, unitPrice decimal.Decimal) InvoiceItem {
	return InvoiceItem{
		Description: description,
		Quantity:    quantity,
		UnitPrice:   RoundMoney(unitPrice),
		Total:       RoundMoney(unitPrice.Mul(decimal.NewFromInt(int64(quantity)))),
	}
}

// Invoice is issued once per paid order, or manually by an admin.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (order_id-index): order_id
//   - GSI2 (user_id-index): user_id
//
// Invariant: Total == Amount + Tax after every mutation; use SetAmounts.
type Invoice struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	OrderID       string          `json:"order_id,omitempty"`
	UserID        string          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	Status        InvoiceStatus   `json:"status"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	PaidDate      *time.Time      `json:"paid_date,omitempty"`
	Items         []InvoiceItem   `json:"items"`
	DocumentKey   string          `json:"document_key,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (i *Invoice) SetAmounts(amount, tax decimal.Decimal) {
	i.Amount = RoundMoney(amount)
	i.Tax = RoundMoney(tax)
	i.Total = i.Amount.Add(i.Tax)
}

// SetStatus stamps PaidDate the first time the invoice becomes paid.
func (i *Invoice) SetStatus(status InvoiceStatus, at time.Time) {
	i.Status = status
	if status == InvoiceStatusPaid && i.PaidDate == nil {
		i.PaidDate = &at
	}
}
