package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the business status of an order. Transitions only move forward:
// pending -> paid -> processing -> completed, with cancelled reachable from pending only.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

const OrderNumberPrefix = "CMD"

var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusPaid:       1,
	OrderStatusProcessing: 2,
	OrderStatusCompleted:  3,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusRank[s]
	return ok || s == OrderStatusCancelled
}

// TriggersFulfillment reports whether entering s creates the invoice and project.
func (s OrderStatus) TriggersFulfillment() bool {
	return s == OrderStatusPaid || s == OrderStatusCompleted
}

// CanTransition reports whether an order may move from one status to another.
// Staying in the same non-terminal-cancelled status is allowed so effects can be re-applied.
func CanTransition(from, to OrderStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == OrderStatusCancelled {
		return false
	}
	if to == OrderStatusCancelled {
		return from == OrderStatusPending
	}
	return orderStatusRank[to] >= orderStatusRank[from]
}

// PaymentStatus tracks deposit/balance granularity, separately from OrderStatus.
type PaymentStatus string

const (
	PaymentStatusUnpaid      PaymentStatus = "unpaid"
	PaymentStatusDepositPaid PaymentStatus = "deposit_paid"
	PaymentStatusPaid        PaymentStatus = "paid"
)

type DepositPayment struct {
	Percentage      int             `json:"percentage"`
	Amount          decimal.Decimal `json:"amount"`
	Paid            bool            `json:"paid"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	PaymentIntentID string          `json:"payment_intent_id,omitempty"`
}

type BalancePayment struct {
	Amount          decimal.Decimal `json:"amount"`
	Paid            bool            `json:"paid"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	PaymentIntentID string          `json:"payment_intent_id,omitempty"`
}

type BillingInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Company    string `json:"company,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// OrderOrigin tags where an order came from.
type OrderOrigin string

const (
	OrderOriginManualPurchase OrderOrigin = "manual_purchase"
	OrderOriginFromQuote      OrderOrigin = "from_quote"
)

// OrderMetadata is a closed variant keyed by Origin. Only the fields of the
// matching origin are set: OfferID/OfferTitle for manual purchases,
// QuoteID/QuoteNumber for quote-derived orders.
type OrderMetadata struct {
	Origin      OrderOrigin `json:"origin"`
	OfferID     string      `json:"offer_id,omitempty"`
	OfferTitle  string      `json:"offer_title,omitempty"`
	QuoteID     string      `json:"quote_id,omitempty"`
	QuoteNumber string      `json:"quote_number,omitempty"`
}

func ManualPurchaseMetadata(offerID, offerTitle string) OrderMetadata {
	return OrderMetadata{Origin: OrderOriginManualPurchase, OfferID: offerID, OfferTitle: offerTitle}
}

func FromQuoteMetadata(quoteID, quoteNumber string) OrderMetadata {
	return OrderMetadata{Origin: OrderOriginFromQuote, QuoteID: quoteID, QuoteNumber: quoteNumber}
}

// Description is the label used on invoice lines and e-mails.
func (m OrderMetadata) Description() string {
	switch m.Origin {
	case OrderOriginManualPurchase:
		return m.OfferTitle
	case OrderOriginFromQuote:
		return "Devis " + m.QuoteNumber
	}
	return ""
}

// ProjectDetails snapshots the quote request of a quote-derived order.
type ProjectDetails struct {
	SiteType     string          `json:"site_type"`
	Budget       string          `json:"budget"`
	Deadline     string          `json:"deadline"`
	Description  string          `json:"description"`
	AgreedAmount decimal.Decimal `json:"agreed_amount"`
}

// Order is a binding purchase funded by a deposit and a balance.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (user_id-index): user_id
//
// Invariant: Deposit.Amount + Balance.Amount == Amount.
type Order struct {
	ID             string          `json:"id"`
	OrderNumber    string          `json:"order_number"`
	UserID         string          `json:"user_id"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Status         OrderStatus     `json:"status"`
	PaymentStatus  PaymentStatus   `json:"payment_status"`
	Deposit        DepositPayment  `json:"deposit"`
	Balance        BalancePayment  `json:"balance"`
	Billing        BillingInfo     `json:"billing"`
	Metadata       OrderMetadata   `json:"metadata"`
	ProjectDetails *ProjectDetails `json:"project_details,omitempty"`
	CheckoutID     string          `json:"checkout_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// SetAmount sets the total and re-splits it into deposit and balance.
func (o *Order) SetAmount(amount decimal.Decimal) {
	o.Amount = RoundMoney(amount)
	deposit, balance := SplitDeposit(o.Amount)
	o.Deposit.Percentage = DepositPercentage
	o.Deposit.Amount = deposit
	o.Balance.Amount = balance
}

func (o Order) AnyPaid() bool {
	return o.Deposit.Paid || o.Balance.Paid
}

// MarkDepositPaid reports false when the deposit was already recorded as paid.
func (o *Order) MarkDepositPaid(paymentIntentID string, at time.Time) bool {
	if o.Deposit.Paid {
		return false
	}
	o.Deposit.Paid = true
	o.Deposit.PaidAt = &at
	if paymentIntentID != "" {
		o.Deposit.PaymentIntentID = paymentIntentID
	}
	o.refreshPaymentStatus()
	o.UpdatedAt = at
	return true
}

// MarkBalancePaid reports false when the balance was already recorded as paid.
func (o *Order) MarkBalancePaid(paymentIntentID string, at time.Time) bool {
	if o.Balance.Paid {
		return false
	}
	o.Balance.Paid = true
	o.Balance.PaidAt = &at
	if paymentIntentID != "" {
		o.Balance.PaymentIntentID = paymentIntentID
	}
	o.refreshPaymentStatus()
	o.UpdatedAt = at
	return true
}

// FullyPaid is true once both parts are settled (a zero balance counts as settled).
func (o Order) FullyPaid() bool {
	return o.Deposit.Paid && (o.Balance.Paid || o.Balance.Amount.IsZero())
}

func (o *Order) refreshPaymentStatus() {
	switch {
	case o.FullyPaid():
		o.PaymentStatus = PaymentStatusPaid
	case o.Deposit.Paid:
		o.PaymentStatus = PaymentStatusDepositPaid
	default:
		o.PaymentStatus = PaymentStatusUnpaid
	}
}
