package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus represents the lifecycle of a quote (devis).
//
// Terminal states: accepted (leads to an Order), rejected, cancelled.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusReviewed  QuoteStatus = "reviewed"
	QuoteStatusSent      QuoteStatus = "sent"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusCompleted QuoteStatus = "completed"
	QuoteStatusCancelled QuoteStatus = "cancelled"
	QuoteStatusRejected  QuoteStatus = "rejected"
)

const QuoteNumberPrefix = "DEVIS"

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusReviewed, QuoteStatusSent, QuoteStatusAccepted,
		QuoteStatusCompleted, QuoteStatusCancelled, QuoteStatusRejected:
		return true
	}
	return false
}

// Closed reports whether a quote has left the admin review loop for good.
func (s QuoteStatus) Closed() bool {
	switch s {
	case QuoteStatusAccepted, QuoteStatusCompleted, QuoteStatusCancelled, QuoteStatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether a quote may move from s to next.
// Closed quotes never reopen; an accepted quote may only be completed.
func (s QuoteStatus) CanTransition(next QuoteStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == QuoteStatusAccepted {
		return next == QuoteStatusAccepted || next == QuoteStatusCompleted
	}
	if s.Closed() {
		return next == s
	}
	return true
}

// Acceptable reports whether a client may pay and accept a quote in this status.
func (s QuoteStatus) Acceptable() bool {
	return s == QuoteStatusSent || s == QuoteStatusReviewed
}

// Quote is a prospective client's request, priced by an admin.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (email-index): email (lower-cased)
//   - GSI2 (user_id-index): user_id
//
// QuoteNumber is assigned once before the first insert and never changes.
type Quote struct {
	ID          string `json:"id"`
	QuoteNumber string `json:"quote_number"`
	UserID      string `json:"user_id,omitempty"`

	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	SiteType    string `json:"site_type"`
	Budget      string `json:"budget"`
	Deadline    string `json:"deadline"`
	Description string `json:"description"`

	Status         QuoteStatus      `json:"status"`
	ProposedAmount *decimal.Decimal `json:"proposed_amount,omitempty"`
	ValidUntil     *time.Time       `json:"valid_until,omitempty"`
	AdminNotes     string           `json:"admin_notes,omitempty"`
	ReviewedAt     *time.Time       `json:"reviewed_at,omitempty"`
	SentAt         *time.Time       `json:"sent_at,omitempty"`

	DepositPaymentIntentID string     `json:"deposit_payment_intent_id,omitempty"`
	DepositPaid            bool       `json:"deposit_paid"`
	DepositPaidAt          *time.Time `json:"deposit_paid_at,omitempty"`

	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	OrderID    string     `json:"order_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q Quote) HasOwner() bool {
	return q.UserID != ""
}

func (q Quote) Expired(now time.Time) bool {
	return q.ValidUntil != nil && now.After(*q.ValidUntil)
}

// MarkDepositPaid records a succeeded deposit intent. It reports false when nothing changed.
func (q *Quote) MarkDepositPaid(paymentIntentID string, at time.Time) bool {
	if q.DepositPaid && q.DepositPaymentIntentID == paymentIntentID {
		return false
	}
	q.DepositPaid = true
	q.DepositPaymentIntentID = paymentIntentID
	if q.DepositPaidAt == nil {
		q.DepositPaidAt = &at
	}
	q.UpdatedAt = at
	return true
}
