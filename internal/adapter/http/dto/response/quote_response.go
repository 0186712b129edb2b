package response

import (
	"time"

	"agency_billing/internal/domain/entities"
)

type QuoteResponse struct {
	ID             string     `json:"id"`
	QuoteNumber    string     `json:"quoteNumber"`
	UserID         string     `json:"userId,omitempty"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone,omitempty"`
	SiteType       string     `json:"siteType"`
	Budget         string     `json:"budget"`
	Deadline       string     `json:"deadline"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	ProposedAmount *float64   `json:"proposedAmount,omitempty"`
	ValidUntil     *time.Time `json:"validUntil,omitempty"`
	AdminNotes     string     `json:"adminNotes,omitempty"`
	ReviewedAt     *time.Time `json:"reviewedAt,omitempty"`
	SentAt         *time.Time `json:"sentAt,omitempty"`
	DepositPaid    bool       `json:"depositPaid"`
	DepositPaidAt  *time.Time `json:"depositPaidAt,omitempty"`
	AcceptedAt     *time.Time `json:"acceptedAt,omitempty"`
	OrderID        string     `json:"orderId,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:             q.ID,
		QuoteNumber:    q.QuoteNumber,
		UserID:         q.UserID,
		Name:           q.Name,
		Email:          q.Email,
		Phone:          q.Phone,
		SiteType:       q.SiteType,
		Budget:         q.Budget,
		Deadline:       q.Deadline,
		Description:    q.Description,
		Status:         string(q.Status),
		ProposedAmount: moneyPtr(q.ProposedAmount),
		ValidUntil:     timePtr(q.ValidUntil),
		AdminNotes:     q.AdminNotes,
		ReviewedAt:     timePtr(q.ReviewedAt),
		SentAt:         timePtr(q.SentAt),
		DepositPaid:    q.DepositPaid,
		DepositPaidAt:  timePtr(q.DepositPaidAt),
		AcceptedAt:     timePtr(q.AcceptedAt),
		OrderID:        q.OrderID,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}

func FromQuotes(qs []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, FromQuote(q))
	}
	return out
}
