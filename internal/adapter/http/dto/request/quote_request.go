package request

import (
	"strings"
	"time"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase"

	"github.com/shopspring/decimal"
)

// SubmitQuoteRequest is the public quote form.
type SubmitQuoteRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Phone       string `json:"phone"`
	SiteType    string `json:"siteType" binding:"required"`
	Budget      string `json:"budget" binding:"required"`
	Deadline    string `json:"deadline" binding:"required"`
	Description string `json:"description" binding:"required"`
}

func (r SubmitQuoteRequest) ToSubmission() usecase.QuoteSubmission {
	return usecase.QuoteSubmission{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		SiteType:    r.SiteType,
		Budget:      r.Budget,
		Deadline:    r.Deadline,
		Description: r.Description,
	}
}

// AdminUpdateQuoteRequest only changes the fields that are present.
type AdminUpdateQuoteRequest struct {
	Status         *string          `json:"status"`
	ProposedAmount *decimal.Decimal `json:"proposedAmount"`
	ValidUntil     *time.Time       `json:"validUntil"`
	AdminNotes     *string          `json:"adminNotes"`
}

func (r AdminUpdateQuoteRequest) ToUpdate() usecase.QuoteUpdate {
	out := usecase.QuoteUpdate{
		ProposedAmount: r.ProposedAmount,
		ValidUntil:     r.ValidUntil,
		AdminNotes:     r.AdminNotes,
	}
	if r.Status != nil {
		s := entities.QuoteStatus(normalizeStatus(*r.Status))
		out.Status = &s
	}
	return out
}

// PaymentIntentRequest carries the intent the client paid through.
type PaymentIntentRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

func (r PaymentIntentRequest) ResolvePaymentIntentID() string {
	return strings.TrimSpace(r.PaymentIntentID)
}
