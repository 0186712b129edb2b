package response

import (
	"time"

	"agency_billing/internal/domain/entities"
)

type DepositResponse struct {
	Percentage      int        `json:"percentage"`
	Amount          float64    `json:"amount"`
	Paid            bool       `json:"paid"`
	PaidAt          *time.Time `json:"paidAt,omitempty"`
	PaymentIntentID string     `json:"paymentIntentId,omitempty"`
}

type BalanceResponse struct {
	Amount          float64    `json:"amount"`
	Paid            bool       `json:"paid"`
	PaidAt          *time.Time `json:"paidAt,omitempty"`
	PaymentIntentID string     `json:"paymentIntentId,omitempty"`
}

type BillingResponse struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Company    string `json:"company,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

type OrderMetadataResponse struct {
	Type        string `json:"type"`
	OfferID     string `json:"offerId,omitempty"`
	OfferTitle  string `json:"offerTitle,omitempty"`
	QuoteID     string `json:"quoteId,omitempty"`
	QuoteNumber string `json:"quoteNumber,omitempty"`
}

type ProjectDetailsResponse struct {
	SiteType     string  `json:"siteType"`
	Budget       string  `json:"budget"`
	Deadline     string  `json:"deadline"`
	Description  string  `json:"description"`
	AgreedAmount float64 `json:"agreedAmount"`
}

type OrderResponse struct {
	ID             string                  `json:"id"`
	OrderNumber    string                  `json:"orderNumber"`
	UserID         string                  `json:"userId"`
	Amount         float64                 `json:"amount"`
	Currency       string                  `json:"currency"`
	Status         string                  `json:"status"`
	PaymentStatus  string                  `json:"paymentStatus"`
	Deposit        DepositResponse         `json:"deposit"`
	Balance        BalanceResponse         `json:"balance"`
	Billing        BillingResponse         `json:"billing"`
	Metadata       OrderMetadataResponse   `json:"metadata"`
	ProjectDetails *ProjectDetailsResponse `json:"projectDetails,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

func FromOrder(o entities.Order) OrderResponse {
	out := OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		UserID:        o.UserID,
		Amount:        money(o.Amount),
		Currency:      o.Currency,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		Deposit: DepositResponse{
			Percentage:      o.Deposit.Percentage,
			Amount:          money(o.Deposit.Amount),
			Paid:            o.Deposit.Paid,
			PaidAt:          timePtr(o.Deposit.PaidAt),
			PaymentIntentID: o.Deposit.PaymentIntentID,
		},
		Balance: BalanceResponse{
			Amount:          money(o.Balance.Amount),
			Paid:            o.Balance.Paid,
			PaidAt:          timePtr(o.Balance.PaidAt),
			PaymentIntentID: o.Balance.PaymentIntentID,
		},
		Billing: BillingResponse(o.Billing),
		Metadata: OrderMetadataResponse{
			Type:        string(o.Metadata.Origin),
			OfferID:     o.Metadata.OfferID,
			OfferTitle:  o.Metadata.OfferTitle,
			QuoteID:     o.Metadata.QuoteID,
			QuoteNumber: o.Metadata.QuoteNumber,
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	if d := o.ProjectDetails; d != nil {
		out.ProjectDetails = &ProjectDetailsResponse{
			SiteType:     d.SiteType,
			Budget:       d.Budget,
			Deadline:     d.Deadline,
			Description:  d.Description,
			AgreedAmount: money(d.AgreedAmount),
		}
	}
	return out
}

func FromOrders(orders []entities.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}
