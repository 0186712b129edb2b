package entities

import "github.com/shopspring/decimal"

// Offer is a catalog service that can be bought directly through checkout.
type Offer struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
}
