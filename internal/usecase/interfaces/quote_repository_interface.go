package interfaces

import (
	"context"

	"agency_billing/internal/domain/entities"
)

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// Lookups return a zero-value Quote (empty ID) and a nil error when nothing matches.
// Create reserves QuoteNumber atomically and returns ErrDuplicateIdentifier when it is taken.
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListAll(ctx context.Context) ([]entities.Quote, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Quote, error)
	ListByEmail(ctx context.Context, email string) ([]entities.Quote, error)
	Update(ctx context.Context, q entities.Quote) (entities.Quote, error)
}
