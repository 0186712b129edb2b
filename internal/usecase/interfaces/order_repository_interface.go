package interfaces

import (
	"context"

	"agency_billing/internal/domain/entities"
)

// IOrderRepository abstracts DynamoDB persistence for Order.
//
// Update is a whole-document write (last write wins).
type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	ListAll(ctx context.Context) ([]entities.Order, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Order, error)
	Update(ctx context.Context, o entities.Order) (entities.Order, error)
}
