package interfaces

import (
	"context"

	"agency_billing/internal/domain/entities"
)

type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	GetByOrderID(ctx context.Context, orderID string) (entities.Invoice, error)
	ListAll(ctx context.Context) ([]entities.Invoice, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Invoice, error)
	Update(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
}
