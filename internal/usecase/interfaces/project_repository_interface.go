package interfaces

import (
	"context"

	"agency_billing/internal/domain/entities"
)

type IProjectRepository interface {
	Create(ctx context.Context, p entities.Project) (entities.Project, error)
	GetByID(ctx context.Context, id string) (entities.Project, error)
	GetByOrderID(ctx context.Context, orderID string) (entities.Project, error)
	ListAll(ctx context.Context) ([]entities.Project, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Project, error)
	Update(ctx context.Context, p entities.Project) (entities.Project, error)
}
