package interfaces

import (
	"context"

	"agency_billing/internal/domain/entities"
)

// IUserRepository reads accounts owned by the identity service. Read-only here.
type IUserRepository interface {
	GetByID(ctx context.Context, id string) (entities.User, error)
}

// IOfferRepository reads the service catalog. Read-only here.
type IOfferRepository interface {
	GetByID(ctx context.Context, id string) (entities.Offer, error)
}
