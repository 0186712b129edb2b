package interfaces

import (
	"context"
	"errors"
)

// ErrDuplicateIdentifier is returned by Create methods when the human-readable
// number of the new record is already reserved.
var ErrDuplicateIdentifier = errors.New("duplicate identifier")

// IIdentifierRepository reads the reservation rows that back identifier uniqueness.
//
// Reservations themselves are written by each entity's Create, in the same
// transaction as the entity.
type IIdentifierRepository interface {
	CountIssued(ctx context.Context, scope string) (int, error)
	Exists(ctx context.Context, scope, number string) (bool, error)
}
