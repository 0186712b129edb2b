package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase/interfaces"
)

// ErrIdentifierExhausted means no unique number could be allocated. Callers may retry
// the whole operation.
var ErrIdentifierExhausted = errors.New("could not allocate a unique number")

const (
	maxIdentifierProbes = 50
	maxInsertAttempts   = 5
)

// IdentifierAllocator hands out PREFIX-YEAR-NNNNN numbers for quotes, orders, invoices
// and projects.
//
// Uniqueness is enforced by the storage layer: every Create reserves its number in the
// same transaction as the record and fails with ErrDuplicateIdentifier on conflict.
// Allocate proposes a candidate (count of issued numbers + 1, skipping taken ones),
// attempts the insert and regenerates on conflict. Allocations for one prefix are
// serialized inside the process, so conflicts only come from other processes.
type IdentifierAllocator struct {
	repo interfaces.IIdentifierRepository
	now  func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewIdentifierAllocator(repo interfaces.IIdentifierRepository) *IdentifierAllocator {
	return &IdentifierAllocator{
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
		locks: map[string]*sync.Mutex{},
	}
}

// Propose returns the first free candidate after the issued count.
func (a *IdentifierAllocator) Propose(ctx context.Context, prefix string) (string, error) {
	year := a.now().Year()
	scope := entities.IdentifierScope(prefix, year)

	issued, err := a.repo.CountIssued(ctx, scope)
	if err != nil {
		return "", err
	}
	for i := 1; i <= maxIdentifierProbes; i++ {
		candidate := entities.FormatIdentifier(prefix, year, issued+i)
		exists, err := a.repo.Exists(ctx, scope, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	log.Printf("[identifier][usecase] probes exhausted scope=%s issued=%d", scope, issued)
	return "", ErrIdentifierExhausted
}

// Allocate calls insert with fresh candidates until one is accepted.
// insert must persist the record carrying the number and return
// interfaces.ErrDuplicateIdentifier when the number is already reserved.
func (a *IdentifierAllocator) Allocate(ctx context.Context, prefix string, insert func(number string) error) (string, error) {
	lock := a.lockFor(prefix)
	lock.Lock()
	defer lock.Unlock()

	for attempt := 1; attempt <= maxInsertAttempts; attempt++ {
		number, err := a.Propose(ctx, prefix)
		if err != nil {
			return "", err
		}
		err = insert(number)
		if err == nil {
			return number, nil
		}
		if !errors.Is(err, interfaces.ErrDuplicateIdentifier) {
			return "", err
		}
		log.Printf("[identifier][usecase] duplicate on insert number=%s attempt=%d", number, attempt)
	}
	return "", ErrIdentifierExhausted
}

func (a *IdentifierAllocator) lockFor(prefix string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	l, ok := a.locks[prefix]
	if !ok {
		l = &sync.Mutex{}
		a.locks[prefix] = l
	}
	return l
}
