package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/kedaipos/counter/internal/core/domain"
)

// CatalogResult is the full catalog view for the selected store.
type CatalogResult struct {
	Store      domain.Store
	Categories []domain.Category
	Menus      []domain.MenuItem
}

// CatalogService resolves which store a session operates and serves its
// catalog. Store selection is one-way for the lifetime of the session.
type CatalogService interface {
	// EligibleStores lists the stores the session's role may choose from.
	// Store-bound roles get domain.ErrStoreLocked: their store is assigned
	// at login and there is nothing to choose.
	EligibleStores(ctx context.Context, sessionID uuid.UUID) ([]domain.Store, error)
	// SelectStore pins the session to a store. Fails with
	// domain.ErrStoreLocked once a store is set.
	SelectStore(ctx context.Context, sessionID uuid.UUID, storeID string) error
	// Catalog loads categories and menus for the selected store and primes
	// the session's menu lookup used by cart operations.
	Catalog(ctx context.Context, sessionID uuid.UUID) (*CatalogResult, error)
}
