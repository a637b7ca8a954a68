package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/kedaipos/counter/internal/core/domain"
)

// LoginResult is returned after a successful credential exchange.
type LoginResult struct {
	SessionID uuid.UUID
	Identity  domain.Identity
	// StoreID is pre-assigned for store-bound roles, empty otherwise.
	StoreID string
}

// AuthService owns the session lifecycle: created on login, torn down on
// logout. Credential verification itself is delegated to the backend.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	// Resolve loads the durable session record, rehydrating from the
	// repository when the process-local registry misses.
	Resolve(ctx context.Context, sessionID uuid.UUID) (*domain.SessionRecord, error)
}
