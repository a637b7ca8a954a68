package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/kedaipos/counter/internal/core/domain"
)

// SessionRepository persists the durable part of counter sessions so a
// signed-in cashier survives a process restart. Live checkout state
// (cart, bill, timers) is process-local and not stored here.
type SessionRepository interface {
	Save(ctx context.Context, record *domain.SessionRecord) error
	// Find returns domain.ErrSessionNotFound when the id is unknown or expired.
	Find(ctx context.Context, id uuid.UUID) (*domain.SessionRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
