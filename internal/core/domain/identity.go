package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrIncompleteIdentity = errors.New("token is missing a required affiliation claim")
)

// Identity is the authenticated actor behind a counter session. It is built
// from the claims of the backend-issued token and never changes for the
// lifetime of the session.
type Identity struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CompanyID string `json:"company_id,omitempty"`
	StoreID   string `json:"store_id,omitempty"`
	// Token is the raw bearer credential, replayed on every backend call.
	Token string `json:"token"`
}

// SessionRecord is the durable part of a counter session: who is signed in
// and which store they operate. Live checkout state stays in-process.
type SessionRecord struct {
	ID        uuid.UUID `json:"id"`
	Identity  Identity  `json:"identity"`
	StoreID   string    `json:"store_id"`
	CreatedAt time.Time `json:"created_at"`
}
