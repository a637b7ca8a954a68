package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kedaipos/counter/internal/core/domain"
	"github.com/kedaipos/counter/internal/core/ports"
)

// AuthService implements login and logout by proxying credentials to the
// backend and decoding the returned token into a session identity.
type AuthService struct {
	gateway  ports.BackendGateway
	sessions *Sessions
	// teardown lets other services release per-session resources (such as
	// a pending quote timer) when the session closes.
	teardown func(uuid.UUID)
	logger   zerolog.Logger
}

func NewAuthService(gateway ports.BackendGateway, sessions *Sessions, teardown func(uuid.UUID), logger zerolog.Logger) *AuthService {
	return &AuthService{gateway: gateway, sessions: sessions, teardown: teardown, logger: logger}
}

// tokenClaims is the payload the backend signs into its tokens.
type tokenClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	StoreID   string `json:"store_id,omitempty"`
	CompanyID string `json:"company_id,omitempty"`
	jwt.RegisteredClaims
}

// Login exchanges credentials with the backend, decodes the token claims
// into an Identity, and opens a session. Store-bound roles get their store
// assigned here, with no selection step.
//
// The claims are read without signature verification: the backend is both
// issuer and verifier of the token, the counter only transports it.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	token, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	identity := domain.Identity{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      role,
		CompanyID: claims.CompanyID,
		StoreID:   claims.StoreID,
		Token:     token,
	}

	storeID := ""
	if !role.MultiStore() {
		// STORE_ADMIN and CASHIER operate exactly one store; a token
		// without one is unusable at the counter.
		if claims.StoreID == "" {
			return nil, domain.ErrIncompleteIdentity
		}
		storeID = claims.StoreID
	}

	rec := &domain.SessionRecord{
		ID:        uuid.New(),
		Identity:  identity,
		StoreID:   storeID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.sessions.create(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("session_id", rec.ID.String()).
		Str("email", identity.Email).
		Str("role", string(role)).
		Str("store_id", storeID).
		Msg("session opened")

	return &ports.LoginResult{SessionID: rec.ID, Identity: identity, StoreID: storeID}, nil
}

// Logout tears the session down. The teardown hook runs first so no quote
// scheduled before the delete can still fire against the backend.
func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if s.teardown != nil {
		s.teardown(sessionID)
	}
	if err := s.sessions.delete(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Info().Str("session_id", sessionID.String()).Msg("session closed")
	return nil
}

// Resolve loads the durable session record for the middleware.
func (s *AuthService) Resolve(ctx context.Context, sessionID uuid.UUID) (*domain.SessionRecord, error) {
	return s.sessions.Resolve(ctx, sessionID)
}
