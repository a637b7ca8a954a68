package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kedaipos/counter/internal/core/domain"
	"github.com/kedaipos/counter/internal/core/ports"
)

// CatalogService resolves the active store for a session and loads its
// catalog from the backend. Selection rules depend on the role: store-bound
// roles are pre-assigned, company representatives see their company's
// stores, administrators see everything.
type CatalogService struct {
	gateway  ports.BackendGateway
	sessions *Sessions
	logger   zerolog.Logger
}

func NewCatalogService(gateway ports.BackendGateway, sessions *Sessions, logger zerolog.Logger) *CatalogService {
	return &CatalogService{gateway: gateway, sessions: sessions, logger: logger}
}

// EligibleStores lists the stores the session may choose from.
func (s *CatalogService) EligibleStores(ctx context.Context, sessionID uuid.UUID) ([]domain.Store, error) {
	sess, err := s.sessions.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	role := sess.identity.Role
	companyID := sess.identity.CompanyID
	sess.mu.Unlock()

	if !role.MultiStore() {
		// The store was assigned from the token at login; there is no list
		// to choose from.
		return nil, domain.ErrStoreLocked
	}

	stores, err := s.gateway.ListStores(ctx)
	if err != nil {
		return nil, err
	}
	if role.SeesAllStores() {
		return stores, nil
	}

	// Company representatives only see their own company's stores.
	eligible := make([]domain.Store, 0, len(stores))
	for _, st := range stores {
		if st.CompanyID == companyID {
			eligible = append(eligible, st)
		}
	}
	return eligible, nil
}

// SelectStore pins the session to one of its eligible stores. One-way: once
// set, the selection holds for the rest of the session.
func (s *CatalogService) SelectStore(ctx context.Context, sessionID uuid.UUID, storeID string) error {
	sess, err := s.sessions.get(ctx, sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	locked := sess.storeID != ""
	sess.mu.Unlock()
	if locked {
		return domain.ErrStoreLocked
	}

	eligible, err := s.EligibleStores(ctx, sessionID)
	if err != nil {
		return err
	}
	found := false
	for _, st := range eligible {
		if st.ID == storeID {
			found = true
			break
		}
	}
	if !found {
		return domain.ErrStoreNotFound
	}

	sess.mu.Lock()
	if sess.storeID != "" {
		sess.mu.Unlock()
		return domain.ErrStoreLocked
	}
	sess.storeID = storeID
	sess.mu.Unlock()

	if err := s.sessions.persist(ctx, sess); err != nil {
		return err
	}

	s.logger.Info().
		Str("session_id", sessionID.String()).
		Str("store_id", storeID).
		Msg("store selected")
	return nil
}

// Catalog loads categories and menus for the selected store and primes the
// session's menu lookup used by cart operations.
func (s *CatalogService) Catalog(ctx context.Context, sessionID uuid.UUID) (*ports.CatalogResult, error) {
	sess, err := s.sessions.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	storeID := sess.storeID
	token := sess.identity.Token
	sess.mu.Unlock()

	if storeID == "" {
		return nil, domain.ErrNoStoreSelected
	}

	stores, err := s.gateway.ListStores(ctx)
	if err != nil {
		return nil, err
	}
	var store domain.Store
	found := false
	for _, st := range stores {
		if st.ID == storeID {
			store = st
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrStoreNotFound
	}

	categories, err := s.gateway.ListCategories(ctx, token, storeID)
	if err != nil {
		return nil, err
	}
	menus, err := s.gateway.ListMenus(ctx, token, storeID)
	if err != nil {
		return nil, err
	}

	lookup := make(map[string]domain.MenuItem, len(menus))
	for _, m := range menus {
		lookup[m.ID] = m
	}
	sess.mu.Lock()
	sess.menus = lookup
	sess.mu.Unlock()

	return &ports.CatalogResult{Store: store, Categories: categories, Menus: menus}, nil
}
