package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kedaipos/counter/internal/api/metrics"
	"github.com/kedaipos/counter/internal/core/domain"
	"github.com/kedaipos/counter/internal/core/ports"
)

// session is the live, process-local state of one counter session. All
// fields are guarded by mu: echo serves requests concurrently, so the
// single-writer model of the checkout flow maps to per-session locking.
type session struct {
	mu sync.Mutex

	id       uuid.UUID
	identity domain.Identity
	storeID  string

	// menus is the catalog lookup primed by CatalogService; cart operations
	// resolve menu ids against it.
	menus map[string]domain.MenuItem

	cart  *domain.Cart
	state domain.CheckoutState

	// bill is a cache of a remote computation: absent whenever the cart has
	// mutated since the last applied quote. billRevision records which cart
	// revision the bill was computed for.
	bill          *domain.Bill
	billRevision  uint64
	quotePending  bool
	quoteInFlight bool
	quoteErr      string

	orderCode    string
	orderTotal   decimal.Decimal
	mode         domain.FulfillmentMode
	tableNumber  string
	customerName string

	placeInFlight bool
	payInFlight   bool
}

func newSession(rec *domain.SessionRecord) *session {
	return &session{
		id:       rec.ID,
		identity: rec.Identity,
		storeID:  rec.StoreID,
		cart:     domain.NewCart(),
		state:    domain.StateBuilding,
	}
}

// record projects the durable part of the session.
func (s *session) record() *domain.SessionRecord {
	return &domain.SessionRecord{
		ID:       s.id,
		Identity: s.identity,
		StoreID:  s.storeID,
	}
}

// resetLocked wipes the whole order attempt and returns to BUILDING.
// Caller must hold s.mu.
func (s *session) resetLocked() {
	s.cart.Clear()
	s.bill = nil
	s.billRevision = 0
	s.quotePending = false
	s.quoteErr = ""
	s.orderCode = ""
	s.orderTotal = decimal.Zero
	s.mode = ""
	s.tableNumber = ""
	s.customerName = ""
	s.state = domain.StateBuilding
}

// snapshotLocked builds the presentation view. Caller must hold s.mu.
func (s *session) snapshotLocked() ports.StateSnapshot {
	lines := make([]ports.CartLineView, 0, len(s.cart.Lines))
	for _, l := range s.cart.Lines {
		lines = append(lines, ports.CartLineView{
			MenuID:    l.Menu.ID,
			Name:      l.Menu.Name,
			Price:     l.Menu.Price,
			Quantity:  l.Quantity,
			LineTotal: l.Total(),
		})
	}
	return ports.StateSnapshot{
		State:        s.state,
		Lines:        lines,
		Subtotal:     s.cart.Subtotal,
		Bill:         s.bill,
		QuotePending: s.quotePending,
		QuoteError:   s.quoteErr,
		OrderCode:    s.orderCode,
	}
}

// Sessions is the process-local session registry backed by a durable
// repository. The registry owns the live checkout state; the repository only
// keeps identity and store selection, so a restart signs nobody out but does
// drop in-progress carts.
type Sessions struct {
	mu   sync.RWMutex
	live map[uuid.UUID]*session
	repo ports.SessionRepository
	log  zerolog.Logger
}

func NewSessions(repo ports.SessionRepository, log zerolog.Logger) *Sessions {
	return &Sessions{
		live: make(map[uuid.UUID]*session),
		repo: repo,
		log:  log,
	}
}

// create persists the record and registers the live session.
func (m *Sessions) create(ctx context.Context, rec *domain.SessionRecord) (*session, error) {
	if err := m.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	sess := newSession(rec)

	m.mu.Lock()
	m.live[rec.ID] = sess
	m.mu.Unlock()

	metrics.ActiveSessions.Inc()
	return sess, nil
}

// get returns the live session, rehydrating from the repository when the
// registry misses (e.g. after a restart).
func (m *Sessions) get(ctx context.Context, id uuid.UUID) (*session, error) {
	m.mu.RLock()
	sess, ok := m.live[id]
	m.mu.RUnlock()
	if ok {
		return sess, nil
	}

	rec, err := m.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.live[id]; ok {
		return existing, nil
	}
	sess = newSession(rec)
	m.live[id] = sess
	metrics.ActiveSessions.Inc()
	m.log.Info().Str("session_id", id.String()).Msg("session rehydrated")
	return sess, nil
}

// persist writes the session's durable record back to the repository.
func (m *Sessions) persist(ctx context.Context, sess *session) error {
	sess.mu.Lock()
	rec := sess.record()
	sess.mu.Unlock()
	return m.repo.Save(ctx, rec)
}

// delete tears the session down in both the registry and the repository.
func (m *Sessions) delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	_, ok := m.live[id]
	delete(m.live, id)
	m.mu.Unlock()
	if ok {
		metrics.ActiveSessions.Dec()
	}
	return m.repo.Delete(ctx, id)
}

// Resolve exposes the durable record without handing out live state. Used by
// the session middleware.
func (m *Sessions) Resolve(ctx context.Context, id uuid.UUID) (*domain.SessionRecord, error) {
	sess, err := m.get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.record(), nil
}
