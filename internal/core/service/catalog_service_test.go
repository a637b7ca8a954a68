package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kedaipos/counter/internal/core/domain"
)

func testStores() []domain.Store {
	return []domain.Store{
		{ID: "store_1", Name: "Kedai Pusat", CompanyID: "comp_1", TaxPercentage: decimal.NewFromInt(10)},
		{ID: "store_2", Name: "Kedai Cabang", CompanyID: "comp_1", TaxPercentage: decimal.NewFromInt(10)},
		{ID: "store_3", Name: "Warung Lain", CompanyID: "comp_2", TaxPercentage: decimal.NewFromInt(11)},
	}
}

// newCatalogFixture opens a session with the given role and (for store-bound
// roles) pre-assigned store.
func newCatalogFixture(t *testing.T, gw *stubGateway, role domain.Role, companyID, storeID string) (*CatalogService, uuid.UUID) {
	t.Helper()
	sessions := NewSessions(newStubSessionRepo(), nopLogger)
	rec := &domain.SessionRecord{
		ID: uuid.New(),
		Identity: domain.Identity{
			UserID:    "user_1",
			Role:      role,
			CompanyID: companyID,
			Token:     "token-abc",
		},
		StoreID: storeID,
	}
	if _, err := sessions.create(context.Background(), rec); err != nil {
		t.Fatalf("create session: %v", err)
	}
	return NewCatalogService(gw, sessions, nopLogger), rec.ID
}

// ---------------------------------------------------------------------------
// EligibleStores
// ---------------------------------------------------------------------------

func TestCatalog_EligibleStores_AdminSeesAll(t *testing.T) {
	gw := &stubGateway{stores: testStores()}
	svc, id := newCatalogFixture(t, gw, domain.RoleAdmin, "", "")

	stores, err := svc.EligibleStores(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stores) != 3 {
		t.Errorf("admin must see all stores, got %d", len(stores))
	}
}

func TestCatalog_EligibleStores_CompanyRepFiltered(t *testing.T) {
	gw := &stubGateway{stores: testStores()}
	svc, id := newCatalogFixture(t, gw, domain.RoleCompanyRep, "comp_1", "")

	stores, err := svc.EligibleStores(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stores) != 2 {
		t.Fatalf("company rep must only see own company, got %d stores", len(stores))
	}
	for _, st := range stores {
		if st.CompanyID != "comp_1" {
			t.Errorf("foreign store leaked: %s (%s)", st.ID, st.CompanyID)
		}
	}
}

func TestCatalog_EligibleStores_StoreBoundRoleHasNoList(t *testing.T) {
	gw := &stubGateway{stores: testStores()}
	svc, id := newCatalogFixture(t, gw, domain.RoleCashier, "", "store_1")

	_, err := svc.EligibleStores(context.Background(), id)
	if !errors.Is(err, domain.ErrStoreLocked) {
		t.Errorf("expected ErrStoreLocked, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// SelectStore
// ---------------------------------------------------------------------------

func TestCatalog_SelectStore_Succeeds(t *testing.T) {
	gw := &stubGateway{stores: testStores()}
	svc, id := newCatalogFixture(t, gw, domain.RoleAdmin, "", "")

	if err := svc.SelectStore(context.Background(), id, "store_2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCatalog_SelectStore_IsOneWay(t *testing.T) {
	gw := &stubGateway{stores: testStores()}
	svc, id := newCatalogFixture(t, gw, domain.RoleAdmin, "", "")

	if err := svc.SelectStore(context.Background(), id, "store_1"); err != nil {
		t.Fatalf("first selection: %v", err)
	}
	err := svc.SelectStore(context.Background(), id, "store_2")
	if !errors.Is(err, domain.ErrStoreLocked) {
		t.Errorf("second selection must fail with ErrStoreLocked, got %v", err)
	}
}

func TestCatalog_SelectStore_IneligibleStoreRejected(t *testing.T) {
	gw := &stubGateway{stores: testStores()}
	svc, id := newCatalogFixture(t, gw, domain.RoleCompanyRep, "comp_1", "")

	// store_3 belongs to comp_2.
	err := svc.SelectStore(context.Background(), id, "store_3")
	if !errors.Is(err, domain.ErrStoreNotFound) {
		t.Errorf("expected ErrStoreNotFound, got %v", err)
	}
}

func TestCatalog_SelectStore_PreAssignedRoleRejected(t *testing.T) {
	gw := &stubGateway{stores: testStores()}
	svc, id := newCatalogFixture(t, gw, domain.RoleCashier, "", "store_1")

	err := svc.SelectStore(context.Background(), id, "store_2")
	if !errors.Is(err, domain.ErrStoreLocked) {
		t.Errorf("expected ErrStoreLocked, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

func TestCatalog_Catalog_RequiresStoreSelection(t *testing.T) {
	gw := &stubGateway{stores: testStores()}
	svc, id := newCatalogFixture(t, gw, domain.RoleAdmin, "", "")

	_, err := svc.Catalog(context.Background(), id)
	if !errors.Is(err, domain.ErrNoStoreSelected) {
		t.Errorf("expected ErrNoStoreSelected, got %v", err)
	}
}

func TestCatalog_Catalog_LoadsStoreAndPrimesMenus(t *testing.T) {
	gw := &stubGateway{
		stores:     testStores(),
		categories: []domain.Category{{ID: "c1", Name: "Makanan", StoreID: "store_1"}},
		menus:      testMenus(),
	}
	svc, id := newCatalogFixture(t, gw, domain.RoleCashier, "", "store_1")

	result, err := svc.Catalog(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Store.ID != "store_1" {
		t.Errorf("wrong store resolved: %s", result.Store.ID)
	}
	if len(result.Categories) != 1 || len(result.Menus) != 3 {
		t.Errorf("catalog incomplete: %d categories, %d menus", len(result.Categories), len(result.Menus))
	}

	// The menu lookup must now back cart operations on the same session.
	sessions := svc.sessions
	sess, err := sessions.get(context.Background(), id)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if len(sess.menus) != 3 {
		t.Errorf("menu lookup not primed, got %d entries", len(sess.menus))
	}
	if _, ok := sess.menus["m1"]; !ok {
		t.Error("menu m1 missing from lookup")
	}
}

func TestCatalog_Catalog_UnknownStore(t *testing.T) {
	gw := &stubGateway{stores: testStores()}
	svc, id := newCatalogFixture(t, gw, domain.RoleCashier, "", "store_gone")

	_, err := svc.Catalog(context.Background(), id)
	if !errors.Is(err, domain.ErrStoreNotFound) {
		t.Errorf("expected ErrStoreNotFound, got %v", err)
	}
}
