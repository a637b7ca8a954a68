package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"SUPER_ADMIN", "ADMIN", "COMPANY_REP", "STORE_ADMIN", "CASHIER"} {
		if _, err := ParseRole(valid); err != nil {
			t.Errorf("%s: unexpected error %v", valid, err)
		}
	}
	if _, err := ParseRole("MANAGER"); !errors.Is(err, ErrUnknownRole) {
		t.Errorf("MANAGER: expected ErrUnknownRole, got %v", err)
	}
	if _, err := ParseRole(""); !errors.Is(err, ErrUnknownRole) {
		t.Errorf("empty: expected ErrUnknownRole, got %v", err)
	}
}

func TestRole_MultiStore(t *testing.T) {
	cases := map[Role]bool{
		RoleSuperAdmin: true,
		RoleAdmin:      true,
		RoleCompanyRep: true,
		RoleStoreAdmin: false,
		RoleCashier:    false,
	}
	for role, want := range cases {
		if got := role.MultiStore(); got != want {
			t.Errorf("%s.MultiStore(): expected %v, got %v", role, want, got)
		}
	}
}

func TestRole_SeesAllStores(t *testing.T) {
	cases := map[Role]bool{
		RoleSuperAdmin: true,
		RoleAdmin:      true,
		RoleCompanyRep: false,
		RoleStoreAdmin: false,
		RoleCashier:    false,
	}
	for role, want := range cases {
		if got := role.SeesAllStores(); got != want {
			t.Errorf("%s.SeesAllStores(): expected %v, got %v", role, want, got)
		}
	}
}
