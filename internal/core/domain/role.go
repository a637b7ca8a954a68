package domain

import "errors"

// Role is the closed set of actor roles issued by the platform backend.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleCompanyRep Role = "COMPANY_REP"
	RoleStoreAdmin Role = "STORE_ADMIN"
	RoleCashier    Role = "CASHIER"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole converts a raw claim value into a Role, rejecting anything
// outside the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin, RoleAdmin, RoleCompanyRep, RoleStoreAdmin, RoleCashier:
		return Role(s), nil
	default:
		return "", ErrUnknownRole
	}
}

// MultiStore reports whether the role picks its store manually. Store-bound
// roles get their store assigned straight from the token.
func (r Role) MultiStore() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleCompanyRep:
		return true
	case RoleStoreAdmin, RoleCashier:
		return false
	}
	return false
}

// SeesAllStores reports whether the role may pick from the full store list.
// Company representatives are limited to their own company's stores.
func (r Role) SeesAllStores() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin:
		return true
	case RoleCompanyRep, RoleStoreAdmin, RoleCashier:
		return false
	}
	return false
}
