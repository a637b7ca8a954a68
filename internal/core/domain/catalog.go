package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrMenuNotFound    = errors.New("menu item not found in store catalog")
	ErrMenuUnavailable = errors.New("menu item is not available")
	ErrStoreNotFound   = errors.New("store not found")
	ErrStoreLocked     = errors.New("store already selected for this session")
	ErrNoStoreSelected = errors.New("no store selected")
)

// Store is a single physical location with its own catalog and tax rate.
// JSON tags follow the backend wire shape; the counter never writes stores.
type Store struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Location      string          `json:"location"`
	CompanyID     string          `json:"companyId"`
	TaxPercentage decimal.Decimal `json:"taxPercentage"`
	BannerImage   string          `json:"bannerImageUrl,omitempty"`
}

// Category groups menu items within a store.
type Category struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	StoreID string `json:"storeId"`
}

// MenuItem is a sellable catalog entry. Read-only on this side; pricing and
// stock are owned by the backend.
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	StoreID     string          `json:"storeId"`
	CategoryID  string          `json:"categoryId"`
	Available   bool            `json:"isAvailable"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}
