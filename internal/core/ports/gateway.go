package ports

import (
	"context"

	"github.com/kedaipos/counter/internal/core/domain"
)

// CreateOrderInput carries everything the backend needs to create an order.
type CreateOrderInput struct {
	StoreID      string
	CashierID    string
	Mode         domain.FulfillmentMode
	TableNumber  string
	CustomerName string
	Lines        []domain.OrderLine
}

// PaymentResult is the backend's confirmation payload.
type PaymentResult struct {
	OrderCode string
	Status    string
}

// BackendGateway is the remote data gateway to the platform backend. Every
// method is a single request/response exchange: no retries, no caching.
// Failures carry the backend-provided message when available.
type BackendGateway interface {
	// Login exchanges credentials for a signed bearer token.
	Login(ctx context.Context, email, password string) (string, error)
	// ListStores returns all stores. Unauthenticated.
	ListStores(ctx context.Context) ([]domain.Store, error)
	ListCategories(ctx context.Context, token, storeID string) ([]domain.Category, error)
	ListMenus(ctx context.Context, token, storeID string) ([]domain.MenuItem, error)
	// CalculateBill asks the backend to price a cart snapshot.
	CalculateBill(ctx context.Context, token, storeID string, lines []domain.OrderLine) (*domain.Bill, error)
	CreateOrder(ctx context.Context, token string, input CreateOrderInput) (*domain.Order, error)
	ConfirmPayment(ctx context.Context, token, orderCode string, method domain.PaymentMethod) (*PaymentResult, error)
}
