// Package backend implements the remote data gateway: a thin HTTP client
// for the platform backend. Every call is one request/response pair with no
// retries and no caching; failures surface immediately to the caller.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kedaipos/counter/internal/core/domain"
	"github.com/kedaipos/counter/internal/core/ports"
)

// apiPrefix pins the backend contract revision this client speaks. The
// backend's wire shapes have drifted between revisions, so every DTO below
// belongs to this prefix and nothing outside this package depends on them.
const apiPrefix = "/api/v1"

const defaultTimeout = 10 * time.Second

// Error is a failed backend exchange. Message carries the backend-provided
// reason when the response had a parseable error envelope.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
}

// Client talks to the platform backend. Implements ports.BackendGateway.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// ── Wire DTOs (contract revision v1) ─────────────────────────────────────────

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// menusResponse: the menus endpoint wraps its array in an object.
type menusResponse struct {
	Menus []domain.MenuItem `json:"menus"`
}

type orderItem struct {
	MenuID   string `json:"menuId"`
	Quantity int    `json:"quantity"`
}

type calculateBillRequest struct {
	StoreID string      `json:"storeId"`
	Items   []orderItem `json:"items"`
}

type createOrderRequest struct {
	StoreID      string      `json:"storeId"`
	CashierID    string      `json:"cashierId"`
	Mode         string      `json:"mode"`
	TableNumber  string      `json:"tableNumber,omitempty"`
	CustomerName string      `json:"customerName,omitempty"`
	Items        []orderItem `json:"items"`
}

type confirmPaymentRequest struct {
	OrderCode     string `json:"orderCode"`
	PaymentMethod string `json:"paymentMethod"`
}

type confirmPaymentResponse struct {
	OrderCode  string          `json:"order_code"`
	Status     string          `json:"status"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

// ── Gateway operations ───────────────────────────────────────────────────────

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	if err := c.post(ctx, "/auth/login", "", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &Error{Status: http.StatusOK, Message: "login response missing token"}
	}
	return resp.Token, nil
}

// ListStores returns all stores. The endpoint is public: no credential.
func (c *Client) ListStores(ctx context.Context) ([]domain.Store, error) {
	var stores []domain.Store
	if err := c.get(ctx, "/public/stores", "", &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

func (c *Client) ListCategories(ctx context.Context, token, storeID string) ([]domain.Category, error) {
	var categories []domain.Category
	path := "/pos/stores/by-id/" + storeID + "/categories"
	if err := c.get(ctx, path, token, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) ListMenus(ctx context.Context, token, storeID string) ([]domain.MenuItem, error) {
	var resp menusResponse
	path := "/pos/stores/by-id/" + storeID + "/menus"
	if err := c.get(ctx, path, token, &resp); err != nil {
		return nil, err
	}
	return resp.Menus, nil
}

// CalculateBill has the backend price a cart snapshot. The counter never
// computes tax or totals locally.
func (c *Client) CalculateBill(ctx context.Context, token, storeID string, lines []domain.OrderLine) (*domain.Bill, error) {
	req := calculateBillRequest{StoreID: storeID, Items: toOrderItems(lines)}
	var bill domain.Bill
	if err := c.post(ctx, "/orders/calculate-bill", token, req, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

func (c *Client) CreateOrder(ctx context.Context, token string, input ports.CreateOrderInput) (*domain.Order, error) {
	req := createOrderRequest{
		StoreID:      input.StoreID,
		CashierID:    input.CashierID,
		Mode:         string(input.Mode),
		TableNumber:  input.TableNumber,
		CustomerName: input.CustomerName,
		Items:        toOrderItems(input.Lines),
	}
	var order domain.Order
	if err := c.post(ctx, "/orders", token, req, &order); err != nil {
		return nil, err
	}
	if order.Code == "" {
		return nil, &Error{Status: http.StatusOK, Message: "order response missing order code"}
	}
	return &order, nil
}

func (c *Client) ConfirmPayment(ctx context.Context, token, orderCode string, method domain.PaymentMethod) (*ports.PaymentResult, error) {
	req := confirmPaymentRequest{OrderCode: orderCode, PaymentMethod: string(method)}
	var resp confirmPaymentResponse
	if err := c.post(ctx, "/orders/confirm-payment", token, req, &resp); err != nil {
		return nil, err
	}
	return &ports.PaymentResult{OrderCode: resp.OrderCode, Status: resp.Status}, nil
}

func toOrderItems(lines []domain.OrderLine) []orderItem {
	items := make([]orderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, orderItem{MenuID: l.MenuID, Quantity: l.Quantity})
	}
	return items
}

// ── Transport plumbing ───────────────────────────────────────────────────────

func (c *Client) get(ctx context.Context, path, token string, out any) error {
	return c.do(ctx, http.MethodGet, path, token, nil, out)
}

func (c *Client) post(ctx context.Context, path, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, token, payload, out)
}

func (c *Client) do(ctx context.Context, method, path, token string, body []byte, out any) error {
	url := c.baseURL + apiPrefix + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFrom(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Status: resp.StatusCode, Message: "malformed response body"}
	}
	return nil
}

// errorFrom extracts the backend's error envelope, falling back to a generic
// message when the body is not well-formed.
func (c *Client) errorFrom(resp *http.Response) error {
	var env struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err == nil && env.Error != "" {
		return &Error{Status: resp.StatusCode, Message: env.Error}
	}
	return &Error{Status: resp.StatusCode, Message: "request failed"}
}
