package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kedaipos/counter/internal/core/domain"
	"github.com/kedaipos/counter/internal/core/ports"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn func(ctx context.Context, sessionID uuid.UUID) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	return s.logoutFn(ctx, sessionID)
}

func (s *stubAuthService) Resolve(_ context.Context, _ uuid.UUID) (*domain.SessionRecord, error) {
	return nil, domain.ErrSessionNotFound
}

var testCookie = CookieConfig{Name: "pos_session", TTL: 12 * time.Hour}

func newLoginContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	sessionID := uuid.New()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "kasir@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.LoginResult{
				SessionID: sessionID,
				Identity:  domain.Identity{Email: email, Role: domain.RoleCashier},
				StoreID:   "store_1",
			}, nil
		},
	}
	handler := NewAuthHandler(stub, testCookie)

	c, rec := newLoginContext(`{"email":"kasir@example.com","password":"secret"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "kasir@example.com" || resp["role"] != "CASHIER" || resp["storeId"] != "store_1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != "pos_session" || cookie.Value != sessionID.String() {
		t.Fatalf("unexpected cookie: %s=%s", cookie.Name, cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
}

func TestAuthHandler_Login_ValidationFailure(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, testCookie)

	c, _ := newLoginContext(`{"email":"not-an-email","password":""}`)
	err := handler.Login(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAuthHandler_Login_ServiceErrorPropagates(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (*ports.LoginResult, error) {
			return nil, domain.ErrIncompleteIdentity
		},
	}
	handler := NewAuthHandler(stub, testCookie)

	c, _ := newLoginContext(`{"email":"kasir@example.com","password":"secret"}`)
	if err := handler.Login(c); err != domain.ErrIncompleteIdentity {
		t.Fatalf("expected domain error to propagate, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	sessionID := uuid.New()
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, id uuid.UUID) error {
			if id != sessionID {
				t.Fatalf("unexpected session id %s", id)
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub, testCookie)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session_id", sessionID)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("expected an expired cookie, got %+v", cookies)
	}
}

func TestAuthHandler_Logout_WithoutSession(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, testCookie)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Logout(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
