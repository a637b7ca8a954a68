package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kedaipos/counter/internal/core/domain"
)

// SessionResolver loads the durable record for a session id. Satisfied by
// the auth service.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID uuid.UUID) (*domain.SessionRecord, error)
}

// Session validates the session cookie and injects the session id, role,
// and selected store into the echo context.
func Session(cookieName string, resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session cookie")
			}

			id, err := uuid.Parse(cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session cookie")
			}

			record, err := resolver.Resolve(c.Request().Context(), id)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			c.Set("session_id", record.ID)
			c.Set("role", record.Identity.Role)
			c.Set("store_id", record.StoreID)

			return next(c)
		}
	}
}
