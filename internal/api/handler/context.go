package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ctxSessionID extracts the session id injected by the Session middleware.
// Its presence proves the middleware ran; a handler reached without it is a
// routing mistake, rejected with 401 rather than a panic.
func ctxSessionID(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get("session_id").(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return id, nil
}
