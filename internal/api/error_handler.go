package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kedaipos/counter/internal/core/domain"
	"github.com/kedaipos/counter/internal/infrastructure/backend"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Relays backend failures as 502 with the backend-provided message.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Backend failures relay the backend's message; auth failures keep
	// their own status so the UI can send the user back to login.
	var be *backend.Error
	if errors.As(err, &be) {
		if be.Status == http.StatusUnauthorized || be.Status == http.StatusForbidden {
			return be.Status, be.Message
		}
		return http.StatusBadGateway, be.Message
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrUnknownRole),
		errors.Is(err, domain.ErrIncompleteIdentity):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrMenuNotFound),
		errors.Is(err, domain.ErrStoreNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrStoreLocked),
		errors.Is(err, domain.ErrOrderLocked),
		errors.Is(err, domain.ErrNoActiveOrder),
		errors.Is(err, domain.ErrRequestInFlight),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrNoStoreSelected),
		errors.Is(err, domain.ErrTableNumberRequired),
		errors.Is(err, domain.ErrCustomerNameRequired),
		errors.Is(err, domain.ErrInsufficientCash),
		errors.Is(err, domain.ErrMenuUnavailable),
		errors.Is(err, domain.ErrInvalidFulfillmentMode),
		errors.Is(err, domain.ErrInvalidPaymentMethod):
		return http.StatusUnprocessableEntity, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
