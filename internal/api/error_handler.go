package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cmsforge/translate-gateway/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
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

	// Known domain errors → deterministic HTTP codes. Backend errors carry
	// internal detail in their wrap; only the generic message leaves the
	// process.
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return http.StatusUnauthorized, "missing bearer token"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, domain.ErrInsufficientPermissions):
		return http.StatusForbidden, "insufficient permissions for translation service"
	case errors.Is(err, domain.ErrModelUnavailable):
		logBackendError(err, log, c)
		return http.StatusBadGateway, "requested model is not available"
	case errors.Is(err, domain.ErrBackendTimeout):
		logBackendError(err, log, c)
		return http.StatusGatewayTimeout, "translation backend unavailable"
	case errors.Is(err, domain.ErrBackendUnreachable):
		logBackendError(err, log, c)
		return http.StatusBadGateway, "translation backend unavailable"
	case errors.Is(err, domain.ErrBackendRejected):
		logBackendError(err, log, c)
		return http.StatusBadGateway, "translation failed"
	}

	// Unexpected error: log the real cause, return a generic message. An
	// internal fault is fatal to this request only, never to the process.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func logBackendError(err error, log zerolog.Logger, c echo.Context) {
	log.Warn().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("backend failure")
}
