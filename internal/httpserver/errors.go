package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/domain"
)

// statusOf maps the domain taxonomy onto HTTP. Messages are fixed per kind so
// store and crypto details never reach the client.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMismatch):
		return http.StatusBadRequest, "passwords do not match"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "you must be signed in"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "you do not have sufficient permissions"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "already exists"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusBadRequest, "this token is either invalid or expired"
	case errors.Is(err, domain.ErrTransient):
		return http.StatusServiceUnavailable, "temporarily unavailable, try again"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func toHTTP(err error) *echo.HTTPError {
	code, msg := statusOf(err)
	return echo.NewHTTPError(code, msg).SetInternal(err)
}

// ErrorHandler renders domain errors and delegates everything else to echo.
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			err = toHTTP(err)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
