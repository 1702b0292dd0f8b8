package middleware

import (
	"context"
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

const (
	CookieName   = "token"
	principalKey = "principal"
)

type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (*models.Account, error)
}

// resolveError marks store failures so they are not mistaken for a bad token.
type resolveError struct{ err error }

func (e *resolveError) Error() string { return e.err.Error() }
func (e *resolveError) Unwrap() error { return e.err }

type SessionMiddleware struct {
	Resolver PrincipalResolver
}

func NewSessionMiddleware(r PrincipalResolver) *SessionMiddleware {
	return &SessionMiddleware{Resolver: r}
}

// Resolve attaches the caller's principal, if any. Missing or invalid tokens
// leave the request anonymous; store failures abort it.
func (m *SessionMiddleware) Resolve(next echo.HandlerFunc) echo.HandlerFunc {
	extract := echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + CookieName + ",header:Authorization:Bearer ",
		ContextKey:  principalKey,
		ParseTokenFunc: func(c echo.Context, token string) (any, error) {
			acc, err := m.Resolver.ResolvePrincipal(c.Request().Context(), token)
			if err != nil {
				return nil, &resolveError{err: err}
			}
			if acc == nil {
				return nil, domain.ErrInvalidToken
			}
			return acc.Principal(), nil
		},
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			var re *resolveError
			if !errors.As(err, &re) {
				return nil
			}
			logging.Error(logging.FromContext(c.Request().Context()), "resolve_principal_failed", re.err)
			return re.err
		},
	})

	return extract(func(c echo.Context) error {
		if p := Principal(c); p != nil {
			ctx := c.Request().Context()
			l := logging.FromContext(ctx).With("account_id", p.ID)
			c.SetRequest(c.Request().WithContext(logging.IntoContext(ctx, l)))
		}
		return next(c)
	})
}

func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if Principal(c) == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "you must be signed in")
		}
		return next(c)
	}
}

func RequirePermission(anyOf ...domain.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := Principal(c)
			if p == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "you must be signed in")
			}
			if !domain.HasAny(p.Permissions, anyOf...) {
				return echo.NewHTTPError(http.StatusForbidden, "you do not have sufficient permissions")
			}
			return next(c)
		}
	}
}

// Principal returns nil for anonymous requests.
func Principal(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalKey).(*domain.Principal)
	return p
}
