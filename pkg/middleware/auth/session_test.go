package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
)

type fakeResolver struct {
	accounts map[string]*models.Account
	err      error
}

func (f *fakeResolver) ResolvePrincipal(_ context.Context, token string) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.accounts[token], nil
}

func newSessionEcho(r PrincipalResolver) *echo.Echo {
	e := echo.New()
	mw := NewSessionMiddleware(r)
	e.Use(mw.Resolve)
	e.GET("/whoami", func(c echo.Context) error {
		p := Principal(c)
		if p == nil {
			return c.String(http.StatusOK, "anonymous")
		}
		return c.String(http.StatusOK, p.ID.String())
	})
	e.GET("/admin", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		RequirePermission(domain.PermissionAdmin))
	e.GET("/private", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireAuth)
	return e
}

func serve(e *echo.Echo, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestResolve(t *testing.T) {
	acc := &models.Account{ID: uuid.New(), Permissions: domain.DefaultPermissions()}
	e := newSessionEcho(&fakeResolver{accounts: map[string]*models.Account{"good": acc}})

	rec := serve(e, "/whoami", nil)
	assert.Equal(t, "anonymous", rec.Body.String())

	rec = serve(e, "/whoami", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: "good"}) })
	assert.Equal(t, acc.ID.String(), rec.Body.String())

	rec = serve(e, "/whoami", func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer good") })
	assert.Equal(t, acc.ID.String(), rec.Body.String())

	rec = serve(e, "/whoami", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: "bad"}) })
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestResolveSurfacesStoreErrors(t *testing.T) {
	e := newSessionEcho(&fakeResolver{err: errors.New("db down")})
	rec := serve(e, "/whoami", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: "any"}) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGuards(t *testing.T) {
	user := &models.Account{ID: uuid.New(), Permissions: domain.DefaultPermissions()}
	admin := &models.Account{ID: uuid.New(), Permissions: []domain.Permission{domain.PermissionAdmin}}
	e := newSessionEcho(&fakeResolver{accounts: map[string]*models.Account{"user": user, "admin": admin}})
	as := func(token string) func(*http.Request) {
		return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: token}) }
	}

	assert.Equal(t, http.StatusUnauthorized, serve(e, "/private", nil).Code)
	assert.Equal(t, http.StatusOK, serve(e, "/private", as("user")).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(e, "/admin", nil).Code)
	assert.Equal(t, http.StatusForbidden, serve(e, "/admin", as("user")).Code)
	assert.Equal(t, http.StatusOK, serve(e, "/admin", as("admin")).Code)
}
