package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCSRFEcho(trusted ...string) *echo.Echo {
	e := echo.New()
	e.Use(Middleware(Config{SessionCookie: "token", TrustedOrigins: trusted}))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	e.GET("/x", ok)
	e.POST("/x", ok)
	return e
}

func TestSafeMethodIssuesToken(t *testing.T) {
	e := newCSRFEcho()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-CSRF-Token"))
}

func TestUnsafeMethodWithSession(t *testing.T) {
	e := newCSRFEcho("https://shop.example")

	tests := []struct {
		name   string
		header string
		origin string
		want   int
	}{
		{"missing header", "", "http://example.com", http.StatusForbidden},
		{"wrong header", "nope", "http://example.com", http.StatusForbidden},
		{"foreign origin", "tok", "http://evil.example", http.StatusForbidden},
		{"no origin", "tok", "", http.StatusForbidden},
		{"trusted origin wrong scheme", "tok", "http://shop.example", http.StatusForbidden},
		{"matching", "tok", "http://example.com", http.StatusNoContent},
		{"trusted origin", "tok", "https://shop.example", http.StatusNoContent},
		{"trusted origin case", "tok", "HTTPS://Shop.Example", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/x", nil)
			req.AddCookie(&http.Cookie{Name: "XSRF-TOKEN", Value: "tok"})
			req.AddCookie(&http.Cookie{Name: "token", Value: "session"})
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.header != "" {
				req.Header.Set("X-CSRF-Token", tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			require.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestUnsafeMethodWithoutSessionCookie(t *testing.T) {
	e := newCSRFEcho()
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer abc")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRefererFallback(t *testing.T) {
	e := newCSRFEcho("https://shop.example")
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.AddCookie(&http.Cookie{Name: "XSRF-TOKEN", Value: "tok"})
	req.AddCookie(&http.Cookie{Name: "token", Value: "session"})
	req.Header.Set("X-CSRF-Token", "tok")
	req.Header.Set("Referer", "https://shop.example/cart?x=1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
