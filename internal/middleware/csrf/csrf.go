package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type Config struct {
	CookieName string
	HeaderName string

	CookiePath string
	Domain     string
	Secure     bool
	SameSite   http.SameSite
	MaxAge     time.Duration

	// TrustedOrigins lists cross-site origins (scheme://host[:port]) allowed to
	// send unsafe requests. Same-origin requests always pass.
	TrustedOrigins []string

	// SessionCookie names the cookie that carries ambient credentials. Unsafe
	// requests without it cannot ride a victim's session and are not checked.
	SessionCookie string

	SkipPaths []string
}

func DefaultConfig() Config {
	return Config{
		CookieName: "XSRF-TOKEN",
		HeaderName: "X-CSRF-Token",
		CookiePath: "/",
		Secure:     true,
		SameSite:   http.SameSiteLaxMode,
		MaxAge:     24 * time.Hour,
	}
}

// Middleware implements double-submit CSRF protection: the token cookie must
// be echoed in the header on unsafe methods.
func Middleware(cfg Config) echo.MiddlewareFunc {
	def := DefaultConfig()
	if cfg.CookieName == "" {
		cfg.CookieName = def.CookieName
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = def.HeaderName
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = def.CookiePath
	}
	if cfg.SameSite == 0 {
		cfg.SameSite = def.SameSite
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = def.MaxAge
	}

	trusted := make(map[string]struct{}, len(cfg.TrustedOrigins))
	for _, o := range cfg.TrustedOrigins {
		if key := originKey(o); key != "" {
			trusted[key] = struct{}{}
		}
	}

	skip := map[string]struct{}{}
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			if _, ok := skip[req.URL.Path]; ok {
				return next(c)
			}

			token := readCookie(req, cfg.CookieName)
			if token == "" {
				var err error
				token, err = newToken(32)
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "failed to create CSRF token")
				}
			}
			setCSRFCookie(c, cfg, token)

			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				c.Response().Header().Set(cfg.HeaderName, token)
				return next(c)
			}

			if cfg.SessionCookie != "" && readCookie(req, cfg.SessionCookie) == "" {
				return next(c)
			}

			if !originAllowed(req, trusted) {
				return echo.NewHTTPError(http.StatusForbidden, "invalid origin")
			}

			provided := req.Header.Get(cfg.HeaderName)
			if provided == "" || subtle.ConstantTimeCompare([]byte(token), []byte(provided)) != 1 {
				return echo.NewHTTPError(http.StatusForbidden, "invalid CSRF token")
			}
			return next(c)
		}
	}
}

func newToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func setCSRFCookie(c echo.Context, cfg Config, token string) {
	c.SetCookie(&http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     cfg.CookiePath,
		Domain:   cfg.Domain,
		Secure:   cfg.Secure,
		HttpOnly: false,
		MaxAge:   int(cfg.MaxAge.Seconds()),
		SameSite: cfg.SameSite,
	})
}

func readCookie(req *http.Request, name string) string {
	c, err := req.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// originAllowed checks Origin, falling back to Referer. Requests carrying
// neither are rejected.
func originAllowed(r *http.Request, trusted map[string]struct{}) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		origin = r.Header.Get("Referer")
	}
	key := originKey(origin)
	if key == "" {
		return false
	}
	if key == strings.ToLower(schemeOf(r)+"://"+r.Host) {
		return true
	}
	_, ok := trusted[key]
	return ok
}

// originKey reduces a URL to lower-case scheme://host, or "" when unparsable.
func originKey(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Scheme + "://" + u.Host)
}

func schemeOf(r *http.Request) string {
	if p := r.Header.Get("X-Forwarded-Proto"); p != "" {
		return p
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
