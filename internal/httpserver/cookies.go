package httpserver

import (
	"net/http"
	"time"

	authmw "github.com/Skotchmaster/storefront/pkg/middleware/auth"
)

func sessionCookie(value string, exp time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     authmw.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func clearSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     authmw.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
