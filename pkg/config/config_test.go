package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("RESET_TTL", "nonsense")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("FRONTEND_URL", "https://shop.example/")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 365*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Hour, cfg.ResetTTL)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "https://shop.example", cfg.FrontendURL)
	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
}
