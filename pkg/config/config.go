package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string

	ServerPort int
	LogLevel   string

	DatabaseURL string

	JWTSecret    []byte
	SessionTTL   time.Duration
	ResetTTL     time.Duration
	StoreTimeout time.Duration

	FrontendURL  string
	CookieSecure bool

	KafkaBrokers []string
}

// Load reads .env when present, then the process environment.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("notice: .env not loaded: %v", err)
	}
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "storefront"),

		ServerPort: EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:    []byte(os.Getenv("JWT_SECRET")),
		SessionTTL:   EnvDurationDefault("SESSION_TTL", 365*24*time.Hour),
		ResetTTL:     EnvDurationDefault("RESET_TTL", time.Hour),
		StoreTimeout: EnvDurationDefault("STORE_TIMEOUT", 5*time.Second),

		FrontendURL:  strings.TrimRight(EnvDefault("FRONTEND_URL", "http://localhost:7777"), "/"),
		CookieSecure: EnvBoolDefault("COOKIE_SECURE", true),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
