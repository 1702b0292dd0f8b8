package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/middleware/csrf"
	"github.com/Skotchmaster/storefront/internal/notify"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/pkg/config"
	"github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/logging"
	authmw "github.com/Skotchmaster/storefront/pkg/middleware/auth"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	if err == nil {
		err = db.Migrate(initCtx, gdb)
	}
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatalf("db handle: %v", err)
	}

	var (
		publisher events.Publisher = events.Nop{}
		notifier  notify.Notifier  = notify.LogMailer{}
		producer  *events.Producer
	)
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		publisher = producer
		notifier = &notify.KafkaMailer{Publisher: producer}
	} else {
		logger.Warn("kafka disabled: events dropped and mail logged")
	}

	store := repo.New(gdb, cfg.StoreTimeout)
	tok, err := tokens.NewService(cfg.JWTSecret, cfg.SessionTTL, time.Now)
	if err != nil {
		log.Fatalf("token service: %v", err)
	}
	hasher := hash.NewHasher()

	sessions := &service.SessionService{Accounts: store, Hasher: hasher, Tokens: tok, Events: publisher}
	resets := &service.ResetService{
		Accounts:     store,
		Hasher:       hasher,
		Sessions:     sessions,
		Notifier:     notifier,
		Events:       publisher,
		ResetURLBase: cfg.FrontendURL,
		TTL:          cfg.ResetTTL,
	}

	csrfCfg := csrf.DefaultConfig()
	csrfCfg.Secure = cfg.CookieSecure
	csrfCfg.SessionCookie = authmw.CookieName

	e := httpserver.New(cfg.FrontendURL, &httpserver.Deps{
		Logger:   logger,
		Auth:     &httpserver.AuthHTTP{Sessions: sessions, Resets: resets, CookieSecure: cfg.CookieSecure},
		Cart:     &httpserver.CartHTTP{Svc: &service.CartService{Store: store, Items: store, Events: publisher}},
		Items:    &httpserver.ItemsHTTP{Svc: &service.ItemService{Items: store, Events: publisher}},
		Accounts: &httpserver.AccountsHTTP{Svc: &service.AccountService{Accounts: store, Events: publisher}},
		Session:  authmw.NewSessionMiddleware(sessions),
		CSRF:     csrfCfg,
		Ready: func(ctx context.Context) error {
			return db.Ping(ctx, gdb)
		},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close", "error", err)
		}
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("db close", "error", err)
	}
	logger.Info("stopped")
}
