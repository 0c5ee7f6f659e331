// @title        Auth Gateway API
// @version      1.0
// @description  Session gateway in front of the Supabase identity provider.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-gateway/internal/api"
	"github.com/99minutos/auth-gateway/internal/api/handler"
	"github.com/99minutos/auth-gateway/internal/core/ports"
	"github.com/99minutos/auth-gateway/internal/core/service"
	"github.com/99minutos/auth-gateway/internal/core/session"
	mongodb "github.com/99minutos/auth-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/auth-gateway/internal/infrastructure/db/redis"
	"github.com/99minutos/auth-gateway/internal/infrastructure/queue"
	"github.com/99minutos/auth-gateway/internal/infrastructure/storage"
	"github.com/99minutos/auth-gateway/internal/infrastructure/supabase"
	"github.com/99minutos/auth-gateway/internal/pkg/config"
	"github.com/99minutos/auth-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "auth-gateway",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	readiness := make(map[string]handler.Pinger)

	// --- Session store ---
	persister, closePersister, err := newPersister(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePersister()

	store := session.New(persister, log)
	store.Load(ctx)

	// --- Audit trail ---
	var recorder ports.AuditRecorder
	if cfg.Audit.Enabled {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  cfg.Mongo.Timeout,
		})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()

		repo := mongodb.NewAuditRepository(db)
		readiness["mongodb"] = repo

		dispatcher := queue.NewDispatcher(cfg.Audit.Workers, repo, log)
		dispatcher.Start(context.WithoutCancel(ctx))
		defer dispatcher.Close()
		recorder = dispatcher
		log.Info().Int("workers", cfg.Audit.Workers).Msg("audit trail enabled")
	}

	// --- Identity provider and orchestration ---
	provider := supabase.NewClient(supabase.Config{
		URL:     cfg.Supabase.URL,
		AnonKey: cfg.Supabase.AnonKey,
		Timeout: cfg.Supabase.Timeout,
	}, log)
	log.Info().Str("url", cfg.Supabase.URL).Msg("identity provider configured")

	authService := service.NewAuthService(provider, store, recorder, log)

	e := api.NewRouter(api.Dependencies{
		AuthService:   authService,
		Sessions:      store,
		Readiness:     readiness,
		Cookie:        handler.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.SecureHTTP},
		EnforceExpiry: cfg.Session.EnforceExpiry,
		Log:           log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Addr()).
			Str("session_backend", cfg.Session.Backend).
			Int("sessions", store.Len()).
			Msg("starting server")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newPersister builds the snapshot backend selected by SESSION_BACKEND.
func newPersister(ctx context.Context, cfg *config.Config) (ports.SessionPersister, func(), error) {
	switch cfg.Session.Backend {
	case config.BackendRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:    cfg.Redis.Addr,
			DB:      cfg.Redis.DB,
			Timeout: cfg.Redis.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return redisdb.NewSessionSnapshot(client, cfg.Redis.SessionKey), func() { _ = client.Close() }, nil
	default:
		return storage.NewFileSnapshot(cfg.Session.File), func() {}, nil
	}
}
