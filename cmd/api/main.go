// @title Cat Rescue API
// @version 1.0
// @description Adopciones de gatos rescatados: catálogo, solicitudes y reportes anonimizados.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	rediscache "cat-rescue/internal/adapters/cache/redis"
	"cat-rescue/internal/adapters/auth/identity"
	"cat-rescue/internal/adapters/auth/jwt"
	pg "cat-rescue/internal/adapters/storage/postgres"
	"cat-rescue/internal/platform/config"
	"cat-rescue/internal/platform/logger"
	"cat-rescue/internal/ports/auth"
	"cat-rescue/internal/router"

	"github.com/go-redis/redis/v8"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cat-rescue: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.App,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verifier, err := newVerifier(cfg.Auth)
	if err != nil {
		return err
	}

	var db *sql.DB
	if cfg.DB.DSN != "" {
		db, err = pg.Open(cfg.DB.DSN)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer db.Close()

		if cfg.DB.Migrate {
			if err := pg.Migrate(ctx, db); err != nil {
				return err
			}
		}
		log.Info("storage: postgres", nil)
	} else {
		log.Warn("storage: in-memory (DB_DSN vacío)", nil)
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = rediscache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			// sin cache se sigue funcionando, sólo más lento
			log.Warn("redis unavailable, cache disabled", map[string]any{"addr": cfg.Redis.Addr, "error": err.Error()})
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			AuthVerifier: verifier,
			DB:           db,
			Redis:        rdb,
			CacheTTL:     cfg.Redis.CacheTTL,
			Logger:       log,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "auth_mode": string(cfg.Auth.Mode)})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newVerifier devuelve nil en modo dev (headers X-Debug-*).
func newVerifier(cfg config.AuthConfig) (auth.AuthVerifier, error) {
	switch cfg.Mode {
	case config.AuthModeJWT:
		return jwt.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer), nil
	case config.AuthModeRemote:
		client, err := identity.NewClient(identity.Config{
			BaseURL: cfg.IdentityBaseURL,
			APIKey:  cfg.IdentityAPIKey,
			Timeout: cfg.IdentityTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("identity: %w", err)
		}
		return identity.NewVerifier(client), nil
	default:
		return nil, nil
	}
}
