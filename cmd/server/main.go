package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/sipas-org/sipas-api/internal/config"
	"github.com/sipas-org/sipas-api/internal/logging"
	"github.com/sipas-org/sipas-api/internal/middleware"
	"github.com/sipas-org/sipas-api/internal/server"
	"github.com/sipas-org/sipas-api/internal/storage/postgres"
)

func main() {
	loadLocalEnv()

	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// run serves until a signal arrives or the listener fails. It returns only
// after its deferred cleanup, so main can exit without skipping it.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(logging.New(cfg.LogLevel, cfg.LogFormat))

	ctx := context.Background()
	store, err := postgres.NewStore(ctx, postgres.Config{
		URL:            cfg.DatabaseURL,
		MaxConns:       cfg.DBMaxConns,
		SimpleProtocol: cfg.DBSimpleProtocol,
		AutoMigrate:    cfg.AutoMigrate,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer store.Close()

	if err := server.BootstrapAdmin(ctx, cfg, store); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	var limiter middleware.RateLimiter
	if cfg.RateLimitEnabled() {
		client, err := newRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("init redis: %w", err)
		}
		defer client.Close()
		limiter = redis_rate.NewLimiter(client)
		slog.Info("login rate limiting enabled", "perMinute", cfg.LoginRateLimit)
	}

	srv := server.New(cfg, store, limiter)

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("SIPAS API listening", "addr", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-sigCh:
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		slog.Error("graceful shutdown error", "error", err)
	}
	return nil
}

func newRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found; relying on existing environment")
	}
}
