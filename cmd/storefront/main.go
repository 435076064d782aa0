// Command storefront serves the session, catalog and cart views on top of
// the remote authentication and catalog service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shophub/storefront/internal/api"
	"github.com/shophub/storefront/internal/api/metrics"
	"github.com/shophub/storefront/internal/core/ports"
	"github.com/shophub/storefront/internal/core/service"
	"github.com/shophub/storefront/internal/infrastructure/db/memory"
	redisdb "github.com/shophub/storefront/internal/infrastructure/db/redis"
	"github.com/shophub/storefront/internal/infrastructure/http/handlers"
	"github.com/shophub/storefront/internal/infrastructure/upstream"
	"github.com/shophub/storefront/internal/pkg/config"
	"github.com/shophub/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "storefront",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := upstream.New(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	}, logger.Component("upstream"))

	sessions := service.NewSessionStore(client, logger.Component("session"))
	catalog := service.NewCatalogLoader(client, sessions, logger.Component("catalog"))
	catalog.OnTransition(metrics.ObserveCatalogTransition)
	cart := service.NewCartLedger(logger.Component("cart"))

	readiness := map[string]handlers.Check{"upstream": client.Ping}

	var idempotency ports.IdempotencyStore = memory.NewIdempotencyStore(cfg.Redis.IdempotencyTTL)
	if cfg.Redis.Enabled {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable")
		}
		defer rdb.Close()

		idempotency = redisdb.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		readiness["redis"] = func(ctx context.Context) error {
			return redisdb.Ping(ctx, rdb, time.Second)
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis idempotency store enabled")
	}

	e := api.NewRouter(api.Deps{
		Sessions:    sessions,
		Catalog:     catalog,
		Cart:        cart,
		Idempotency: idempotency,
		Readiness:   readiness,
		Log:         logger.Component("http"),
	})

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("upstream", cfg.Upstream.BaseURL).
			Msg("storefront listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
