// Command upstream-stub is a local stand-in for the remote authentication
// and catalog service. It is meant for development only.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shophub/storefront/internal/infrastructure/accounts"
	"github.com/shophub/storefront/internal/infrastructure/config"
	mongodb "github.com/shophub/storefront/internal/infrastructure/db/mongo"
	standin "github.com/shophub/storefront/internal/infrastructure/http"
	"github.com/shophub/storefront/internal/infrastructure/http/handlers"
	"github.com/shophub/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "upstream-stub",
	})

	store, err := mongodb.Open(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo unavailable")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = store.Close(dctx)
	}()

	if cfg.SeedProducts {
		n, err := store.Products.Seed(ctx, handlers.SeedCatalog())
		if err != nil {
			log.Fatal().Err(err).Msg("seed products")
		}
		log.Info().Int("count", n).Msg("catalog seeded")
	}

	e := standin.NewRouter(standin.Deps{
		Accounts:  accounts.NewService(store.Users, cfg.JWTSecret, cfg.TokenTTL),
		Products:  store.Products,
		JWTSecret: cfg.JWTSecret,
		Readiness: map[string]handlers.Check{
			"mongodb": store.Ping,
		},
		Log: logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("db", cfg.Mongo.Database).Msg("upstream stub listening")
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
