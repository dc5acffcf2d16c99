// Command server runs the back-office order listing API.
//
// Startup order: environment (.env optional), configuration, logging, the
// tab table sanity check, SQLite, the reliability store backend, tracing,
// the Gin router, and finally the HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/oms-labs/go-order-backoffice/internal/config"
	httpapi "github.com/oms-labs/go-order-backoffice/internal/http"
	"github.com/oms-labs/go-order-backoffice/internal/listing"
	"github.com/oms-labs/go-order-backoffice/internal/observability"
	"github.com/oms-labs/go-order-backoffice/internal/reliability"
	"github.com/oms-labs/go-order-backoffice/internal/repo"
	"github.com/oms-labs/go-order-backoffice/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	sysutil.SetupLogger(cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)

	if err := listing.ValidateTabs(); err != nil {
		log.Fatal().Err(err).Msg("tab table invalid")
	}

	db, err := repo.OpenSQLite(cfg.DBPath, cfg.OTEL.Enabled)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	store, closeStore, err := buildStore(cfg.Reliability)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Reliability.Backend).Msg("reliability store")
	}
	defer closeStore()

	gw := reliability.NewHTTPGateway(cfg.Gateway.BaseURL, cfg.Gateway.APIKey, cfg.Gateway.Timeout)
	cache := reliability.NewCache(store, gw)
	cache.Workers = cfg.Reliability.Workers
	cache.CallTimeout = cfg.Gateway.Timeout

	shutdownOTel, err := observability.SetupOTel(context.Background(), cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("setup tracing")
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, db, cache, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("version", version).
			Str("addr", srv.Addr).
			Str("base_path", cfg.APIBasePath).
			Str("store", cfg.Reliability.Backend).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := shutdownOTel(ctx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
	log.Info().Msg("bye")
}

// buildStore selects the reliability store backend from configuration and
// returns it with its close function.
func buildStore(cfg config.ReliabilityConfig) (reliability.Store, func(), error) {
	switch cfg.Backend {
	case config.StoreRedis:
		rs, err := reliability.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() {
			if err := rs.Close(); err != nil {
				log.Warn().Err(err).Msg("close redis store")
			}
		}, nil
	default:
		return reliability.NewMemoryStore(), func() {}, nil
	}
}
