// Package httpapi wires the HTTP transport (Gin) to the listing core,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/oms-labs/go-order-backoffice/internal/config"
	"github.com/oms-labs/go-order-backoffice/internal/domain"
	"github.com/oms-labs/go-order-backoffice/internal/http/handlers"
	"github.com/oms-labs/go-order-backoffice/internal/http/middleware"
	"github.com/oms-labs/go-order-backoffice/internal/listing"
	"github.com/oms-labs/go-order-backoffice/internal/repo"
)

// orderRepoShim adapts the repository free functions to the listing.OrderRepo
// interface expected by the query engine. This keeps the listing core
// decoupled from the concrete repo package while reusing existing functions.
type orderRepoShim struct{}

// ListOrders proxies repo.ListOrders.
func (orderRepoShim) ListOrders(ctx context.Context, db *gorm.DB, statuses []domain.Status, search string, offset, limit int) ([]domain.Order, int64, error) {
	return repo.ListOrders(ctx, db, statuses, search, offset, limit)
}

// CountOrdersByStatus proxies repo.CountOrdersByStatus.
func (orderRepoShim) CountOrdersByStatus(ctx context.Context, db *gorm.DB, status domain.Status) (int64, error) {
	return repo.CountOrdersByStatus(ctx, db, status)
}

// noteRepoShim adapts repo.LatestCustomerNotes to listing.NoteRepo.
type noteRepoShim struct{}

// LatestCustomerNotes proxies repo.LatestCustomerNotes.
func (noteRepoShim) LatestCustomerNotes(ctx context.Context, db *gorm.DB, orderIDs []string) (map[string]string, error) {
	return repo.LatestCustomerNotes(ctx, db, orderIDs)
}

// incompleteRepoShim adapts repo.ListIncompleteOrders to listing.IncompleteRepo.
type incompleteRepoShim struct{}

// ListIncompleteOrders proxies repo.ListIncompleteOrders.
func (incompleteRepoShim) ListIncompleteOrders(ctx context.Context, db *gorm.DB, search string, offset, limit int) ([]domain.IncompleteOrder, int64, error) {
	return repo.ListIncompleteOrders(ctx, db, search, offset, limit)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, health and metrics endpoints, and then mounts
// the versioned public API under cfg.APIBasePath.
//
// The reliability resolver is injected because its construction (store
// backend, gateway client) happens in the entrypoint.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per client IP)
//  8. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, resolver listing.Resolver, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction; listing search terms are
	// customer phone numbers and names.
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-Api-Key"},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (64 KiB; the API is read-only)
	r.Use(limitBody(64 << 10))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured). With
	// an allowlist, gin-contrib/cors echoes the request Origin and sets
	// Vary: Origin itself.
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
		AllowCredentials: false, // must remain false with AllowAllOrigins
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Security headers (HSTS only when enabled and request is HTTPS).
	// NoStore because listing responses carry customer PII.
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: listing service ← engine/repo/resolver
	engine := listing.NewEngine(db, orderRepoShim{})
	svc := listing.NewService(db, engine, resolver, noteRepoShim{}, incompleteRepoShim{})
	h := handlers.New(svc, svc)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("/orders", h.ListOrders)
		api.GET("/orders/statuses", h.ListStatuses)
		api.GET("/incomplete-orders", h.ListIncomplete)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
