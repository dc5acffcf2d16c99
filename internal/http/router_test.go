package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oms-labs/go-order-backoffice/internal/config"
	"github.com/oms-labs/go-order-backoffice/internal/domain"
	"github.com/oms-labs/go-order-backoffice/internal/http/handlers"
)

// --- fake reliability resolver ---

type fakeResolver struct {
	rates map[string]domain.SuccessRate
}

func (f fakeResolver) ResolveBatch(_ context.Context, phones []string) map[string]domain.SuccessRate {
	out := make(map[string]domain.SuccessRate, len(phones))
	for _, p := range phones {
		if r, ok := f.rates[p]; ok {
			out[p] = r
		}
	}
	return out
}

// --- test DB helper (pure-Go sqlite, no CGO) ---

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("router_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(
		&domain.Order{}, &domain.OrderItem{}, &domain.OrderNote{},
		&domain.IncompleteOrder{}, &domain.IncompleteItem{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath: "/api/v1",
		RateRPS:     100,
		RateBurst:   10,
		CORS:        config.CORSConfig{AllowedOrigins: nil}, // AllowAllOrigins branch
		Security:    config.SecurityConfig{EnableHSTS: false},
		OTEL:        config.OTELConfig{ServiceName: "test-svc"},
	}
}

func TestRegisterRoutes_HealthMetricsCORSAndFallbacks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestDB(t), fakeResolver{}, testConfig())

	// /health works
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	// CORS (AllowAllOrigins) → header "*"
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}
	// Security headers applied
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("security headers missing")
	}
	if w.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("listing API should be no-store")
	}

	// /metrics is wired
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	// NoRoute fallback
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope = %d", w.Code)
	}
	var er handlers.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil || er.Code != handlers.ErrCodeNotFound {
		t.Fatalf("NoRoute envelope = %s", w.Body.String())
	}

	// NoMethod fallback
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health = %d", w.Code)
	}
}

func TestRegisterRoutes_OrdersEndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)

	orderID := uuid.NewString()
	if err := db.Create(&domain.Order{
		ID:           orderID,
		Number:       "1001",
		Status:       domain.StatusCompleted,
		BillingPhone: "01712345678",
		BillingName:  "Anika",
		CreatedAt:    time.Now().UTC(),
	}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Create(&domain.OrderNote{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		Content:   "call before delivery",
		CreatedAt: time.Now().UTC(),
	}).Error; err != nil {
		t.Fatalf("seed note: %v", err)
	}

	resolver := fakeResolver{rates: map[string]domain.SuccessRate{
		"01712345678": {SuccessRate: 90, SuccessOrders: 9, TotalOrders: 10},
	}}

	r := gin.New()
	RegisterRoutes(r, db, resolver, testConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders?tab=confirmed", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/orders = %d, body = %s", w.Code, w.Body.String())
	}

	var resp handlers.ListOrdersResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Orders) != 1 {
		t.Fatalf("orders = %d", len(resp.Orders))
	}
	row := resp.Orders[0]
	if row.Number != "1001" || row.Reliability.Tier != "green" || row.Note != "call before delivery" {
		t.Errorf("row = %+v", row)
	}
	if resp.TabTotal != 1 || resp.Pagination.Total != 1 {
		t.Errorf("totals = %d / %d", resp.TabTotal, resp.Pagination.Total)
	}

	// Statuses endpoint under the same prefix.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/statuses", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/orders/statuses = %d", w.Code)
	}

	// Incomplete endpoint works with an empty table.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/incomplete-orders", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/incomplete-orders = %d", w.Code)
	}
	var inc handlers.ListIncompleteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &inc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(inc.Orders) != 0 || inc.Pagination.Total != 0 {
		t.Errorf("incomplete = %+v", inc)
	}
}

func TestRegisterRoutes_CORSAllowlistEchoesOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.CORS.AllowedOrigins = []string{"https://admin.example"}

	r := gin.New()
	RegisterRoutes(r, newTestDB(t), fakeResolver{}, cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://admin.example")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://admin.example" {
		t.Fatalf("ACAO = %q", got)
	}
	if got := w.Header().Get("Vary"); got != "Origin" {
		t.Fatalf("Vary = %q, want Origin", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got == "https://evil.example" {
		t.Fatalf("disallowed origin echoed: %q", got)
	}
}
