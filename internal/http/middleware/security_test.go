package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestSecurityHeaders_BaselineAndExpose(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Header("X-Request-ID", "rid-123")
		c.Next()
	})
	r.Use(SecurityHeaders(SecurityOptions{}))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	h := w.Header()
	if h.Get("X-Content-Type-Options") != "nosniff" ||
		h.Get("X-Frame-Options") != "DENY" ||
		h.Get("Referrer-Policy") != "no-referrer" {
		t.Fatalf("baseline headers missing: %#v", h)
	}
	if h.Get("Permissions-Policy") != "" || h.Get("Cache-Control") != "" ||
		h.Get("Strict-Transport-Security") != "" {
		t.Fatalf("optional headers should be absent by default: %#v", h)
	}
	if h.Get("Access-Control-Expose-Headers") != "X-Request-ID" {
		t.Fatalf("expose header = %q", h.Get("Access-Control-Expose-Headers"))
	}
}

func TestSecurityHeaders_AppendsToExistingExpose(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Header("X-Request-ID", "rid-abc")
		c.Header("Access-Control-Expose-Headers", "Foo")
		c.Next()
	})
	r.Use(SecurityHeaders(SecurityOptions{}))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	if got := w.Header().Get("Access-Control-Expose-Headers"); got != "Foo, X-Request-ID" {
		t.Fatalf("expose header = %q", got)
	}
}

func TestSecurityHeaders_PolicyAndNoStore(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(SecurityHeaders(SecurityOptions{NoStore: true, EnablePolicy: true}))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	h := w.Header()
	if !strings.Contains(h.Get("Permissions-Policy"), "geolocation=()") {
		t.Errorf("Permissions-Policy = %q", h.Get("Permissions-Policy"))
	}
	if h.Get("X-Permitted-Cross-Domain-Policies") != "none" {
		t.Errorf("cross-domain policy = %q", h.Get("X-Permitted-Cross-Domain-Policies"))
	}
	if h.Get("Cache-Control") != "no-store" || h.Get("Pragma") != "no-cache" || h.Get("Expires") != "0" {
		t.Errorf("cache headers = %#v", h)
	}
}

func TestSecurityHeaders_HSTSOnlyOverHTTPS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	maxAge := 24 * time.Hour
	r := gin.New()
	r.Use(SecurityHeaders(SecurityOptions{EnableHSTS: true, HSTSMaxAge: maxAge}))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	// Plain HTTP: no HSTS.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Fatalf("HSTS set over plain HTTP")
	}

	// Direct TLS.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.TLS = &tls.ConnectionState{}
	r.ServeHTTP(w, req)
	want := "max-age=" + strconv.Itoa(int(maxAge.Seconds())) + "; includeSubDomains; preload"
	if got := w.Header().Get("Strict-Transport-Security"); got != want {
		t.Fatalf("HSTS = %q, want %q", got, want)
	}

	// Behind a proxy that terminated TLS.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	r.ServeHTTP(w, req)
	if w.Header().Get("Strict-Transport-Security") == "" {
		t.Fatalf("HSTS missing behind X-Forwarded-Proto=https")
	}
}
