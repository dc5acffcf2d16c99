package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/ok", func(c *gin.Context) {
		v, _ := c.Get(requestIDKey)
		seen = asString(v)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	got := w.Header().Get(requestIDHeader)
	if got == "" {
		t.Fatalf("response missing %s", requestIDHeader)
	}
	if got != seen {
		t.Errorf("context ID %q != header ID %q", seen, got)
	}
}

func TestRequestID_PropagatesExisting(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(requestIDHeader, "rid-incoming")
	r.ServeHTTP(w, req)

	if got := w.Header().Get(requestIDHeader); got != "rid-incoming" {
		t.Errorf("header = %q, want rid-incoming", got)
	}
}

func TestLogger_AttachesRequestScopedLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID(), Logger())
	var hadLogger bool
	r.GET("/ok", func(c *gin.Context) {
		_, hadLogger = c.Get("logger")
		lg := LoggerFrom(c)
		if lg == nil {
			t.Error("LoggerFrom returned nil")
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	if !hadLogger {
		t.Error("request-scoped logger not set")
	}
}

func TestLoggerFrom_FallbackWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if LoggerFrom(c) == nil {
		t.Fatal("fallback logger is nil")
	}
}

func TestRecovery_JSONEnvelopeOnPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaput") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"code":"internal_error"`) {
		t.Errorf("body = %s", body)
	}
	if !strings.Contains(body, `"request_id"`) {
		t.Errorf("body missing request_id: %s", body)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 3); got != "abc…" {
		t.Errorf("got %q", got)
	}
	if got := truncate("abc", 10); got != "abc" {
		t.Errorf("got %q", got)
	}
	if got := truncate("abc", 0); got != "abc" {
		t.Errorf("max<=0 should disable truncation, got %q", got)
	}
}
