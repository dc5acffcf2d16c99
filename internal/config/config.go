// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, database paths, the courier history
// gateway, the reliability store backend, rate limiting, and observability.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-order-backoffice")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// GatewayConfig defines the courier history service connection.
type GatewayConfig struct {
	BaseURL string        // COURIER_API_BASE_URL
	APIKey  string        // COURIER_API_KEY
	Timeout time.Duration // COURIER_API_TIMEOUT, per-call deadline
}

// ReliabilityConfig selects and tunes the reliability cache backing store.
type ReliabilityConfig struct {
	Backend       string // RELIABILITY_STORE: memory|redis
	Workers       int    // RELIABILITY_WORKERS: concurrent gateway calls per page
	RedisAddr     string // REDIS_ADDR (host:port)
	RedisPassword string // REDIS_PASSWORD
	RedisDB       int    // REDIS_DB
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging
	LogLevel    string // debug|info|warn|error|fatal|panic
	LogPretty   bool   // pretty console logs in dev
	APIBasePath string // base path for API routes

	// App
	DBPath      string // SQLite path
	Gateway     GatewayConfig
	Reliability ReliabilityConfig

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// Reliability store backends accepted by Validate.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging
		LogLevel:    strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:   getbool("LOG_PRETTY", false),
		APIBasePath: normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),

		// App
		DBPath: getenv("DB_PATH", "app.db"),
		Gateway: GatewayConfig{
			BaseURL: strings.TrimRight(getenv("COURIER_API_BASE_URL", ""), "/"),
			APIKey:  getenv("COURIER_API_KEY", ""),
			Timeout: getdur("COURIER_API_TIMEOUT", 5*time.Second),
		},
		Reliability: ReliabilityConfig{
			Backend:       strings.ToLower(getenv("RELIABILITY_STORE", StoreMemory)),
			Workers:       getint("RELIABILITY_WORKERS", 4),
			RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getenv("REDIS_PASSWORD", ""),
			RedisDB:       getint("REDIS_DB", 0),
		},

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-order-backoffice"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and cross-field consistency.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("config: PORT must not be empty")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("config: PORT must be numeric: %w", err)
	}
	if c.DBPath == "" {
		return errors.New("config: DB_PATH must not be empty")
	}
	if c.RateRPS < 0 {
		return errors.New("config: RATE_RPS must be >= 0")
	}
	if c.RateBurst < 1 {
		return errors.New("config: RATE_BURST must be >= 1")
	}
	switch c.Reliability.Backend {
	case StoreMemory:
	case StoreRedis:
		if c.Reliability.RedisAddr == "" {
			return errors.New("config: REDIS_ADDR must be set when RELIABILITY_STORE=redis")
		}
	default:
		return fmt.Errorf("config: RELIABILITY_STORE must be %q or %q, got %q", StoreMemory, StoreRedis, c.Reliability.Backend)
	}
	if c.Reliability.Workers < 1 {
		return errors.New("config: RELIABILITY_WORKERS must be >= 1")
	}
	if c.Gateway.Timeout <= 0 {
		return errors.New("config: COURIER_API_TIMEOUT must be positive")
	}
	if c.OTEL.SampleRatio < 0 || c.OTEL.SampleRatio > 1 {
		return errors.New("config: OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}
	return nil
}

// ---- env helpers ----

// getenv returns the environment value for key, or def when unset/empty.
func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// getint parses an int environment value, falling back to def.
func getint(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// getfloat parses a float environment value, falling back to def.
func getfloat(key string, def float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// getbool parses a boolean environment value ("1", "true", "yes", "on"),
// falling back to def.
func getbool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	return def
}

// getdur parses a time.Duration environment value (e.g. "15s"), falling
// back to def.
func getdur(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// splitCSV splits a comma-separated value into trimmed, non-empty items.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalizeBasePath ensures a leading slash and strips any trailing one.
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(p, "/")
}
