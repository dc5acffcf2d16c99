// Package reliability – Gateway
//
// This file defines the courier history service contract and its HTTP
// implementation. The service is external, assumed expensive and
// rate-limited; the Cache in this package is responsible for calling it at
// most once per unique phone number per page.
package reliability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/oms-labs/go-order-backoffice/internal/domain"
)

// Gateway returns the aggregate delivery statistic for a customer phone
// number. Implementations must honor the context for cancellation and
// timeouts and must be safe for concurrent use.
type Gateway interface {
	SuccessRate(ctx context.Context, phone string) (domain.SuccessRate, error)
}

// HTTPGateway calls the courier history service over HTTP.
//
// The endpoint is GET {BaseURL}/api/v1/courier-check?phone=<phone> with the
// API key passed in the X-Api-Key header. The response body is the JSON
// shape of domain.SuccessRate.
type HTTPGateway struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewHTTPGateway constructs an HTTPGateway with its own client and the given
// per-call timeout. A timeout <= 0 falls back to 5s so one slow upstream
// call cannot stall an entire page render.
func NewHTTPGateway(baseURL, apiKey string, timeout time.Duration) *HTTPGateway {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPGateway{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: timeout},
	}
}

// SuccessRate fetches the statistic for phone.
//
// Any transport failure, non-200 status, undecodable body, or a payload
// violating the successOrders <= totalOrders invariant is returned as an
// error; the caller decides whether that degrades to an unknown tier.
func (g *HTTPGateway) SuccessRate(ctx context.Context, phone string) (domain.SuccessRate, error) {
	endpoint := fmt.Sprintf("%s/api/v1/courier-check?phone=%s", g.BaseURL, url.QueryEscape(phone))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.SuccessRate{}, fmt.Errorf("build courier history request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if g.APIKey != "" {
		req.Header.Set("X-Api-Key", g.APIKey)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return domain.SuccessRate{}, fmt.Errorf("courier history request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.SuccessRate{}, fmt.Errorf("courier history service returned %d", resp.StatusCode)
	}

	var rate domain.SuccessRate
	if err := json.NewDecoder(resp.Body).Decode(&rate); err != nil {
		return domain.SuccessRate{}, fmt.Errorf("decode courier history response: %w", err)
	}
	if !rate.Valid() {
		return domain.SuccessRate{}, fmt.Errorf("courier history service returned inconsistent statistic %d/%d", rate.SuccessOrders, rate.TotalOrders)
	}
	return rate, nil
}
