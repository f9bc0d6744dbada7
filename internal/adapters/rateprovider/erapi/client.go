// Package erapi fetches USD-based exchange rate tables from the open.er-api.com
// JSON endpoint.
package erapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
)

// DefaultBaseURL serves the full USD rate table.
const DefaultBaseURL = "https://open.er-api.com/v6/latest/USD"

const defaultTimeout = 10 * time.Second

// Client is a single-shot rate fetcher. It makes exactly one HTTP request per
// FetchRates call; retry and backoff policy belong to the rate cache.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the provider endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHTTPClient overrides the HTTP client, for tests and custom transports.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient creates a new Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiResponse is the provider's wire format. Rates are keyed by currency code
// and expressed relative to USD; the update times are unix seconds.
type apiResponse struct {
	Result             string             `json:"result"`
	Rates              map[string]float64 `json:"rates"`
	TimeLastUpdateUnix int64              `json:"time_last_update_unix"`
	TimeNextUpdateUnix int64              `json:"time_next_update_unix"`
}

// FetchRates retrieves the full rate table. Transport failures, non-2xx
// statuses and malformed or unsuccessful payloads all surface as errors.
func (c *Client) FetchRates(ctx context.Context) (*domain.RateSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read rate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate provider returned status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode rate response: %w", err)
	}
	if payload.Result != "success" {
		return nil, fmt.Errorf("rate provider returned result %q", payload.Result)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("rate provider returned no rates")
	}

	snap := &domain.RateSnapshot{
		Rates: make(map[string]decimal.Decimal, len(payload.Rates)),
	}
	for code, rate := range payload.Rates {
		snap.Rates[code] = decimal.NewFromFloat(rate)
	}
	if payload.TimeLastUpdateUnix > 0 {
		snap.FetchedAt = time.Unix(payload.TimeLastUpdateUnix, 0).UTC()
	}
	if payload.TimeNextUpdateUnix > 0 {
		snap.NextRefreshAt = time.Unix(payload.TimeNextUpdateUnix, 0).UTC()
	}
	return snap, nil
}
