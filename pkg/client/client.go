// Package client provides the EasyData HTTP client with disk caching,
// retry and error handling.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quantecresearch/easydata-go/pkg/cache"
)

// DefaultBaseURL is the production EasyData API endpoint.
const DefaultBaseURL = "https://www.easydata.co.za/api/v3"

// Prometheus metrics for EasyData client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "easydata_requests_total",
		Help: "Total EasyData requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "easydata_request_duration_seconds",
		Help:    "EasyData request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "easydata_errors_total",
		Help: "Total EasyData errors by class",
	}, []string{"class"})
)

// Client is the EasyData API client.
type Client struct {
	httpClient  *http.Client
	cache       *cache.Store
	config      Config
	retryConfig RetryConfig
	logger      zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// APIKey authenticates requests. Falls back to the EASYDATA_API_KEY
	// environment variable when empty.
	APIKey string

	// BaseURL is the API base URL. Falls back to EASYDATA_API_URL, then to
	// DefaultBaseURL. A trailing slash is trimmed.
	BaseURL string

	// RespFormat is the response format for time series and recipe calls
	// (csv, json or parquet). Defaults to csv.
	RespFormat cache.Format

	// IsTidy requests tidy time series data.
	IsTidy bool

	// UserAgent is sent with every request.
	UserAgent string

	// UseCache enables disk caching for grid data.
	UseCache bool

	// CacheDir is the cache root directory. Defaults to "cache".
	CacheDir string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// Retry
	MaxRetries     int
	InitialBackoff time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:         apiKey,
		RespFormat:     cache.FormatCSV,
		IsTidy:         true,
		UserAgent:      "easydata-go/0.1.0",
		CacheDir:       "cache",
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		InitialBackoff: 1 * time.Second,
	}
}

// New creates a new EasyData client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("EASYDATA_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key must be provided via Config.APIKey or the EASYDATA_API_KEY environment variable")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("EASYDATA_API_URL")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.RespFormat == "" {
		cfg.RespFormat = cache.FormatCSV
	}
	if !cfg.RespFormat.IsWireFormat() {
		return nil, fmt.Errorf("resp format must be csv, json or parquet (got %q)", cfg.RespFormat)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	retryCfg := DefaultRetryConfig()
	if cfg.MaxRetries > 0 {
		retryCfg.MaxAttempts = cfg.MaxRetries
	}
	if cfg.InitialBackoff > 0 {
		retryCfg.InitialBackoff = cfg.InitialBackoff
	}

	logger := log.With().Str("component", "easydata-client").Logger()

	var store *cache.Store
	if cfg.UseCache {
		dir := cfg.CacheDir
		if dir == "" {
			dir = "cache"
		}
		var err error
		store, err = cache.NewStore(dir)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:       store,
		config:      cfg,
		retryConfig: retryCfg,
		logger:      logger,
	}, nil
}

// get performs an authenticated GET request and returns the response body.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	return c.execute(ctx, endpoint, func() (*http.Request, error) {
		q := url.Values{}
		for key, values := range query {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		q.Set("auth_token", c.config.APIKey)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			c.config.BaseURL+endpoint+"?"+q.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.config.UserAgent)
		return req, nil
	})
}

// postJSON performs a token-authenticated POST request with a JSON body.
func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	return c.execute(ctx, endpoint, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.config.BaseURL+endpoint, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Token "+c.config.APIKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", c.config.UserAgent)
		return req, nil
	})
}

// execute runs one request with retry, metrics and error classification.
// The request is rebuilt per attempt so POST bodies can be resent.
func (c *Client) execute(ctx context.Context, endpoint string, build func() (*http.Request, error)) ([]byte, error) {
	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	var body []byte
	attempt := func() error {
		req, err := build()
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
			errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
			return &APIError{Class: ErrorClassNetwork, Message: "unable to connect to API", Err: err}
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			return &APIError{Class: ErrorClassNetwork, Message: "read response body", Err: err}
		}

		requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

		if resp.StatusCode >= 400 {
			class := classifyStatus(resp.StatusCode)
			errorsTotal.WithLabelValues(string(class)).Inc()
			c.logger.Warn().
				Str("endpoint", endpoint).
				Int("status", resp.StatusCode).
				Str("error_class", string(class)).
				Msg("EasyData request error")
			return &APIError{
				StatusCode: resp.StatusCode,
				Class:      class,
				Message:    truncate(string(data), 512),
			}
		}

		body = data
		return nil
	}

	if err := c.retryWithBackoff(ctx, endpoint, attempt); err != nil {
		return nil, err
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Cache returns the disk cache store, or nil when caching is disabled.
func (c *Client) Cache() *cache.Store {
	return c.cache
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
