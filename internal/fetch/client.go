// Package fetch implements the HTTP layer for the external data providers:
// DolarAPI for the full rate board, Bluelytics for the fallback board and
// the historical evolution series, and the datos.gob.ar series API for the
// inflation index. It only speaks the providers' raw shapes; normalization
// lives in the public SDK package.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/pesoshield/pesoshield-go/internal/types"
)

const (
	dolaresEndpoint   = "/v1/dolares"
	latestEndpoint    = "/v2/latest"
	evolutionEndpoint = "/v2/evolution.json"

	// IPC Nucleo Nacional, base dic 2016, monthly index from INDEC
	cpiSeriesEndpoint = "/series/api/series/?ids=148.3_INUCLEONAL_DICI_M_19&last=2&format=json"

	contentType = "application/json"
)

// Client fetches raw provider payloads.
type Client struct {
	rateBaseURL     string
	fallbackBaseURL string
	seriesBaseURL   string
	httpClient      *http.Client
	retryClient     *retryablehttp.Client
	headers         map[string]string
	logger          types.Logger
	hooks           *types.Hooks
}

// Options configures the fetch client.
type Options struct {
	RateBaseURL     string
	FallbackBaseURL string
	SeriesBaseURL   string
	HTTPClient      *http.Client
	RetryConfig     *types.RetryConfig
	Headers         map[string]string
	Logger          types.Logger
	Hooks           *types.Hooks
}

// New creates a new fetch client.
func New(opts *Options) *Client {
	if opts == nil {
		opts = &Options{}
	}

	if opts.RateBaseURL == "" {
		opts.RateBaseURL = types.DefaultRateBaseURL
	}

	if opts.FallbackBaseURL == "" {
		opts.FallbackBaseURL = types.DefaultFallbackBaseURL
	}

	if opts.SeriesBaseURL == "" {
		opts.SeriesBaseURL = types.DefaultSeriesBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: types.DefaultTimeout,
		}
	}

	// Create retry client if configured; by default every fetch is a
	// single attempt and the user retries manually
	var retryClient *retryablehttp.Client
	if opts.RetryConfig != nil {
		retryClient = retryablehttp.NewClient()
		retryClient.HTTPClient = opts.HTTPClient
		retryClient.RetryMax = opts.RetryConfig.MaxRetries
		retryClient.RetryWaitMin = opts.RetryConfig.RetryWait
		retryClient.RetryWaitMax = opts.RetryConfig.MaxWait

		if opts.Logger != nil {
			retryClient.Logger = &retryLogger{logger: opts.Logger}
		}
	}

	headers := map[string]string{
		"Accept":     contentType,
		"User-Agent": types.UserAgent,
	}

	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &Client{
		rateBaseURL:     opts.RateBaseURL,
		fallbackBaseURL: opts.FallbackBaseURL,
		seriesBaseURL:   opts.SeriesBaseURL,
		httpClient:      opts.HTTPClient,
		retryClient:     retryClient,
		headers:         headers,
		logger:          opts.Logger,
		hooks:           opts.Hooks,
	}
}

// DolarRates fetches the full rate board from the primary provider.
func (c *Client) DolarRates(ctx context.Context) ([]*DolarRate, error) {
	var rates []*DolarRate
	if err := c.getJSON(ctx, c.rateBaseURL+dolaresEndpoint, &rates); err != nil {
		return nil, errors.Wrap(err, "failed to fetch dolar rates")
	}
	return rates, nil
}

// BluelyticsLatest fetches the fallback provider's latest quotes.
func (c *Client) BluelyticsLatest(ctx context.Context) (*BluelyticsLatest, error) {
	var latest BluelyticsLatest
	if err := c.getJSON(ctx, c.fallbackBaseURL+latestEndpoint, &latest); err != nil {
		return nil, errors.Wrap(err, "failed to fetch fallback rates")
	}
	return &latest, nil
}

// BluelyticsEvolution fetches the historical rate series.
func (c *Client) BluelyticsEvolution(ctx context.Context) ([]*EvolutionPoint, error) {
	var points []*EvolutionPoint
	if err := c.getJSON(ctx, c.fallbackBaseURL+evolutionEndpoint, &points); err != nil {
		return nil, errors.Wrap(err, "failed to fetch rate evolution")
	}
	return points, nil
}

// CPISeries fetches the last two points of the monthly inflation index.
func (c *Client) CPISeries(ctx context.Context) ([]*SeriesRow, error) {
	var resp seriesResponse
	if err := c.getJSON(ctx, c.seriesBaseURL+cpiSeriesEndpoint, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to fetch CPI series")
	}
	return resp.rows()
}

// getJSON performs a GET against a provider and decodes the JSON body.
func (c *Client) getJSON(ctx context.Context, url string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	if c.hooks != nil && c.hooks.OnRequest != nil {
		c.hooks.OnRequest(ctx, req)
	}

	start := time.Now()
	resp, err := c.do(req)
	duration := time.Since(start)

	if err != nil {
		if c.hooks != nil && c.hooks.OnError != nil {
			c.hooks.OnError(ctx, err)
		}
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if c.hooks != nil && c.hooks.OnResponse != nil {
		c.hooks.OnResponse(ctx, resp, duration)
	}

	if c.logger != nil {
		c.logger.Debug("provider response",
			"url", url,
			"status", resp.StatusCode,
			"duration", duration.String(),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := errors.Wrapf(types.ErrProviderUnavailable, "%s responded with %d", url, resp.StatusCode)
		if c.hooks != nil && c.hooks.OnError != nil {
			c.hooks.OnError(ctx, err)
		}
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	if err := json.Unmarshal(body, result); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}

	return nil
}

// do executes the request through the retry client when one is configured.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.retryClient != nil {
		retryReq, err := retryablehttp.FromRequest(req)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create retryable request")
		}
		return c.retryClient.Do(retryReq)
	}
	return c.httpClient.Do(req)
}

// retryLogger adapts our Logger to retryablehttp's logger interface
type retryLogger struct {
	logger types.Logger
}

func (l *retryLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug("retryablehttp", "message", fmt.Sprintf(format, v...))
}
