package pesoshield

import (
	"context"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/pesoshield/pesoshield-go/internal/fetch"
	"github.com/pesoshield/pesoshield-go/internal/storage"
	internalTypes "github.com/pesoshield/pesoshield-go/internal/types"
)

const (
	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
)

// Storage keys. Each value is independently JSON-serializable; corrupt or
// missing data degrades to an empty or default value.
const (
	transactionsKey = "pesoshield-transactions"
	plannedKey      = "pesoshield-budget-planned"
	dismissedKey    = "pesoshield-dismissed-alerts"
	prevRatesKey    = "pesoshield-prev-rates"
)

// Client is the PesoShield SDK entry point.
type Client struct {
	// Service interfaces
	Rates   RateService
	Ledger  LedgerService
	Budgets BudgetService
	Alerts  AlertService
	Reports ReportService

	// Internal fields
	store   storage.Store
	fetcher *fetch.Client
	options *ClientOptions
	now     func() time.Time
}

// ClientOptions configures the client
type ClientOptions struct {
	// Store is the key-value store backing all persisted state. Defaults
	// to an in-memory store when nil.
	Store Store

	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout
	Timeout time.Duration

	// RateBaseURL overrides the primary rate provider base URL
	RateBaseURL string

	// FallbackBaseURL overrides the fallback rate provider base URL
	FallbackBaseURL string

	// SeriesBaseURL overrides the statistics series API base URL
	SeriesBaseURL string

	// Generator is the text-generation collaborator used for monthly
	// reports
	Generator Generator

	// Assistant is the conversational collaborator
	Assistant Assistant

	// Logger for debug logging
	Logger Logger

	// RetryConfig configures provider retry behavior; nil means a
	// single attempt per fetch
	RetryConfig *internalTypes.RetryConfig

	// Hooks for observability
	Hooks *internalTypes.Hooks

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions

	// Now overrides the clock, used by tests to pin "today"
	Now func() time.Time
}

// Logger interface for logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// NewClient creates a new PesoShield client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	// Initialize Sentry if DSN is provided
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}

		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}

		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}

		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		if err := sentry.Init(sentryOpts); err != nil {
			// Log error but don't fail client creation
			if opts.Logger != nil {
				opts.Logger.Error("Failed to initialize Sentry", "error", err)
			}
		}
	}

	// Set defaults
	if opts.Store == nil {
		opts.Store = storage.NewMemoryStore()
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	if opts.Timeout > 0 {
		opts.HTTPClient.Timeout = opts.Timeout
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	fetcher := fetch.New(&fetch.Options{
		RateBaseURL:     opts.RateBaseURL,
		FallbackBaseURL: opts.FallbackBaseURL,
		SeriesBaseURL:   opts.SeriesBaseURL,
		HTTPClient:      opts.HTTPClient,
		RetryConfig:     opts.RetryConfig,
		Logger:          loggerAdapter(opts.Logger),
		Hooks:           opts.Hooks,
	})

	c := &Client{
		store:   opts.Store,
		fetcher: fetcher,
		options: opts,
		now:     opts.Now,
	}

	c.initServices()

	return c, nil
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Rates = &rateService{client: c}
	c.Ledger = &ledgerService{client: c}
	c.Budgets = &budgetService{client: c}
	c.Alerts = &alertService{client: c}
	c.Reports = &reportService{client: c}
}

// Close flushes any pending Sentry events and performs cleanup
func (c *Client) Close() {
	sentry.Flush(2 * time.Second)
}

// captureError reports an error to Sentry and the logger. Provider and
// collaborator failures are non-fatal by design, so this is the only
// place they surface.
func (c *Client) captureError(ctx context.Context, err error, msg string) {
	if c.options.Logger != nil {
		c.options.Logger.Warn(msg, "error", err)
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
	} else {
		sentry.CaptureException(err)
	}
}

// logDebug logs when a logger is configured.
func (c *Client) logDebug(msg string, keysAndValues ...interface{}) {
	if c.options.Logger != nil {
		c.options.Logger.Debug(msg, keysAndValues...)
	}
}

// loggerAdapter passes the public Logger down to the internal packages.
// A nil logger stays nil so the fetch layer can skip logging entirely.
func loggerAdapter(l Logger) internalTypes.Logger {
	if l == nil {
		return nil
	}
	return l
}
