package types

import (
	"errors"
	"time"
)

const (
	// DefaultRateBaseURL is the primary exchange-rate provider
	DefaultRateBaseURL = "https://dolarapi.com"

	// DefaultFallbackBaseURL is the fallback rate provider, also used
	// for historical evolution data
	DefaultFallbackBaseURL = "https://api.bluelytics.com.ar"

	// DefaultSeriesBaseURL is the official statistics series API used
	// for the inflation index
	DefaultSeriesBaseURL = "https://apis.datos.gob.ar"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// UserAgent is the user agent string
	UserAgent = "pesoshield-go/1.0.0"
)

// Common errors
var (
	// ErrProviderUnavailable is returned when a provider responds with a
	// non-success status
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrTimeout is returned on timeout
	ErrTimeout = errors.New("request timeout")

	// ErrServerError is returned for provider server errors
	ErrServerError = errors.New("server error")
)
