package constants

import "time"

// Version is the SDK version reported in the User-Agent header.
const Version = "0.3.0"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for a single request attempt.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as whoami lookups.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry configuration defaults.
const (
	// DefaultMaxRetries is the default number of automatic retries for
	// transient failures. Total attempts = DefaultMaxRetries + 1.
	DefaultMaxRetries = 2

	// DefaultBackoffFactor is the base delay unit for exponential backoff.
	DefaultBackoffFactor = 500 * time.Millisecond

	// DefaultBackoffMax caps the computed backoff delay between retries.
	DefaultBackoffMax = 8 * time.Second
)

// Connection pool defaults.
const (
	// DefaultMaxConnections is the default connection pool size.
	DefaultMaxConnections = 20

	// DefaultMaxIdleConnections is the default number of pooled idle
	// (keepalive) connections.
	DefaultMaxIdleConnections = 10

	// DefaultIdleConnTimeout is the default keepalive expiry.
	DefaultIdleConnTimeout = 30 * time.Second
)

// Pagination defaults.
const (
	// DefaultPageSize is the default number of items requested per page.
	DefaultPageSize = 100

	// SmallPageSize is used for demonstrations or small lists.
	SmallPageSize = 5
)

// Job polling defaults.
const (
	// DefaultJobPollInterval is the default interval between job status checks.
	DefaultJobPollInterval = 5 * time.Second

	// DefaultJobPollTimeout bounds a PollUntilComplete call.
	DefaultJobPollTimeout = 10 * time.Minute
)

// Cache defaults for the CLI-side lookup cache.
const (
	// DefaultCacheSize is the default cache entry limit.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default cache time-to-live.
	DefaultCacheTTL = 5 * time.Minute
)

// Display constants.
const (
	// MaskedSecret is used to hide sensitive information in logs and output.
	MaskedSecret = "***"

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"
)
