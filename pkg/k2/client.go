package k2

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knowledge2-io/knowledge2-go/internal/constants"
)

// DefaultAPIHost is the production Knowledge2 API endpoint.
const DefaultAPIHost = "https://api.knowledge2.ai"

// Static errors for configuration validation.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIHostRequired     = errors.New("api_host must not be empty")
	ErrInvalidAPIHost      = errors.New("api_host contains an invalid control character")
	ErrNegativeMaxRetries  = errors.New("max_retries must be >= 0")
	ErrNoCredentials       = errors.New("no credentials configured")
	ErrInvalidPoolLimits   = errors.New("connection pool limits must be >= 0")
	ErrNegativeBackoffWait = errors.New("backoff durations must be >= 0")
)

// Limits tunes the HTTP connection pool shared by all calls of one client.
type Limits struct {
	// MaxConnections bounds total connections to the API host.
	MaxConnections int

	// MaxIdleConnections bounds pooled keepalive connections.
	MaxIdleConnections int

	// IdleConnTimeout is the keepalive expiry for pooled connections.
	IdleConnTimeout time.Duration
}

// DefaultLimits returns the default connection pool limits.
func DefaultLimits() *Limits {
	return &Limits{
		MaxConnections:     constants.DefaultMaxConnections,
		MaxIdleConnections: constants.DefaultMaxIdleConnections,
		IdleConnTimeout:    constants.DefaultIdleConnTimeout,
	}
}

// Config configures a Knowledge2 client. It is immutable after the client is
// constructed.
//
// # Authentication precedence
//
// Exactly one credential header is sent per request. When more than one
// credential is configured, precedence is fixed and documented:
//
//	APIKey (X-API-Key) > BearerToken (Authorization: Bearer) > AdminToken (X-Admin-Token)
//
// # Retries
//
// MaxRetries bounds automatic retries of transient failures (HTTP 5xx, 429,
// connection failures, timeouts); nil selects the default of 2. Zero disables
// retries entirely: exactly one attempt per logical call.
type Config struct {
	// APIHost is the base URL of the Knowledge2 API. Defaults to
	// DefaultAPIHost. A missing scheme is normalized to https.
	APIHost string

	// APIKey authenticates via the X-API-Key header.
	APIKey string

	// BearerToken authenticates via the Authorization header (console /
	// Auth0 sessions).
	BearerToken string

	// AdminToken authenticates via the X-Admin-Token header.
	AdminToken string

	// OrgID scopes requests to an organisation. When empty and an APIKey is
	// configured, it is discovered from /v1/auth/whoami at construction.
	OrgID string

	// Headers are extra default headers sent with every request. They cannot
	// override the credential headers.
	Headers map[string]string

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Timeout bounds a single request attempt. Zero selects the default
	// (30s). It does not bound a whole logical call; a fully retried call
	// takes up to attempts x (timeout + backoff).
	Timeout time.Duration

	// MaxRetries is the retry budget for transient failures. Nil selects the
	// default (2). Negative values are rejected at construction.
	MaxRetries *int

	// BackoffFactor is the base delay unit for exponential backoff between
	// retries. Zero selects the default (500ms).
	BackoffFactor time.Duration

	// BackoffMax caps the computed backoff delay. Zero selects the default
	// (8s). A server-supplied Retry-After is honored even above this cap.
	BackoffMax time.Duration

	// Limits tunes the connection pool. Nil selects DefaultLimits.
	Limits *Limits

	// Debug enables request/response logging for this client regardless of
	// the process-wide SetDebug switch.
	Debug bool

	// Logger receives debug records for this client. Nil selects the
	// process-wide default logger.
	Logger Logger
}

// Int returns a pointer to v; a convenience for Config.MaxRetries.
func Int(v int) *int { return &v }

// Bool returns a pointer to v; a convenience for optional request fields.
func Bool(v bool) *bool { return &v }

// NormalizeAPIHost validates and normalizes a base URL: surrounding
// whitespace and a trailing slash are stripped, a missing scheme becomes
// https, and control characters are rejected.
func NormalizeAPIHost(host string) (string, error) {
	normalized := strings.TrimSpace(host)
	normalized = strings.TrimSuffix(normalized, "/")

	if normalized == "" {
		return "", ErrAPIHostRequired
	}

	for idx, char := range normalized {
		if char < 32 || char == 127 {
			return "", fmt.Errorf("%w: %q at position %d", ErrInvalidAPIHost, char, idx)
		}
	}

	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}

	return normalized, nil
}

// Validate checks the configuration, applying no defaults.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigRequired
	}

	host := c.APIHost
	if host == "" {
		host = DefaultAPIHost
	}

	if _, err := NormalizeAPIHost(host); err != nil {
		return err
	}

	if c.MaxRetries != nil && *c.MaxRetries < 0 {
		return ErrNegativeMaxRetries
	}

	if c.BackoffFactor < 0 || c.BackoffMax < 0 {
		return ErrNegativeBackoffWait
	}

	if c.Limits != nil {
		if c.Limits.MaxConnections < 0 || c.Limits.MaxIdleConnections < 0 || c.Limits.IdleConnTimeout < 0 {
			return ErrInvalidPoolLimits
		}
	}

	return nil
}

// Client is the interface implemented by the Knowledge2 API client.
type Client interface {
	Auth() AuthClient
	Orgs() OrgsClient
	Projects() ProjectsClient
	Corpora() CorporaClient
	Documents() DocumentsClient
	Search() SearchClient
	Indexes() IndexesClient
	Models() ModelsClient
	Deployments() DeploymentsClient
	Training() TrainingClient
	Metadata() MetadataClient
	Jobs() JobsClient
	Usage() UsageClient
	Audit() AuditClient

	// OrgID returns the configured or discovered organisation ID, if any.
	OrgID() string

	// Close releases the client's connection pool. It is safe to call more
	// than once; the pool is released exactly once.
	Close()
}

// AuthClient manages API keys and identity.
type AuthClient interface {
	CreateAPIKey(ctx context.Context, orgID, name string, scopes map[string]interface{}) (*APIKeyCreateResult, error)
	ListAPIKeys(ctx context.Context) (*APIKeyList, error)
	RevokeAPIKey(ctx context.Context, keyID string) (*APIKeyRevokeResult, error)
	RotateAPIKey(ctx context.Context, keyID string) (*APIKeyRotateResult, error)
	WhoAmI(ctx context.Context) (*WhoAmI, error)
}

// OrgsClient manages organisations.
type OrgsClient interface {
	Create(ctx context.Context, name, contactEmail string) (*Org, error)
	Get(ctx context.Context, orgID string) (*Org, error)
	List(ctx context.Context, params *ListParams) (*OrgList, error)
}

// ProjectsClient manages projects.
type ProjectsClient interface {
	Create(ctx context.Context, orgID, name string) (*Project, error)
	Get(ctx context.Context, projectID string) (*Project, error)
	List(ctx context.Context, params *ListParams) (*ProjectList, error)
	Iterate(ctx context.Context, pageSize int) *PaginationIterator[Project]
}

// CorporaClient manages corpora.
type CorporaClient interface {
	Create(ctx context.Context, request *CorpusCreateRequest) (*Corpus, error)
	Get(ctx context.Context, corpusID string) (*Corpus, error)
	GetStatus(ctx context.Context, corpusID string) (*CorpusStatus, error)
	List(ctx context.Context, params *ListParams) (*CorpusList, error)
	Iterate(ctx context.Context, pageSize int) *PaginationIterator[Corpus]
	Update(ctx context.Context, corpusID string, request *CorpusUpdateRequest) (*Corpus, error)
	Delete(ctx context.Context, corpusID string, force bool) (*CorpusDeleteResult, error)
	ListModels(ctx context.Context, corpusID string, params *ListParams) (*ModelList, error)
	IterateModels(ctx context.Context, corpusID string, pageSize int) *PaginationIterator[Model]
}

// DocumentsClient manages documents within corpora.
type DocumentsClient interface {
	Upload(ctx context.Context, corpusID string, request *DocumentCreateRequest) (*DocumentCreateResult, error)
	Get(ctx context.Context, docID string) (*Document, error)
	List(ctx context.Context, corpusID string, params *ListParams) (*DocumentList, error)
	Iterate(ctx context.Context, corpusID string, pageSize int) *PaginationIterator[Document]
	UpdateMetadata(ctx context.Context, docID string, metadata map[string]interface{}) (*Document, error)
	Delete(ctx context.Context, docID string) (*DocumentDeleteResult, error)
}

// SearchClient executes retrieval queries.
type SearchClient interface {
	Search(ctx context.Context, corpusID string, request *SearchRequest) (*SearchResponse, error)
	SearchBatch(ctx context.Context, corpusID string, queries []string, request *SearchRequest) (*SearchBatchResponse, error)
	SearchGenerate(ctx context.Context, corpusID string, request *SearchRequest) (*SearchGenerateResponse, error)
	Embeddings(ctx context.Context, request *EmbeddingsRequest) (*EmbeddingsResponse, error)
	CreateFeedback(ctx context.Context, corpusID string, request *FeedbackRequest) (*FeedbackResult, error)
}

// IndexesClient manages corpus indexes.
type IndexesClient interface {
	Rebuild(ctx context.Context, corpusID string) (*IndexBuildResult, error)
	GetStatus(ctx context.Context, corpusID string) (*IndexStatus, error)
}

// ModelsClient manages retrieval models.
type ModelsClient interface {
	List(ctx context.Context, params *ListParams) (*ModelList, error)
	Get(ctx context.Context, modelID string) (*Model, error)
	Iterate(ctx context.Context, pageSize int) *PaginationIterator[Model]

	// Delete removes a model and its artifacts. Without force, deleting a
	// model with active deployments fails with a ConflictError.
	Delete(ctx context.Context, modelID string, force bool) (*ModelDeleteResult, error)
}

// DeploymentsClient serves tuned models on corpora.
type DeploymentsClient interface {
	Create(ctx context.Context, corpusID string, request *DeploymentCreateRequest) (*Deployment, error)
	List(ctx context.Context, corpusID string, params *ListParams) (*DeploymentList, error)
	Iterate(ctx context.Context, corpusID string, pageSize int) *PaginationIterator[Deployment]
}

// TrainingClient manages training data builds, tuning runs, and evaluation
// runs. The mutating operations accept an optional idempotency key; the
// server rejects a duplicate key with a ConflictError.
type TrainingClient interface {
	BuildTrainingData(ctx context.Context, corpusID, idempotencyKey string) (*TrainingDataBuildResult, error)
	ListTrainingData(ctx context.Context, corpusID string, params *ListParams) (*TrainingDatasetList, error)
	IterateTrainingData(ctx context.Context, corpusID string, pageSize int) *PaginationIterator[TrainingDataset]

	CreateTuningRun(ctx context.Context, corpusID, idempotencyKey string, useFTK bool) (*TuningRunCreateResult, error)

	// BuildAndStartTuningRun builds training data and starts a tuning run in
	// one call. With wait set, it blocks until the build job completes.
	BuildAndStartTuningRun(ctx context.Context, corpusID, idempotencyKey string, wait bool) (*TuningRunBuildResult, error)

	ListTuningRuns(ctx context.Context, corpusID string, params *ListParams) (*TuningRunList, error)
	IterateTuningRuns(ctx context.Context, corpusID string, pageSize int) *PaginationIterator[TuningRun]
	GetTuningRun(ctx context.Context, runID string) (*TuningRun, error)
	GetTuningRunLogs(ctx context.Context, runID string, tail int) (*TuningRunLogs, error)
	CancelTuningRun(ctx context.Context, runID string) (*TuningRunCancelResult, error)
	PromoteTuningRun(ctx context.Context, runID string) (*TuningRunPromoteResult, error)

	GetEvalRun(ctx context.Context, evalID string) (*EvalRun, error)
}

// MetadataClient discovers the metadata fields present in a corpus.
type MetadataClient interface {
	// Discover returns distinct metadata keys with inferred types and value
	// statistics. refresh bypasses the server-side cache.
	Discover(ctx context.Context, corpusID string, refresh bool) (*MetadataDiscovery, error)
}

// JobsClient tracks asynchronous server-side jobs.
type JobsClient interface {
	Get(ctx context.Context, jobID string) (*Job, error)
	List(ctx context.Context, params *ListParams) (*JobList, error)
	Iterate(ctx context.Context, params *ListParams, pageSize int) *PaginationIterator[Job]
	Cancel(ctx context.Context, jobID string) (*JobStatusResult, error)
	Retry(ctx context.Context, jobID string) (*JobStatusResult, error)
	PollUntilComplete(ctx context.Context, jobID string) (*Job, error)
}

// AuditClient reads the organisation's audit log. Entries can be filtered
// with the corpus_id and project_id list params.
type AuditClient interface {
	List(ctx context.Context, params *ListParams) (*AuditLogList, error)
	Iterate(ctx context.Context, params *ListParams, pageSize int) *PaginationIterator[AuditLogEntry]
}

// UsageClient reports request volume and latency.
type UsageClient interface {
	// GetSummary aggregates usage over a range such as "7d" or "30d".
	// corpusID optionally scopes the summary to one corpus.
	GetSummary(ctx context.Context, rangeValue, corpusID string) (*UsageSummary, error)
	GetByCorpus(ctx context.Context, rangeValue string) (*UsageByCorpus, error)
	GetByKey(ctx context.Context, rangeValue string) (*UsageByKey, error)
}
