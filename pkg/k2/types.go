package k2

// Corpus represents a corpus within a project.
type Corpus struct {
	ID             string                 `json:"id"                         yaml:"id"`
	ProjectID      string                 `json:"project_id"                 yaml:"project_id"`
	Name           string                 `json:"name"                       yaml:"name"`
	Description    string                 `json:"description,omitempty"      yaml:"description,omitempty"`
	IsTutorial     bool                   `json:"is_tutorial,omitempty"      yaml:"is_tutorial,omitempty"`
	IsDemo         bool                   `json:"is_demo,omitempty"          yaml:"is_demo,omitempty"`
	CurrentModelID string                 `json:"current_model_id,omitempty" yaml:"current_model_id,omitempty"`
	CreatedAt      string                 `json:"created_at,omitempty"       yaml:"created_at,omitempty"`
	OrgName        string                 `json:"org_name,omitempty"         yaml:"org_name,omitempty"`
	ProjectName    string                 `json:"project_name,omitempty"     yaml:"project_name,omitempty"`
	ChunkingConfig map[string]interface{} `json:"chunking_config,omitempty"  yaml:"chunking_config,omitempty"`
	GraphRagPolicy map[string]interface{} `json:"graph_rag_policy,omitempty" yaml:"graph_rag_policy,omitempty"`
}

// CorpusList is the list envelope for corpora.
type CorpusList struct {
	Corpora []Corpus `json:"corpora"         yaml:"corpora"`
	Total   *int     `json:"total,omitempty" yaml:"total,omitempty"`
}

// CorpusStatus reports the ingestion and indexing state of a corpus.
type CorpusStatus struct {
	Status               string  `json:"status"                          yaml:"status"`
	SearchStatus         string  `json:"search_status,omitempty"         yaml:"search_status,omitempty"`
	RetrievalReady       bool    `json:"retrieval_ready"                 yaml:"retrieval_ready"`
	Ingesting            bool    `json:"ingesting"                       yaml:"ingesting"`
	Indexing             bool    `json:"indexing"                        yaml:"indexing"`
	DocumentCount        int     `json:"document_count"                  yaml:"document_count"`
	DocumentsProcessing  int     `json:"documents_processing"            yaml:"documents_processing"`
	DocumentsFailed      int     `json:"documents_failed"                yaml:"documents_failed"`
	DocumentsFailedRatio float64 `json:"documents_failed_ratio"          yaml:"documents_failed_ratio"`
	DenseStatus          string  `json:"dense_status,omitempty"          yaml:"dense_status,omitempty"`
	SparseStatus         string  `json:"sparse_status,omitempty"         yaml:"sparse_status,omitempty"`
	GraphStatus          string  `json:"graph_status,omitempty"          yaml:"graph_status,omitempty"`
}

// CorpusDeleteResult confirms a corpus deletion.
type CorpusDeleteResult struct {
	Message string                 `json:"message"          yaml:"message"`
	Counts  map[string]interface{} `json:"counts,omitempty" yaml:"counts,omitempty"`
}

// CorpusCreateRequest is the payload for creating a corpus.
type CorpusCreateRequest struct {
	ProjectID   string `json:"project_id"            yaml:"project_id"`
	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// CorpusUpdateRequest is the payload for updating corpus settings. Nil fields
// are left unchanged.
type CorpusUpdateRequest struct {
	Name           *string                `json:"name,omitempty"             yaml:"name,omitempty"`
	Description    *string                `json:"description,omitempty"      yaml:"description,omitempty"`
	ChunkingConfig map[string]interface{} `json:"chunking_config,omitempty"  yaml:"chunking_config,omitempty"`
	GraphRagPolicy map[string]interface{} `json:"graph_rag_policy,omitempty" yaml:"graph_rag_policy,omitempty"`
}

// Document represents a document within a corpus.
type Document struct {
	ID             string                 `json:"id"                        yaml:"id"`
	CorpusID       string                 `json:"corpus_id"                 yaml:"corpus_id"`
	SourceURI      string                 `json:"source_uri,omitempty"      yaml:"source_uri,omitempty"`
	CustomMetadata map[string]interface{} `json:"custom_metadata,omitempty" yaml:"custom_metadata,omitempty"`
	SystemMetadata map[string]interface{} `json:"system_metadata,omitempty" yaml:"system_metadata,omitempty"`
	CreatedAt      string                 `json:"created_at,omitempty"      yaml:"created_at,omitempty"`
	Status         string                 `json:"status,omitempty"          yaml:"status,omitempty"`
	SizeBytes      int64                  `json:"size_bytes,omitempty"      yaml:"size_bytes,omitempty"`
	ContentType    string                 `json:"content_type,omitempty"    yaml:"content_type,omitempty"`
	Preview        string                 `json:"preview,omitempty"         yaml:"preview,omitempty"`
}

// DocumentList is the list envelope for documents.
type DocumentList struct {
	Documents []Document `json:"documents"       yaml:"documents"`
	Total     *int       `json:"total,omitempty" yaml:"total,omitempty"`
}

// DocumentCreateRequest is the payload for uploading a raw-text document.
type DocumentCreateRequest struct {
	SourceURI string                 `json:"source_uri,omitempty" yaml:"source_uri,omitempty"`
	RawText   string                 `json:"raw_text"             yaml:"raw_text"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"   yaml:"metadata,omitempty"`
}

// DocumentCreateResult carries the identifiers of an accepted upload.
type DocumentCreateResult struct {
	DocID string `json:"doc_id" yaml:"doc_id"`
	JobID string `json:"job_id" yaml:"job_id"`
}

// DocumentDeleteResult confirms a document deletion.
type DocumentDeleteResult struct {
	Message      string `json:"message"                  yaml:"message"`
	ReindexJobID string `json:"reindex_job_id,omitempty" yaml:"reindex_job_id,omitempty"`
}

// SearchHybridConfig tunes dense/sparse fusion.
type SearchHybridConfig struct {
	Enabled      *bool   `json:"enabled,omitempty"       yaml:"enabled,omitempty"`
	FusionMode   string  `json:"fusion_mode,omitempty"   yaml:"fusion_mode,omitempty"`
	RRFK         int     `json:"rrf_k,omitempty"         yaml:"rrf_k,omitempty"`
	DenseWeight  float64 `json:"dense_weight,omitempty"  yaml:"dense_weight,omitempty"`
	SparseWeight float64 `json:"sparse_weight,omitempty" yaml:"sparse_weight,omitempty"`
}

// SearchRerankConfig controls reranking applied after initial retrieval.
type SearchRerankConfig struct {
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	TopK    int   `json:"top_k,omitempty"   yaml:"top_k,omitempty"`
}

// SearchGraphRagConfig controls graph-augmented retrieval.
type SearchGraphRagConfig struct {
	Enabled           *bool `json:"enabled,omitempty"             yaml:"enabled,omitempty"`
	SeedChunks        int   `json:"seed_chunks,omitempty"         yaml:"seed_chunks,omitempty"`
	MaxExpandedChunks int   `json:"max_expanded_chunks,omitempty" yaml:"max_expanded_chunks,omitempty"`
	TimeoutMs         int   `json:"timeout_ms,omitempty"          yaml:"timeout_ms,omitempty"`
	ShadowMode        bool  `json:"shadow_mode,omitempty"         yaml:"shadow_mode,omitempty"`
}

// SearchReturnConfig controls which fields the API includes in results.
type SearchReturnConfig struct {
	IncludeText       *bool `json:"include_text,omitempty"       yaml:"include_text,omitempty"`
	IncludeScores     *bool `json:"include_scores,omitempty"     yaml:"include_scores,omitempty"`
	IncludeProvenance *bool `json:"include_provenance,omitempty" yaml:"include_provenance,omitempty"`
}

// SearchGenerationConfig controls answer generation for SearchGenerate.
type SearchGenerationConfig struct {
	Model       string  `json:"model,omitempty"        yaml:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"  yaml:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"   yaml:"max_tokens,omitempty"`
	ContextTopK int     `json:"context_top_k,omitempty" yaml:"context_top_k,omitempty"`
}

// SearchRequest is the payload for a single search call.
type SearchRequest struct {
	Query        string                  `json:"query"                yaml:"query"`
	TopK         int                     `json:"top_k,omitempty"      yaml:"top_k,omitempty"`
	Filters      map[string]interface{}  `json:"filters,omitempty"    yaml:"filters,omitempty"`
	Hybrid       *SearchHybridConfig     `json:"hybrid,omitempty"     yaml:"hybrid,omitempty"`
	GraphRag     *SearchGraphRagConfig   `json:"graph_rag,omitempty"  yaml:"graph_rag,omitempty"`
	Rerank       *SearchRerankConfig     `json:"rerank,omitempty"     yaml:"rerank,omitempty"`
	ReturnConfig *SearchReturnConfig     `json:"return,omitempty"     yaml:"return,omitempty"`
	Generation   *SearchGenerationConfig `json:"generation,omitempty" yaml:"generation,omitempty"`
}

// SearchResult is a single scored chunk.
type SearchResult struct {
	ChunkID        string                 `json:"chunk_id"                  yaml:"chunk_id"`
	Score          *float64               `json:"score,omitempty"           yaml:"score,omitempty"`
	RawScore       *float64               `json:"raw_score,omitempty"       yaml:"raw_score,omitempty"`
	Text           string                 `json:"text,omitempty"            yaml:"text,omitempty"`
	CustomMetadata map[string]interface{} `json:"custom_metadata,omitempty" yaml:"custom_metadata,omitempty"`
	SystemMetadata map[string]interface{} `json:"system_metadata,omitempty" yaml:"system_metadata,omitempty"`
	OffsetStart    *int                   `json:"offset_start,omitempty"    yaml:"offset_start,omitempty"`
	OffsetEnd      *int                   `json:"offset_end,omitempty"      yaml:"offset_end,omitempty"`
	PageStart      *int                   `json:"page_start,omitempty"      yaml:"page_start,omitempty"`
	PageEnd        *int                   `json:"page_end,omitempty"        yaml:"page_end,omitempty"`
}

// SearchResponse carries scored chunks plus retrieval metadata.
type SearchResponse struct {
	Results []SearchResult         `json:"results"        yaml:"results"`
	Meta    map[string]interface{} `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// SearchBatchResponse carries one result set per input query.
type SearchBatchResponse struct {
	Responses []SearchResponse `json:"responses" yaml:"responses"`
}

// SearchGenerateResponse carries a generated answer plus the supporting
// retrieval results.
type SearchGenerateResponse struct {
	Answer      string                 `json:"answer"                 yaml:"answer"`
	Model       string                 `json:"model,omitempty"        yaml:"model,omitempty"`
	Results     []SearchResult         `json:"results,omitempty"      yaml:"results,omitempty"`
	Meta        map[string]interface{} `json:"meta,omitempty"         yaml:"meta,omitempty"`
	UsedSources []string               `json:"used_sources,omitempty" yaml:"used_sources,omitempty"`
}

// EmbeddingsRequest is the payload for embedding generation.
type EmbeddingsRequest struct {
	Model string   `json:"model" yaml:"model"`
	Input []string `json:"input" yaml:"input"`
	Type  string   `json:"type"  yaml:"type"`
}

// EmbeddingsResponse carries one vector per input text.
type EmbeddingsResponse struct {
	Model      string      `json:"model"      yaml:"model"`
	Embeddings [][]float64 `json:"embeddings" yaml:"embeddings"`
}

// FeedbackRequest records relevance feedback for a search query.
type FeedbackRequest struct {
	Query           string   `json:"query"                       yaml:"query"`
	ClickedChunkIDs []string `json:"clicked_chunk_ids,omitempty" yaml:"clicked_chunk_ids,omitempty"`
	Rating          *int     `json:"rating,omitempty"            yaml:"rating,omitempty"`
	Abstained       bool     `json:"abstained"                   yaml:"abstained"`
}

// FeedbackResult confirms recorded feedback.
type FeedbackResult struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Recorded bool   `json:"recorded"     yaml:"recorded"`
}

// Job states reported by the API.
const (
	JobStatusPending   = "pending"
	JobStatusRunning   = "running"
	JobStatusSucceeded = "succeeded"
	JobStatusFailed    = "failed"
	JobStatusCanceled  = "canceled"
)

// Job represents an asynchronous server-side job.
type Job struct {
	ID           string                 `json:"id"                      yaml:"id"`
	JobType      string                 `json:"job_type"                yaml:"job_type"`
	Status       string                 `json:"status"                  yaml:"status"`
	Payload      map[string]interface{} `json:"payload,omitempty"       yaml:"payload,omitempty"`
	Result       map[string]interface{} `json:"result,omitempty"        yaml:"result,omitempty"`
	ErrorMessage string                 `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	CreatedAt    string                 `json:"created_at,omitempty"    yaml:"created_at,omitempty"`
	UpdatedAt    string                 `json:"updated_at,omitempty"    yaml:"updated_at,omitempty"`
	RequeueCount int                    `json:"requeue_count,omitempty" yaml:"requeue_count,omitempty"`
}

// IsTerminal reports whether the job has finished, successfully or not.
func (j *Job) IsTerminal() bool {
	switch j.Status {
	case JobStatusSucceeded, JobStatusFailed, JobStatusCanceled:
		return true
	}

	return false
}

// JobList is the list envelope for jobs.
type JobList struct {
	Jobs  []Job `json:"jobs"            yaml:"jobs"`
	Total *int  `json:"total,omitempty" yaml:"total,omitempty"`
}

// JobStatusResult is the reply to job cancel/retry actions.
type JobStatusResult struct {
	Status string `json:"status" yaml:"status"`
}

// Org represents an organisation.
type Org struct {
	ID           string `json:"id"                      yaml:"id"`
	Name         string `json:"name"                    yaml:"name"`
	ContactEmail string `json:"contact_email,omitempty" yaml:"contact_email,omitempty"`
}

// OrgList is the list envelope for organisations.
type OrgList struct {
	Orgs  []Org `json:"orgs"            yaml:"orgs"`
	Total *int  `json:"total,omitempty" yaml:"total,omitempty"`
}

// Project represents a project within an organisation.
type Project struct {
	ID             string                 `json:"id"                         yaml:"id"`
	Name           string                 `json:"name"                       yaml:"name"`
	OrgID          string                 `json:"org_id"                     yaml:"org_id"`
	GraphRagPolicy map[string]interface{} `json:"graph_rag_policy,omitempty" yaml:"graph_rag_policy,omitempty"`
}

// ProjectList is the list envelope for projects.
type ProjectList struct {
	Projects []Project `json:"projects"        yaml:"projects"`
	Total    *int      `json:"total,omitempty" yaml:"total,omitempty"`
}

// APIKey is the metadata view of an API key. The raw secret appears only in
// APIKeyCreateResult and APIKeyRotateResult.
type APIKey struct {
	ID         string                 `json:"id"                     yaml:"id"`
	OrgID      string                 `json:"org_id"                 yaml:"org_id"`
	Name       string                 `json:"name"                   yaml:"name"`
	Scopes     map[string]interface{} `json:"scopes,omitempty"       yaml:"scopes,omitempty"`
	Revoked    bool                   `json:"revoked"                yaml:"revoked"`
	CreatedAt  string                 `json:"created_at,omitempty"   yaml:"created_at,omitempty"`
	LastUsedAt string                 `json:"last_used_at,omitempty" yaml:"last_used_at,omitempty"`
}

// APIKeyList is the list envelope for API keys.
type APIKeyList struct {
	Keys  []APIKey `json:"keys"            yaml:"keys"`
	Total *int     `json:"total,omitempty" yaml:"total,omitempty"`
}

// APIKeyCreateResult carries a newly created key, including the raw secret
// (shown only once).
type APIKeyCreateResult struct {
	ID     string `json:"id"      yaml:"id"`
	OrgID  string `json:"org_id"  yaml:"org_id"`
	Name   string `json:"name"    yaml:"name"`
	APIKey string `json:"api_key" yaml:"api_key"`
}

// APIKeyRotateResult carries a rotated key with its new raw secret.
type APIKeyRotateResult = APIKeyCreateResult

// APIKeyRevokeResult confirms a revocation.
type APIKeyRevokeResult struct {
	ID      string `json:"id"      yaml:"id"`
	Revoked bool   `json:"revoked" yaml:"revoked"`
}

// WhoAmI describes the authenticated API key.
type WhoAmI struct {
	OrgID    string `json:"org_id"     yaml:"org_id"`
	APIKeyID string `json:"api_key_id" yaml:"api_key_id"`
	Name     string `json:"name"       yaml:"name"`
}

// IndexBuildResult carries the job started by an index rebuild.
type IndexBuildResult struct {
	JobID    string   `json:"job_id"    yaml:"job_id"`
	IndexIDs []string `json:"index_ids" yaml:"index_ids"`
}

// IndexStatus reports per-index build state for a corpus.
type IndexStatus struct {
	DenseStatus  string `json:"dense_status,omitempty"  yaml:"dense_status,omitempty"`
	SparseStatus string `json:"sparse_status,omitempty" yaml:"sparse_status,omitempty"`
	GraphStatus  string `json:"graph_status,omitempty"  yaml:"graph_status,omitempty"`
	DenseReason  string `json:"dense_reason,omitempty"  yaml:"dense_reason,omitempty"`
	SparseReason string `json:"sparse_reason,omitempty" yaml:"sparse_reason,omitempty"`
	GraphReason  string `json:"graph_reason,omitempty"  yaml:"graph_reason,omitempty"`
}

// Model represents a retrieval model attached to a corpus.
type Model struct {
	ID           string `json:"id"                       yaml:"id"`
	CorpusID     string `json:"corpus_id"                yaml:"corpus_id"`
	BaseModel    string `json:"base_model,omitempty"     yaml:"base_model,omitempty"`
	EmbeddingDim int    `json:"embedding_dim,omitempty"  yaml:"embedding_dim,omitempty"`
	MaxSeqLength int    `json:"max_seq_length,omitempty" yaml:"max_seq_length,omitempty"`
	Version      int    `json:"version,omitempty"        yaml:"version,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"     yaml:"created_at,omitempty"`
}

// ModelList is the list envelope for models.
type ModelList struct {
	Models []Model `json:"models"          yaml:"models"`
	Total  *int    `json:"total,omitempty" yaml:"total,omitempty"`
}

// ModelDeleteResult confirms a model deletion.
type ModelDeleteResult struct {
	Message string `json:"message" yaml:"message"`
}

// Deployment routes a share of a corpus's retrieval traffic through a tuned
// model.
type Deployment struct {
	ID           string `json:"id"                       yaml:"id"`
	CorpusID     string `json:"corpus_id"                yaml:"corpus_id"`
	ModelID      string `json:"model_id"                 yaml:"model_id"`
	TrafficPct   int    `json:"traffic_pct"              yaml:"traffic_pct"`
	ReindexJobID string `json:"reindex_job_id,omitempty" yaml:"reindex_job_id,omitempty"`
}

// DeploymentCreateRequest is the payload for deploying a model to a corpus.
type DeploymentCreateRequest struct {
	ModelID string `json:"model_id" yaml:"model_id"`

	// TrafficPct is the percentage of retrieval traffic routed through the
	// deployment (0-100). Zero selects the default of 100.
	TrafficPct int `json:"traffic_pct" yaml:"traffic_pct"`

	// Reindex triggers a re-index after deployment. Nil selects the default
	// of true.
	Reindex *bool `json:"reindex" yaml:"reindex"`
}

// DeploymentList is the list envelope for deployments.
type DeploymentList struct {
	Items []Deployment `json:"items"           yaml:"items"`
	Total *int         `json:"total,omitempty" yaml:"total,omitempty"`
}

// TrainingDataBuildResult carries the job started by a training data build.
type TrainingDataBuildResult struct {
	JobID     string `json:"job_id"     yaml:"job_id"`
	DatasetID string `json:"dataset_id" yaml:"dataset_id"`
}

// TrainingDataset is a set of query-document pairs generated from a corpus.
type TrainingDataset struct {
	ID          string `json:"id"                     yaml:"id"`
	CorpusID    string `json:"corpus_id"              yaml:"corpus_id"`
	SampleCount int    `json:"sample_count,omitempty" yaml:"sample_count,omitempty"`
	DatasetHash string `json:"dataset_hash,omitempty" yaml:"dataset_hash,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"   yaml:"created_at,omitempty"`
}

// TrainingDatasetList is the list envelope for training datasets.
type TrainingDatasetList struct {
	Datasets []TrainingDataset `json:"datasets"        yaml:"datasets"`
	Total    *int              `json:"total,omitempty" yaml:"total,omitempty"`
}

// TuningRun describes one model tuning run, including metrics once the run
// has finished.
type TuningRun struct {
	RunID   string                 `json:"run_id"            yaml:"run_id"`
	Status  string                 `json:"status"            yaml:"status"`
	Metrics map[string]interface{} `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// TuningRunList is the list envelope for tuning runs.
type TuningRunList struct {
	Runs  []TuningRun `json:"runs"            yaml:"runs"`
	Total *int        `json:"total,omitempty" yaml:"total,omitempty"`
}

// TuningRunCreateResult carries the run and job started by a tuning run.
type TuningRunCreateResult struct {
	RunID  string `json:"run_id" yaml:"run_id"`
	Status string `json:"status" yaml:"status"`
	JobID  string `json:"job_id" yaml:"job_id"`
}

// TuningRunBuildResult carries the run started by a combined build-and-tune
// call, including the training data build job.
type TuningRunBuildResult struct {
	RunID      string `json:"run_id"       yaml:"run_id"`
	Status     string `json:"status"       yaml:"status"`
	BuildJobID string `json:"build_job_id" yaml:"build_job_id"`
	DatasetID  string `json:"dataset_id"   yaml:"dataset_id"`
}

// TuningRunLogs is the tail of a tuning run's log output.
type TuningRunLogs struct {
	Lines []string `json:"lines" yaml:"lines"`
}

// TuningRunCancelResult confirms a tuning run cancellation.
type TuningRunCancelResult struct {
	Status string `json:"status" yaml:"status"`
}

// TuningRunPromoteResult carries the model created by promoting a completed
// tuning run.
type TuningRunPromoteResult struct {
	ModelID string `json:"model_id" yaml:"model_id"`
}

// EvalRun describes one evaluation run over a tuned model.
type EvalRun struct {
	EvalID  string                 `json:"eval_id"           yaml:"eval_id"`
	Status  string                 `json:"status"            yaml:"status"`
	Metrics map[string]interface{} `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// MetadataField is one discovered metadata key with its inferred type and
// distribution statistics.
type MetadataField struct {
	Key    string                 `json:"key"              yaml:"key"`
	Type   string                 `json:"type"             yaml:"type"`
	Count  int                    `json:"count"            yaml:"count"`
	Values []interface{}          `json:"values,omitempty" yaml:"values,omitempty"`
	Stats  map[string]interface{} `json:"stats,omitempty"  yaml:"stats,omitempty"`
}

// MetadataDiscovery reports the distinct metadata fields present in a
// corpus.
type MetadataDiscovery struct {
	CorpusID string          `json:"corpus_id,omitempty" yaml:"corpus_id,omitempty"`
	Fields   []MetadataField `json:"fields"              yaml:"fields"`
}

// AuditLogEntry is one recorded action against an organisation's resources.
type AuditLogEntry struct {
	ID         string                 `json:"id"                   yaml:"id"`
	Action     string                 `json:"action"               yaml:"action"`
	EntityType string                 `json:"entity_type"          yaml:"entity_type"`
	EntityID   string                 `json:"entity_id,omitempty"  yaml:"entity_id,omitempty"`
	OrgID      string                 `json:"org_id"               yaml:"org_id"`
	ProjectID  string                 `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	CorpusID   string                 `json:"corpus_id,omitempty"  yaml:"corpus_id,omitempty"`
	APIKeyID   string                 `json:"api_key_id,omitempty" yaml:"api_key_id,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"    yaml:"payload,omitempty"`
	CreatedAt  string                 `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// AuditLogList is the list envelope for audit log entries.
type AuditLogList struct {
	Logs  []AuditLogEntry `json:"logs"            yaml:"logs"`
	Total *int            `json:"total,omitempty" yaml:"total,omitempty"`
}

// UsageByCorpusEntry is the request count attributed to one corpus.
type UsageByCorpusEntry struct {
	CorpusID   string `json:"corpus_id"             yaml:"corpus_id"`
	CorpusName string `json:"corpus_name,omitempty" yaml:"corpus_name,omitempty"`
	Count      int    `json:"count"                 yaml:"count"`
}

// UsageByCorpus is the list envelope for per-corpus usage.
type UsageByCorpus struct {
	Range   string               `json:"range"   yaml:"range"`
	Corpora []UsageByCorpusEntry `json:"corpora" yaml:"corpora"`
}

// UsageByKeyEntry is the request count attributed to one API key.
type UsageByKeyEntry struct {
	APIKeyID string `json:"api_key_id"          yaml:"api_key_id"`
	KeyName  string `json:"key_name,omitempty"  yaml:"key_name,omitempty"`
	Count    int    `json:"count"               yaml:"count"`
}

// UsageByKey is the list envelope for per-key usage.
type UsageByKey struct {
	Range string            `json:"range" yaml:"range"`
	Keys  []UsageByKeyEntry `json:"keys"  yaml:"keys"`
}

// UsageSeriesPoint is one day of request counts.
type UsageSeriesPoint struct {
	Date  string `json:"date"  yaml:"date"`
	Count int    `json:"count" yaml:"count"`
}

// UsageSummary aggregates request volume and latency over a range.
type UsageSummary struct {
	Range         string             `json:"range"                    yaml:"range"`
	TotalRequests int                `json:"total_requests"           yaml:"total_requests"`
	Daily         []UsageSeriesPoint `json:"daily,omitempty"          yaml:"daily,omitempty"`
	LatencyP50Ms  *float64           `json:"latency_p50_ms,omitempty" yaml:"latency_p50_ms,omitempty"`
	LatencyP95Ms  *float64           `json:"latency_p95_ms,omitempty" yaml:"latency_p95_ms,omitempty"`
	ErrorRate     *float64           `json:"error_rate,omitempty"     yaml:"error_rate,omitempty"`
}
