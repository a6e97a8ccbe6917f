package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/knowledge2-io/knowledge2-go/internal/http"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// TrainingClient implements k2.TrainingClient.
type TrainingClient struct {
	httpClient *http.Client
	jobs       k2.JobsClient
}

// NewTrainingClient creates a new training client. jobs is used to wait for
// training data build jobs.
func NewTrainingClient(httpClient *http.Client, jobs k2.JobsClient) *TrainingClient {
	return &TrainingClient{httpClient: httpClient, jobs: jobs}
}

// idempotencyHeaders builds the Idempotency-Key header when a key is set.
func idempotencyHeaders(key string) map[string]string {
	if key == "" {
		return nil
	}

	return map[string]string{"Idempotency-Key": key}
}

// BuildTrainingData implements k2.TrainingClient.BuildTrainingData.
func (c *TrainingClient) BuildTrainingData(ctx context.Context, corpusID, idempotencyKey string) (*k2.TrainingDataBuildResult, error) {
	resp, err := c.httpClient.PostWithHeaders(ctx,
		"/v1/corpora/"+corpusID+"/training-data:build", struct{}{}, idempotencyHeaders(idempotencyKey))
	if err != nil {
		return nil, fmt.Errorf("building training data: %w", err)
	}

	var result k2.TrainingDataBuildResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing training data build: %w", err)
	}

	return &result, nil
}

// ListTrainingData implements k2.TrainingClient.ListTrainingData.
func (c *TrainingClient) ListTrainingData(ctx context.Context, corpusID string, params *k2.ListParams) (*k2.TrainingDatasetList, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/corpora/"+corpusID+"/training-data", params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing training data: %w", err)
	}

	var list k2.TrainingDatasetList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing training dataset list: %w", err)
	}

	return &list, nil
}

// IterateTrainingData implements k2.TrainingClient.IterateTrainingData.
func (c *TrainingClient) IterateTrainingData(ctx context.Context, corpusID string, pageSize int) *k2.PaginationIterator[k2.TrainingDataset] {
	fetch := func(ctx context.Context, limit, offset int) ([]k2.TrainingDataset, *int, error) {
		list, err := c.ListTrainingData(ctx, corpusID, k2.NewListParams().WithLimit(limit).WithOffset(offset))
		if err != nil {
			return nil, nil, err
		}

		return list.Datasets, list.Total, nil
	}

	return k2.NewPaginationIterator(ctx, fetch, pageSize)
}

// tuningRunCreateBody is the wire payload for a tuning run. use_ftk selects
// the FTK trainer and is omitted when false.
type tuningRunCreateBody struct {
	UseFTK bool `json:"use_ftk,omitempty"`
}

// CreateTuningRun implements k2.TrainingClient.CreateTuningRun.
func (c *TrainingClient) CreateTuningRun(ctx context.Context, corpusID, idempotencyKey string, useFTK bool) (*k2.TuningRunCreateResult, error) {
	resp, err := c.httpClient.PostWithHeaders(ctx,
		"/v1/corpora/"+corpusID+"/tuning-runs", tuningRunCreateBody{UseFTK: useFTK}, idempotencyHeaders(idempotencyKey))
	if err != nil {
		return nil, fmt.Errorf("creating tuning run: %w", err)
	}

	var result k2.TuningRunCreateResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing tuning run: %w", err)
	}

	return &result, nil
}

// BuildAndStartTuningRun implements k2.TrainingClient.BuildAndStartTuningRun.
func (c *TrainingClient) BuildAndStartTuningRun(ctx context.Context, corpusID, idempotencyKey string, wait bool) (*k2.TuningRunBuildResult, error) {
	resp, err := c.httpClient.PostWithHeaders(ctx,
		"/v1/corpora/"+corpusID+"/tuning-runs:build", struct{}{}, idempotencyHeaders(idempotencyKey))
	if err != nil {
		return nil, fmt.Errorf("starting tuning run build: %w", err)
	}

	var result k2.TuningRunBuildResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing tuning run build: %w", err)
	}

	if wait && result.BuildJobID != "" {
		if _, err := c.jobs.PollUntilComplete(ctx, result.BuildJobID); err != nil {
			return &result, fmt.Errorf("waiting for training data build: %w", err)
		}
	}

	return &result, nil
}

// ListTuningRuns implements k2.TrainingClient.ListTuningRuns.
func (c *TrainingClient) ListTuningRuns(ctx context.Context, corpusID string, params *k2.ListParams) (*k2.TuningRunList, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/corpora/"+corpusID+"/tuning-runs", params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing tuning runs: %w", err)
	}

	var list k2.TuningRunList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing tuning run list: %w", err)
	}

	return &list, nil
}

// IterateTuningRuns implements k2.TrainingClient.IterateTuningRuns.
func (c *TrainingClient) IterateTuningRuns(ctx context.Context, corpusID string, pageSize int) *k2.PaginationIterator[k2.TuningRun] {
	fetch := func(ctx context.Context, limit, offset int) ([]k2.TuningRun, *int, error) {
		list, err := c.ListTuningRuns(ctx, corpusID, k2.NewListParams().WithLimit(limit).WithOffset(offset))
		if err != nil {
			return nil, nil, err
		}

		return list.Runs, list.Total, nil
	}

	return k2.NewPaginationIterator(ctx, fetch, pageSize)
}

// GetTuningRun implements k2.TrainingClient.GetTuningRun.
func (c *TrainingClient) GetTuningRun(ctx context.Context, runID string) (*k2.TuningRun, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/tuning-runs/"+runID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting tuning run: %w", err)
	}

	var run k2.TuningRun

	err = json.Unmarshal(resp.Body, &run)
	if err != nil {
		return nil, fmt.Errorf("parsing tuning run: %w", err)
	}

	return &run, nil
}

// GetTuningRunLogs implements k2.TrainingClient.GetTuningRunLogs.
func (c *TrainingClient) GetTuningRunLogs(ctx context.Context, runID string, tail int) (*k2.TuningRunLogs, error) {
	var query url.Values
	if tail > 0 {
		query = url.Values{"tail": []string{strconv.Itoa(tail)}}
	}

	resp, err := c.httpClient.Get(ctx, "/v1/tuning-runs/"+runID+"/logs", query)
	if err != nil {
		return nil, fmt.Errorf("getting tuning run logs: %w", err)
	}

	var logs k2.TuningRunLogs

	err = json.Unmarshal(resp.Body, &logs)
	if err != nil {
		return nil, fmt.Errorf("parsing tuning run logs: %w", err)
	}

	return &logs, nil
}

// CancelTuningRun implements k2.TrainingClient.CancelTuningRun.
func (c *TrainingClient) CancelTuningRun(ctx context.Context, runID string) (*k2.TuningRunCancelResult, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/tuning-runs/"+runID+":cancel", nil)
	if err != nil {
		return nil, fmt.Errorf("canceling tuning run: %w", err)
	}

	var result k2.TuningRunCancelResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing cancel result: %w", err)
	}

	return &result, nil
}

// PromoteTuningRun implements k2.TrainingClient.PromoteTuningRun.
func (c *TrainingClient) PromoteTuningRun(ctx context.Context, runID string) (*k2.TuningRunPromoteResult, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/tuning-runs/"+runID+":promote", nil)
	if err != nil {
		return nil, fmt.Errorf("promoting tuning run: %w", err)
	}

	var result k2.TuningRunPromoteResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing promote result: %w", err)
	}

	return &result, nil
}

// GetEvalRun implements k2.TrainingClient.GetEvalRun.
func (c *TrainingClient) GetEvalRun(ctx context.Context, evalID string) (*k2.EvalRun, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/eval-runs/"+evalID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting eval run: %w", err)
	}

	var run k2.EvalRun

	err = json.Unmarshal(resp.Body, &run)
	if err != nil {
		return nil, fmt.Errorf("parsing eval run: %w", err)
	}

	return &run, nil
}
