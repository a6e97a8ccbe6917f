package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/knowledge2-io/knowledge2-go/internal/constants"
	"github.com/knowledge2-io/knowledge2-go/internal/http"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// Static errors for err113 compliance.
var (
	ErrJobFailed   = errors.New("job failed")
	ErrJobCanceled = errors.New("job canceled")
)

// JobsClient implements k2.JobsClient.
type JobsClient struct {
	httpClient   *http.Client
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewJobsClient creates a new jobs client.
func NewJobsClient(httpClient *http.Client) *JobsClient {
	return &JobsClient{
		httpClient:   httpClient,
		pollInterval: constants.DefaultJobPollInterval,
		pollTimeout:  constants.DefaultJobPollTimeout,
	}
}

// Get implements k2.JobsClient.Get.
func (c *JobsClient) Get(ctx context.Context, jobID string) (*k2.Job, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/jobs/"+jobID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting job: %w", err)
	}

	var job k2.Job

	err = json.Unmarshal(resp.Body, &job)
	if err != nil {
		return nil, fmt.Errorf("parsing job: %w", err)
	}

	return &job, nil
}

// List implements k2.JobsClient.List. Filters such as corpus_id, job_type,
// and status go in params.
func (c *JobsClient) List(ctx context.Context, params *k2.ListParams) (*k2.JobList, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/jobs", params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}

	var list k2.JobList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing job list: %w", err)
	}

	return &list, nil
}

// Iterate implements k2.JobsClient.Iterate.
func (c *JobsClient) Iterate(ctx context.Context, params *k2.ListParams, pageSize int) *k2.PaginationIterator[k2.Job] {
	fetch := func(ctx context.Context, limit, offset int) ([]k2.Job, *int, error) {
		pageParams := k2.NewListParams().WithLimit(limit).WithOffset(offset)
		if params != nil {
			for key, value := range params.Filters {
				pageParams.WithFilter(key, value)
			}
		}

		list, err := c.List(ctx, pageParams)
		if err != nil {
			return nil, nil, err
		}

		return list.Jobs, list.Total, nil
	}

	return k2.NewPaginationIterator(ctx, fetch, pageSize)
}

// Cancel implements k2.JobsClient.Cancel.
func (c *JobsClient) Cancel(ctx context.Context, jobID string) (*k2.JobStatusResult, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/jobs/"+jobID+":cancel", nil)
	if err != nil {
		return nil, fmt.Errorf("canceling job: %w", err)
	}

	var result k2.JobStatusResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing cancel result: %w", err)
	}

	return &result, nil
}

// Retry implements k2.JobsClient.Retry.
func (c *JobsClient) Retry(ctx context.Context, jobID string) (*k2.JobStatusResult, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/jobs/"+jobID+":retry", nil)
	if err != nil {
		return nil, fmt.Errorf("retrying job: %w", err)
	}

	var result k2.JobStatusResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing retry result: %w", err)
	}

	return &result, nil
}

// PollUntilComplete implements k2.JobsClient.PollUntilComplete. It polls the
// job until it reaches a terminal state (succeeded, failed, or canceled).
func (c *JobsClient) PollUntilComplete(ctx context.Context, jobID string) (*k2.Job, error) {
	pollCtx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	// First check immediately
	job, err := c.Get(pollCtx, jobID)
	if err != nil {
		return nil, fmt.Errorf("getting job status: %w", err)
	}

	if job.IsTerminal() {
		return job, terminalJobError(job)
	}

	for {
		select {
		case <-pollCtx.Done():
			// Return the last known state on timeout
			return job, fmt.Errorf("timeout waiting for job to complete: %w", pollCtx.Err())
		case <-ticker.C:
			job, err = c.Get(pollCtx, jobID)
			if err != nil {
				return nil, fmt.Errorf("getting job status: %w", err)
			}

			if job.IsTerminal() {
				return job, terminalJobError(job)
			}
		}
	}
}

// terminalJobError maps a terminal job state to its error, nil for success.
func terminalJobError(job *k2.Job) error {
	switch job.Status {
	case k2.JobStatusFailed:
		message := job.ErrorMessage
		if message == "" {
			message = "no error details available"
		}

		return fmt.Errorf("%w: %s", ErrJobFailed, message)
	case k2.JobStatusCanceled:
		return fmt.Errorf("%w: %s", ErrJobCanceled, job.ID)
	default:
		return nil
	}
}
