package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/knowledge2-io/knowledge2-go/internal/http"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// IndexesClient implements k2.IndexesClient.
type IndexesClient struct {
	httpClient *http.Client
}

// NewIndexesClient creates a new indexes client.
func NewIndexesClient(httpClient *http.Client) *IndexesClient {
	return &IndexesClient{httpClient: httpClient}
}

// Rebuild implements k2.IndexesClient.Rebuild. The rebuild runs as a job.
func (c *IndexesClient) Rebuild(ctx context.Context, corpusID string) (*k2.IndexBuildResult, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/corpora/"+corpusID+"/indexes/rebuild", nil)
	if err != nil {
		return nil, fmt.Errorf("rebuilding indexes: %w", err)
	}

	var result k2.IndexBuildResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing rebuild result: %w", err)
	}

	return &result, nil
}

// GetStatus implements k2.IndexesClient.GetStatus.
func (c *IndexesClient) GetStatus(ctx context.Context, corpusID string) (*k2.IndexStatus, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/corpora/"+corpusID+"/indexes/status", nil)
	if err != nil {
		return nil, fmt.Errorf("getting index status: %w", err)
	}

	var status k2.IndexStatus

	err = json.Unmarshal(resp.Body, &status)
	if err != nil {
		return nil, fmt.Errorf("parsing index status: %w", err)
	}

	return &status, nil
}
