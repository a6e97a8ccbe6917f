package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/knowledge2-io/knowledge2-go/internal/http"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// UsageClient implements k2.UsageClient.
type UsageClient struct {
	httpClient *http.Client
}

// NewUsageClient creates a new usage client.
func NewUsageClient(httpClient *http.Client) *UsageClient {
	return &UsageClient{httpClient: httpClient}
}

// rangeQuery builds the query for a usage range such as "7d" or "30d".
func rangeQuery(rangeValue string) url.Values {
	if rangeValue == "" {
		return nil
	}

	return url.Values{"range": []string{rangeValue}}
}

// GetSummary implements k2.UsageClient.GetSummary.
func (c *UsageClient) GetSummary(ctx context.Context, rangeValue, corpusID string) (*k2.UsageSummary, error) {
	query := rangeQuery(rangeValue)

	if corpusID != "" {
		if query == nil {
			query = url.Values{}
		}

		query.Set("corpus_id", corpusID)
	}

	resp, err := c.httpClient.Get(ctx, "/v1/usage/summary", query)
	if err != nil {
		return nil, fmt.Errorf("getting usage summary: %w", err)
	}

	var summary k2.UsageSummary

	err = json.Unmarshal(resp.Body, &summary)
	if err != nil {
		return nil, fmt.Errorf("parsing usage summary: %w", err)
	}

	return &summary, nil
}

// GetByCorpus implements k2.UsageClient.GetByCorpus.
func (c *UsageClient) GetByCorpus(ctx context.Context, rangeValue string) (*k2.UsageByCorpus, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/usage/by_corpus", rangeQuery(rangeValue))
	if err != nil {
		return nil, fmt.Errorf("getting usage by corpus: %w", err)
	}

	var usage k2.UsageByCorpus

	err = json.Unmarshal(resp.Body, &usage)
	if err != nil {
		return nil, fmt.Errorf("parsing usage by corpus: %w", err)
	}

	return &usage, nil
}

// GetByKey implements k2.UsageClient.GetByKey.
func (c *UsageClient) GetByKey(ctx context.Context, rangeValue string) (*k2.UsageByKey, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/usage/by_key", rangeQuery(rangeValue))
	if err != nil {
		return nil, fmt.Errorf("getting usage by key: %w", err)
	}

	var usage k2.UsageByKey

	err = json.Unmarshal(resp.Body, &usage)
	if err != nil {
		return nil, fmt.Errorf("parsing usage by key: %w", err)
	}

	return &usage, nil
}
