package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/knowledge2-io/knowledge2-go/internal/http"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// CorporaClient implements k2.CorporaClient.
type CorporaClient struct {
	httpClient *http.Client
}

// NewCorporaClient creates a new corpora client.
func NewCorporaClient(httpClient *http.Client) *CorporaClient {
	return &CorporaClient{httpClient: httpClient}
}

// Create implements k2.CorporaClient.Create.
func (c *CorporaClient) Create(ctx context.Context, request *k2.CorpusCreateRequest) (*k2.Corpus, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/corpora", request)
	if err != nil {
		return nil, fmt.Errorf("creating corpus: %w", err)
	}

	var corpus k2.Corpus

	err = json.Unmarshal(resp.Body, &corpus)
	if err != nil {
		return nil, fmt.Errorf("parsing corpus: %w", err)
	}

	return &corpus, nil
}

// Get implements k2.CorporaClient.Get.
func (c *CorporaClient) Get(ctx context.Context, corpusID string) (*k2.Corpus, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/corpora/"+corpusID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting corpus: %w", err)
	}

	var corpus k2.Corpus

	err = json.Unmarshal(resp.Body, &corpus)
	if err != nil {
		return nil, fmt.Errorf("parsing corpus: %w", err)
	}

	return &corpus, nil
}

// GetStatus implements k2.CorporaClient.GetStatus.
func (c *CorporaClient) GetStatus(ctx context.Context, corpusID string) (*k2.CorpusStatus, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/corpora/"+corpusID+"/status", nil)
	if err != nil {
		return nil, fmt.Errorf("getting corpus status: %w", err)
	}

	var status k2.CorpusStatus

	err = json.Unmarshal(resp.Body, &status)
	if err != nil {
		return nil, fmt.Errorf("parsing corpus status: %w", err)
	}

	return &status, nil
}

// List implements k2.CorporaClient.List.
func (c *CorporaClient) List(ctx context.Context, params *k2.ListParams) (*k2.CorpusList, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/corpora", params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing corpora: %w", err)
	}

	var list k2.CorpusList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing corpus list: %w", err)
	}

	return &list, nil
}

// Iterate implements k2.CorporaClient.Iterate.
func (c *CorporaClient) Iterate(ctx context.Context, pageSize int) *k2.PaginationIterator[k2.Corpus] {
	fetch := func(ctx context.Context, limit, offset int) ([]k2.Corpus, *int, error) {
		list, err := c.List(ctx, k2.NewListParams().WithLimit(limit).WithOffset(offset))
		if err != nil {
			return nil, nil, err
		}

		return list.Corpora, list.Total, nil
	}

	return k2.NewPaginationIterator(ctx, fetch, pageSize)
}

// Update implements k2.CorporaClient.Update.
func (c *CorporaClient) Update(ctx context.Context, corpusID string, request *k2.CorpusUpdateRequest) (*k2.Corpus, error) {
	resp, err := c.httpClient.Patch(ctx, "/v1/corpora/"+corpusID, request)
	if err != nil {
		return nil, fmt.Errorf("updating corpus: %w", err)
	}

	var corpus k2.Corpus

	err = json.Unmarshal(resp.Body, &corpus)
	if err != nil {
		return nil, fmt.Errorf("parsing corpus: %w", err)
	}

	return &corpus, nil
}

// Delete implements k2.CorporaClient.Delete.
func (c *CorporaClient) Delete(ctx context.Context, corpusID string, force bool) (*k2.CorpusDeleteResult, error) {
	var query url.Values
	if force {
		query = url.Values{"force": []string{"true"}}
	}

	resp, err := c.httpClient.DeleteWithQuery(ctx, "/v1/corpora/"+corpusID, query)
	if err != nil {
		return nil, fmt.Errorf("deleting corpus: %w", err)
	}

	var result k2.CorpusDeleteResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing delete result: %w", err)
	}

	return &result, nil
}

// ListModels implements k2.CorporaClient.ListModels.
func (c *CorporaClient) ListModels(ctx context.Context, corpusID string, params *k2.ListParams) (*k2.ModelList, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/corpora/"+corpusID+"/models", params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing corpus models: %w", err)
	}

	var list k2.ModelList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing model list: %w", err)
	}

	return &list, nil
}

// IterateModels implements k2.CorporaClient.IterateModels.
func (c *CorporaClient) IterateModels(ctx context.Context, corpusID string, pageSize int) *k2.PaginationIterator[k2.Model] {
	fetch := func(ctx context.Context, limit, offset int) ([]k2.Model, *int, error) {
		list, err := c.ListModels(ctx, corpusID, k2.NewListParams().WithLimit(limit).WithOffset(offset))
		if err != nil {
			return nil, nil, err
		}

		return list.Models, list.Total, nil
	}

	return k2.NewPaginationIterator(ctx, fetch, pageSize)
}
