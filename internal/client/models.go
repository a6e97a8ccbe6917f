package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/knowledge2-io/knowledge2-go/internal/http"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// ModelsClient implements k2.ModelsClient.
type ModelsClient struct {
	httpClient *http.Client
}

// NewModelsClient creates a new models client.
func NewModelsClient(httpClient *http.Client) *ModelsClient {
	return &ModelsClient{httpClient: httpClient}
}

// List implements k2.ModelsClient.List.
func (c *ModelsClient) List(ctx context.Context, params *k2.ListParams) (*k2.ModelList, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/models", params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}

	var list k2.ModelList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing model list: %w", err)
	}

	return &list, nil
}

// Get implements k2.ModelsClient.Get.
func (c *ModelsClient) Get(ctx context.Context, modelID string) (*k2.Model, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/models/"+modelID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting model: %w", err)
	}

	var model k2.Model

	err = json.Unmarshal(resp.Body, &model)
	if err != nil {
		return nil, fmt.Errorf("parsing model: %w", err)
	}

	return &model, nil
}

// Iterate implements k2.ModelsClient.Iterate.
func (c *ModelsClient) Iterate(ctx context.Context, pageSize int) *k2.PaginationIterator[k2.Model] {
	fetch := func(ctx context.Context, limit, offset int) ([]k2.Model, *int, error) {
		list, err := c.List(ctx, k2.NewListParams().WithLimit(limit).WithOffset(offset))
		if err != nil {
			return nil, nil, err
		}

		return list.Models, list.Total, nil
	}

	return k2.NewPaginationIterator(ctx, fetch, pageSize)
}

// Delete implements k2.ModelsClient.Delete.
func (c *ModelsClient) Delete(ctx context.Context, modelID string, force bool) (*k2.ModelDeleteResult, error) {
	var query url.Values
	if force {
		query = url.Values{"force": []string{"true"}}
	}

	resp, err := c.httpClient.DeleteWithQuery(ctx, "/v1/models/"+modelID, query)
	if err != nil {
		return nil, fmt.Errorf("deleting model: %w", err)
	}

	var result k2.ModelDeleteResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing delete result: %w", err)
	}

	return &result, nil
}
