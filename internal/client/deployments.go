package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/knowledge2-io/knowledge2-go/internal/http"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// DeploymentsClient implements k2.DeploymentsClient.
type DeploymentsClient struct {
	httpClient *http.Client
}

// NewDeploymentsClient creates a new deployments client.
func NewDeploymentsClient(httpClient *http.Client) *DeploymentsClient {
	return &DeploymentsClient{httpClient: httpClient}
}

// deploymentCreateBody is the wire payload for a deployment. Defaults are
// resolved before marshaling so the server always receives explicit values.
type deploymentCreateBody struct {
	ModelID    string `json:"model_id"`
	TrafficPct int    `json:"traffic_pct"`
	Reindex    bool   `json:"reindex"`
}

// Create implements k2.DeploymentsClient.Create.
func (c *DeploymentsClient) Create(ctx context.Context, corpusID string, request *k2.DeploymentCreateRequest) (*k2.Deployment, error) {
	body := deploymentCreateBody{
		ModelID:    request.ModelID,
		TrafficPct: request.TrafficPct,
		Reindex:    true,
	}

	if body.TrafficPct == 0 {
		body.TrafficPct = 100
	}

	if request.Reindex != nil {
		body.Reindex = *request.Reindex
	}

	resp, err := c.httpClient.Post(ctx, "/v1/corpora/"+corpusID+"/deployments", body)
	if err != nil {
		return nil, fmt.Errorf("creating deployment: %w", err)
	}

	var deployment k2.Deployment

	err = json.Unmarshal(resp.Body, &deployment)
	if err != nil {
		return nil, fmt.Errorf("parsing deployment: %w", err)
	}

	return &deployment, nil
}

// List implements k2.DeploymentsClient.List.
func (c *DeploymentsClient) List(ctx context.Context, corpusID string, params *k2.ListParams) (*k2.DeploymentList, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/corpora/"+corpusID+"/deployments", params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing deployments: %w", err)
	}

	var list k2.DeploymentList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing deployment list: %w", err)
	}

	return &list, nil
}

// Iterate implements k2.DeploymentsClient.Iterate.
func (c *DeploymentsClient) Iterate(ctx context.Context, corpusID string, pageSize int) *k2.PaginationIterator[k2.Deployment] {
	fetch := func(ctx context.Context, limit, offset int) ([]k2.Deployment, *int, error) {
		list, err := c.List(ctx, corpusID, k2.NewListParams().WithLimit(limit).WithOffset(offset))
		if err != nil {
			return nil, nil, err
		}

		return list.Items, list.Total, nil
	}

	return k2.NewPaginationIterator(ctx, fetch, pageSize)
}
