package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/knowledge2-io/knowledge2-go/internal/http"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// ProjectsClient implements k2.ProjectsClient.
type ProjectsClient struct {
	httpClient *http.Client
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client) *ProjectsClient {
	return &ProjectsClient{httpClient: httpClient}
}

// Create implements k2.ProjectsClient.Create.
func (c *ProjectsClient) Create(ctx context.Context, orgID, name string) (*k2.Project, error) {
	body := map[string]interface{}{
		"org_id": orgID,
		"name":   name,
	}

	resp, err := c.httpClient.Post(ctx, "/v1/projects", body)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	var project k2.Project

	err = json.Unmarshal(resp.Body, &project)
	if err != nil {
		return nil, fmt.Errorf("parsing project: %w", err)
	}

	return &project, nil
}

// Get implements k2.ProjectsClient.Get.
func (c *ProjectsClient) Get(ctx context.Context, projectID string) (*k2.Project, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/projects/"+projectID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	var project k2.Project

	err = json.Unmarshal(resp.Body, &project)
	if err != nil {
		return nil, fmt.Errorf("parsing project: %w", err)
	}

	return &project, nil
}

// List implements k2.ProjectsClient.List.
func (c *ProjectsClient) List(ctx context.Context, params *k2.ListParams) (*k2.ProjectList, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/projects", params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	var list k2.ProjectList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing project list: %w", err)
	}

	return &list, nil
}

// Iterate implements k2.ProjectsClient.Iterate.
func (c *ProjectsClient) Iterate(ctx context.Context, pageSize int) *k2.PaginationIterator[k2.Project] {
	fetch := func(ctx context.Context, limit, offset int) ([]k2.Project, *int, error) {
		list, err := c.List(ctx, k2.NewListParams().WithLimit(limit).WithOffset(offset))
		if err != nil {
			return nil, nil, err
		}

		return list.Projects, list.Total, nil
	}

	return k2.NewPaginationIterator(ctx, fetch, pageSize)
}
