package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/knowledge2-io/knowledge2-go/internal/http"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// OrgsClient implements k2.OrgsClient.
type OrgsClient struct {
	httpClient *http.Client
}

// NewOrgsClient creates a new organisations client.
func NewOrgsClient(httpClient *http.Client) *OrgsClient {
	return &OrgsClient{httpClient: httpClient}
}

// Create implements k2.OrgsClient.Create.
func (c *OrgsClient) Create(ctx context.Context, name, contactEmail string) (*k2.Org, error) {
	body := map[string]interface{}{"name": name}
	if contactEmail != "" {
		body["contact_email"] = contactEmail
	}

	resp, err := c.httpClient.Post(ctx, "/v1/orgs", body)
	if err != nil {
		return nil, fmt.Errorf("creating org: %w", err)
	}

	var org k2.Org

	err = json.Unmarshal(resp.Body, &org)
	if err != nil {
		return nil, fmt.Errorf("parsing org: %w", err)
	}

	return &org, nil
}

// Get implements k2.OrgsClient.Get.
func (c *OrgsClient) Get(ctx context.Context, orgID string) (*k2.Org, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/orgs/"+orgID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting org: %w", err)
	}

	var org k2.Org

	err = json.Unmarshal(resp.Body, &org)
	if err != nil {
		return nil, fmt.Errorf("parsing org: %w", err)
	}

	return &org, nil
}

// List implements k2.OrgsClient.List.
func (c *OrgsClient) List(ctx context.Context, params *k2.ListParams) (*k2.OrgList, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/orgs", params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing orgs: %w", err)
	}

	var list k2.OrgList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing org list: %w", err)
	}

	return &list, nil
}
