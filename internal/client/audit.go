package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/knowledge2-io/knowledge2-go/internal/http"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// AuditClient implements k2.AuditClient.
type AuditClient struct {
	httpClient *http.Client
}

// NewAuditClient creates a new audit client.
func NewAuditClient(httpClient *http.Client) *AuditClient {
	return &AuditClient{httpClient: httpClient}
}

// List implements k2.AuditClient.List.
func (c *AuditClient) List(ctx context.Context, params *k2.ListParams) (*k2.AuditLogList, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/audit-logs", params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing audit logs: %w", err)
	}

	var list k2.AuditLogList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing audit log list: %w", err)
	}

	return &list, nil
}

// Iterate implements k2.AuditClient.Iterate. Filters on params are carried
// into every page fetch.
func (c *AuditClient) Iterate(ctx context.Context, params *k2.ListParams, pageSize int) *k2.PaginationIterator[k2.AuditLogEntry] {
	fetch := func(ctx context.Context, limit, offset int) ([]k2.AuditLogEntry, *int, error) {
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

		return list.Logs, list.Total, nil
	}

	return k2.NewPaginationIterator(ctx, fetch, pageSize)
}
