// Package k2client provides the main entry point for creating Knowledge2 API clients
package k2client

import (
	"context"
	"fmt"

	"github.com/knowledge2-io/knowledge2-go/internal/client"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// New creates a new Knowledge2 API client. When config.OrgID is empty and an
// API key is configured, the organisation is discovered from the key's
// identity during construction.
func New(ctx context.Context, config *k2.Config) (k2.Client, error) {
	if config == nil {
		return nil, k2.ErrConfigRequired
	}

	cli, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// NewWithAPIKey creates a client authenticated with an API key against the
// production endpoint.
func NewWithAPIKey(ctx context.Context, apiKey string) (k2.Client, error) {
	return New(ctx, &k2.Config{APIKey: apiKey})
}

// NewWithBearerToken creates a client authenticated with a console session
// token. Org discovery requires an explicit OrgID for bearer sessions, so
// orgID is taken here.
func NewWithBearerToken(ctx context.Context, bearerToken, orgID string) (k2.Client, error) {
	return New(ctx, &k2.Config{BearerToken: bearerToken, OrgID: orgID})
}

// NewWithAdminToken creates a client authenticated with an admin token.
func NewWithAdminToken(ctx context.Context, adminToken string) (k2.Client, error) {
	return New(ctx, &k2.Config{AdminToken: adminToken})
}
