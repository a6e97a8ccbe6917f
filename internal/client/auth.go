package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/knowledge2-io/knowledge2-go/internal/http"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// AuthClient implements k2.AuthClient.
type AuthClient struct {
	httpClient *http.Client
}

// NewAuthClient creates a new auth client.
func NewAuthClient(httpClient *http.Client) *AuthClient {
	return &AuthClient{httpClient: httpClient}
}

// CreateAPIKey implements k2.AuthClient.CreateAPIKey.
func (c *AuthClient) CreateAPIKey(ctx context.Context, orgID, name string, scopes map[string]interface{}) (*k2.APIKeyCreateResult, error) {
	body := map[string]interface{}{
		"org_id": orgID,
		"name":   name,
	}
	if scopes != nil {
		body["scopes"] = scopes
	}

	resp, err := c.httpClient.Post(ctx, "/v1/auth/api-keys", body)
	if err != nil {
		return nil, fmt.Errorf("creating API key: %w", err)
	}

	var result k2.APIKeyCreateResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing API key: %w", err)
	}

	return &result, nil
}

// ListAPIKeys implements k2.AuthClient.ListAPIKeys.
func (c *AuthClient) ListAPIKeys(ctx context.Context) (*k2.APIKeyList, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/auth/api-keys", nil)
	if err != nil {
		return nil, fmt.Errorf("listing API keys: %w", err)
	}

	var list k2.APIKeyList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing API key list: %w", err)
	}

	return &list, nil
}

// RevokeAPIKey implements k2.AuthClient.RevokeAPIKey.
func (c *AuthClient) RevokeAPIKey(ctx context.Context, keyID string) (*k2.APIKeyRevokeResult, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/auth/api-keys/"+keyID+":revoke", nil)
	if err != nil {
		return nil, fmt.Errorf("revoking API key: %w", err)
	}

	var result k2.APIKeyRevokeResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing revoke result: %w", err)
	}

	return &result, nil
}

// RotateAPIKey implements k2.AuthClient.RotateAPIKey.
func (c *AuthClient) RotateAPIKey(ctx context.Context, keyID string) (*k2.APIKeyRotateResult, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/auth/api-keys/"+keyID+":rotate", nil)
	if err != nil {
		return nil, fmt.Errorf("rotating API key: %w", err)
	}

	var result k2.APIKeyRotateResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing rotate result: %w", err)
	}

	return &result, nil
}

// WhoAmI implements k2.AuthClient.WhoAmI.
func (c *AuthClient) WhoAmI(ctx context.Context) (*k2.WhoAmI, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/auth/whoami", nil)
	if err != nil {
		return nil, fmt.Errorf("getting identity: %w", err)
	}

	var identity k2.WhoAmI

	err = json.Unmarshal(resp.Body, &identity)
	if err != nil {
		return nil, fmt.Errorf("parsing identity: %w", err)
	}

	return &identity, nil
}
