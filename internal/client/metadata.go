package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/knowledge2-io/knowledge2-go/internal/http"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// MetadataClient implements k2.MetadataClient.
type MetadataClient struct {
	httpClient *http.Client
}

// NewMetadataClient creates a new metadata client.
func NewMetadataClient(httpClient *http.Client) *MetadataClient {
	return &MetadataClient{httpClient: httpClient}
}

// Discover implements k2.MetadataClient.Discover.
func (c *MetadataClient) Discover(ctx context.Context, corpusID string, refresh bool) (*k2.MetadataDiscovery, error) {
	var query url.Values
	if refresh {
		query = url.Values{"refresh": []string{"true"}}
	}

	resp, err := c.httpClient.Get(ctx, "/v1/corpora/"+corpusID+"/metadata/discover", query)
	if err != nil {
		return nil, fmt.Errorf("discovering metadata: %w", err)
	}

	var discovery k2.MetadataDiscovery

	err = json.Unmarshal(resp.Body, &discovery)
	if err != nil {
		return nil, fmt.Errorf("parsing metadata discovery: %w", err)
	}

	return &discovery, nil
}
