package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/knowledge2-io/knowledge2-go/internal/http"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// SearchClient implements k2.SearchClient.
type SearchClient struct {
	httpClient *http.Client
}

// NewSearchClient creates a new search client.
func NewSearchClient(httpClient *http.Client) *SearchClient {
	return &SearchClient{httpClient: httpClient}
}

// Search implements k2.SearchClient.Search.
func (c *SearchClient) Search(ctx context.Context, corpusID string, request *k2.SearchRequest) (*k2.SearchResponse, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/corpora/"+corpusID+"/search", request)
	if err != nil {
		return nil, fmt.Errorf("searching corpus: %w", err)
	}

	var response k2.SearchResponse

	err = json.Unmarshal(resp.Body, &response)
	if err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return &response, nil
}

// SearchBatch implements k2.SearchClient.SearchBatch. The request carries the
// shared retrieval settings; queries replaces its single query.
func (c *SearchClient) SearchBatch(ctx context.Context, corpusID string, queries []string, request *k2.SearchRequest) (*k2.SearchBatchResponse, error) {
	body := map[string]interface{}{"queries": queries}

	if request != nil {
		if request.TopK > 0 {
			body["top_k"] = request.TopK
		}

		if request.Filters != nil {
			body["filters"] = request.Filters
		}

		if request.Hybrid != nil {
			body["hybrid"] = request.Hybrid
		}

		if request.Rerank != nil {
			body["rerank"] = request.Rerank
		}

		if request.GraphRag != nil {
			body["graph_rag"] = request.GraphRag
		}

		if request.ReturnConfig != nil {
			body["return"] = request.ReturnConfig
		}
	}

	resp, err := c.httpClient.Post(ctx, "/v1/corpora/"+corpusID+"/search:batch", body)
	if err != nil {
		return nil, fmt.Errorf("batch searching corpus: %w", err)
	}

	var response k2.SearchBatchResponse

	err = json.Unmarshal(resp.Body, &response)
	if err != nil {
		return nil, fmt.Errorf("parsing batch search response: %w", err)
	}

	return &response, nil
}

// SearchGenerate implements k2.SearchClient.SearchGenerate.
func (c *SearchClient) SearchGenerate(ctx context.Context, corpusID string, request *k2.SearchRequest) (*k2.SearchGenerateResponse, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/corpora/"+corpusID+"/search:generate", request)
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	var response k2.SearchGenerateResponse

	err = json.Unmarshal(resp.Body, &response)
	if err != nil {
		return nil, fmt.Errorf("parsing generate response: %w", err)
	}

	return &response, nil
}

// Embeddings implements k2.SearchClient.Embeddings.
func (c *SearchClient) Embeddings(ctx context.Context, request *k2.EmbeddingsRequest) (*k2.EmbeddingsResponse, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/embeddings", request)
	if err != nil {
		return nil, fmt.Errorf("generating embeddings: %w", err)
	}

	var response k2.EmbeddingsResponse

	err = json.Unmarshal(resp.Body, &response)
	if err != nil {
		return nil, fmt.Errorf("parsing embeddings response: %w", err)
	}

	return &response, nil
}

// CreateFeedback implements k2.SearchClient.CreateFeedback.
func (c *SearchClient) CreateFeedback(ctx context.Context, corpusID string, request *k2.FeedbackRequest) (*k2.FeedbackResult, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/corpora/"+corpusID+"/feedback", request)
	if err != nil {
		return nil, fmt.Errorf("recording feedback: %w", err)
	}

	var result k2.FeedbackResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing feedback result: %w", err)
	}

	return &result, nil
}
