package client

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

func TestSearchClient_Search(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)
		assert.Equal(t, "/v1/corpora/corpus-1/search", r.URL.Path)

		var request k2.SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "rotate api key", request.Query)
		assert.Equal(t, 5, request.TopK)
		require.NotNil(t, request.Hybrid)
		assert.Equal(t, "rrf", request.Hybrid.FusionMode)

		_, _ = w.Write([]byte(`{"results":[{"chunk_id":"chunk-1","score":0.92,"text":"Use key rotation."}]}`))
	}))
	defer server.Close()

	httpClient := newHTTPClient(server)
	defer httpClient.Close()

	enabled := true

	response, err := NewSearchClient(httpClient).Search(context.Background(), "corpus-1", &k2.SearchRequest{
		Query:  "rotate api key",
		TopK:   5,
		Hybrid: &k2.SearchHybridConfig{Enabled: &enabled, FusionMode: "rrf"},
	})
	require.NoError(t, err)
	require.Len(t, response.Results, 1)
	assert.Equal(t, "chunk-1", response.Results[0].ChunkID)
	require.NotNil(t, response.Results[0].Score)
	assert.InDelta(t, 0.92, *response.Results[0].Score, 1e-9)
}

func TestSearchClient_SearchBatch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/v1/corpora/corpus-1/search:batch", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []interface{}{"q1", "q2"}, body["queries"])
		assert.Equal(t, float64(3), body["top_k"])
		assert.NotContains(t, body, "query")

		_, _ = w.Write([]byte(`{"responses":[{"results":[]},{"results":[]}]}`))
	}))
	defer server.Close()

	httpClient := newHTTPClient(server)
	defer httpClient.Close()

	batch, err := NewSearchClient(httpClient).SearchBatch(context.Background(), "corpus-1",
		[]string{"q1", "q2"}, &k2.SearchRequest{TopK: 3})
	require.NoError(t, err)
	assert.Len(t, batch.Responses, 2)
}

func TestSearchClient_SearchGenerate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/v1/corpora/corpus-1/search:generate", r.URL.Path)

		_, _ = w.Write([]byte(`{"answer":"Rotate keys from the console.","used_sources":["chunk-1"]}`))
	}))
	defer server.Close()

	httpClient := newHTTPClient(server)
	defer httpClient.Close()

	response, err := NewSearchClient(httpClient).SearchGenerate(context.Background(), "corpus-1",
		&k2.SearchRequest{Query: "rotate api key", Generation: &k2.SearchGenerationConfig{MaxTokens: 256}})
	require.NoError(t, err)
	assert.Equal(t, "Rotate keys from the console.", response.Answer)
	assert.Equal(t, []string{"chunk-1"}, response.UsedSources)
}

func TestSearchClient_Embeddings(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)

		var request k2.EmbeddingsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, []string{"hello"}, request.Input)

		_, _ = w.Write([]byte(`{"model":"embed-1","embeddings":[[0.1,0.2]]}`))
	}))
	defer server.Close()

	httpClient := newHTTPClient(server)
	defer httpClient.Close()

	response, err := NewSearchClient(httpClient).Embeddings(context.Background(), &k2.EmbeddingsRequest{
		Model: "embed-1",
		Input: []string{"hello"},
		Type:  "query",
	})
	require.NoError(t, err)
	require.Len(t, response.Embeddings, 1)
	assert.Equal(t, "embed-1", response.Model)
}

func TestSearchClient_CreateFeedback(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/v1/corpora/corpus-1/feedback", r.URL.Path)

		var request k2.FeedbackRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "rotate api key", request.Query)
		assert.Equal(t, []string{"chunk-1"}, request.ClickedChunkIDs)

		_, _ = w.Write([]byte(`{"id":"fb-1","recorded":true}`))
	}))
	defer server.Close()

	httpClient := newHTTPClient(server)
	defer httpClient.Close()

	result, err := NewSearchClient(httpClient).CreateFeedback(context.Background(), "corpus-1",
		&k2.FeedbackRequest{Query: "rotate api key", ClickedChunkIDs: []string{"chunk-1"}})
	require.NoError(t, err)
	assert.True(t, result.Recorded)
}
