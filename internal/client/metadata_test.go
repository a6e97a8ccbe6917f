package client

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

func TestMetadataClient_Discover(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodGet, r.Method)
		assert.Equal(t, "/v1/corpora/corpus-1/metadata/discover", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("refresh"))

		_, _ = w.Write([]byte(`{"corpus_id":"corpus-1","fields":[{"key":"section","type":"string","count":42},{"key":"page","type":"number","count":40}]}`))
	}))
	defer server.Close()

	httpClient := newHTTPClient(server)
	defer httpClient.Close()

	discovery, err := NewMetadataClient(httpClient).Discover(context.Background(), "corpus-1", false)
	require.NoError(t, err)
	require.Len(t, discovery.Fields, 2)
	assert.Equal(t, "section", discovery.Fields[0].Key)
	assert.Equal(t, "string", discovery.Fields[0].Type)
	assert.Equal(t, 42, discovery.Fields[0].Count)
}

func TestMetadataClient_DiscoverRefresh(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("refresh"))

		_, _ = w.Write([]byte(`{"fields":[]}`))
	}))
	defer server.Close()

	httpClient := newHTTPClient(server)
	defer httpClient.Close()

	_, err := NewMetadataClient(httpClient).Discover(context.Background(), "corpus-1", true)
	require.NoError(t, err)
}

func TestMetadataClient_DiscoverNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"corpus not found"}`))
	}))
	defer server.Close()

	httpClient := newHTTPClient(server)
	defer httpClient.Close()

	_, err := NewMetadataClient(httpClient).Discover(context.Background(), "missing", false)
	require.Error(t, err)
	assert.True(t, k2.IsNotFound(err))
	assert.Contains(t, err.Error(), "discovering metadata")
}
