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

func TestModelsClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodGet, r.Method)
		assert.Equal(t, "/v1/models/model-1", r.URL.Path)

		_, _ = w.Write([]byte(`{"id":"model-1","corpus_id":"corpus-1","base_model":"k2-base","version":3}`))
	}))
	defer server.Close()

	httpClient := newHTTPClient(server)
	defer httpClient.Close()

	model, err := NewModelsClient(httpClient).Get(context.Background(), "model-1")
	require.NoError(t, err)
	assert.Equal(t, "model-1", model.ID)
	assert.Equal(t, "corpus-1", model.CorpusID)
}

func TestModelsClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		_, _ = w.Write([]byte(`{"models":[{"id":"model-1"},{"id":"model-2"}],"total":2}`))
	}))
	defer server.Close()

	httpClient := newHTTPClient(server)
	defer httpClient.Close()

	list, err := NewModelsClient(httpClient).List(context.Background(), k2.NewListParams().WithLimit(5))
	require.NoError(t, err)
	require.Len(t, list.Models, 2)
	require.NotNil(t, list.Total)
	assert.Equal(t, 2, *list.Total)
}

func TestModelsClient_Iterate(t *testing.T) {
	t.Parallel()

	fetches := 0
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		fetches++

		switch r.URL.Query().Get("offset") {
		case "", "0":
			assert.Equal(t, "2", r.URL.Query().Get("limit"))
			_, _ = w.Write([]byte(`{"models":[{"id":"model-1"},{"id":"model-2"}],"total":3}`))
		case "2":
			_, _ = w.Write([]byte(`{"models":[{"id":"model-3"}],"total":3}`))
		default:
			t.Errorf("unexpected offset %q", r.URL.Query().Get("offset"))
		}
	}))
	defer server.Close()

	httpClient := newHTTPClient(server)
	defer httpClient.Close()

	models, err := NewModelsClient(httpClient).Iterate(context.Background(), 2).All()
	require.NoError(t, err)

	var ids []string

	for _, model := range models {
		ids = append(ids, model.ID)
	}

	assert.Equal(t, []string{"model-1", "model-2", "model-3"}, ids)
	assert.Equal(t, 2, fetches)
}

func TestModelsClient_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		force     bool
		wantForce string
	}{
		{name: "without force", force: false, wantForce: ""},
		{name: "with force", force: true, wantForce: "true"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
				assert.Equal(t, nethttp.MethodDelete, r.Method)
				assert.Equal(t, "/v1/models/model-1", r.URL.Path)
				assert.Equal(t, tt.wantForce, r.URL.Query().Get("force"))

				_, _ = w.Write([]byte(`{"message":"model deleted"}`))
			}))
			defer server.Close()

			httpClient := newHTTPClient(server)
			defer httpClient.Close()

			result, err := NewModelsClient(httpClient).Delete(context.Background(), "model-1", tt.force)
			require.NoError(t, err)
			assert.Equal(t, "model deleted", result.Message)
		})
	}
}

func TestModelsClient_DeleteConflict(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"model has active deployments"}`))
	}))
	defer server.Close()

	httpClient := newHTTPClient(server)
	defer httpClient.Close()

	_, err := NewModelsClient(httpClient).Delete(context.Background(), "model-1", false)
	require.Error(t, err)
	assert.True(t, k2.IsConflict(err))
	assert.Contains(t, err.Error(), "deleting model")
}
