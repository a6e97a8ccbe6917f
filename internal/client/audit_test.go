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

func TestAuditClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/v1/audit-logs", r.URL.Path)
		assert.Equal(t, "corpus-1", r.URL.Query().Get("corpus_id"))
		assert.Equal(t, "proj-1", r.URL.Query().Get("project_id"))

		_, _ = w.Write([]byte(`{"logs":[{"id":"log-1","action":"corpus.create","entity_type":"corpus","org_id":"org-1"}],"total":1}`))
	}))
	defer server.Close()

	httpClient := newHTTPClient(server)
	defer httpClient.Close()

	params := k2.NewListParams().WithFilter("corpus_id", "corpus-1").WithFilter("project_id", "proj-1")

	list, err := NewAuditClient(httpClient).List(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, list.Logs, 1)
	assert.Equal(t, "corpus.create", list.Logs[0].Action)
	assert.Equal(t, "org-1", list.Logs[0].OrgID)
}

func TestAuditClient_IterateKeepsFilters(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "corpus-1", r.URL.Query().Get("corpus_id"))

		switch r.URL.Query().Get("offset") {
		case "", "0":
			_, _ = w.Write([]byte(`{"logs":[{"id":"log-1"},{"id":"log-2"}],"total":3}`))
		case "2":
			_, _ = w.Write([]byte(`{"logs":[{"id":"log-3"}],"total":3}`))
		default:
			t.Errorf("unexpected offset %q", r.URL.Query().Get("offset"))
		}
	}))
	defer server.Close()

	httpClient := newHTTPClient(server)
	defer httpClient.Close()

	params := k2.NewListParams().WithFilter("corpus_id", "corpus-1")

	logs, err := NewAuditClient(httpClient).Iterate(context.Background(), params, 2).All()
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "log-3", logs[2].ID)
}
