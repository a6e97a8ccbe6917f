package k2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

func TestListParams_ToValues(t *testing.T) {
	t.Parallel()

	t.Run("empty params produce no query", func(t *testing.T) {
		t.Parallel()

		values := k2.NewListParams().ToValues()
		assert.Empty(t, values.Encode())
	})

	t.Run("nil params are safe", func(t *testing.T) {
		t.Parallel()

		var params *k2.ListParams

		values := params.ToValues()
		assert.Empty(t, values.Encode())
	})

	t.Run("limit and offset are set", func(t *testing.T) {
		t.Parallel()

		values := k2.NewListParams().WithLimit(50).WithOffset(100).ToValues()
		assert.Equal(t, "50", values.Get("limit"))
		assert.Equal(t, "100", values.Get("offset"))
	})

	t.Run("zero limit and offset are omitted", func(t *testing.T) {
		t.Parallel()

		values := k2.NewListParams().WithLimit(0).WithOffset(0).ToValues()
		assert.False(t, values.Has("limit"))
		assert.False(t, values.Has("offset"))
	})

	t.Run("filters are set and empty values dropped", func(t *testing.T) {
		t.Parallel()

		values := k2.NewListParams().
			WithFilter("status", "running").
			WithFilter("corpus_id", "").
			ToValues()

		assert.Equal(t, "running", values.Get("status"))
		assert.False(t, values.Has("corpus_id"))
	})

	t.Run("setting a filter twice replaces the value", func(t *testing.T) {
		t.Parallel()

		values := k2.NewListParams().
			WithFilter("status", "pending").
			WithFilter("status", "failed").
			ToValues()

		assert.Equal(t, "failed", values.Get("status"))
	})
}
