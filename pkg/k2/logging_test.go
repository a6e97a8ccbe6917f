package k2_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

func TestRedactHeaders(t *testing.T) {
	t.Parallel()

	t.Run("credential headers are masked", func(t *testing.T) {
		t.Parallel()

		headers := http.Header{}
		headers.Set("X-API-Key", "sk-secret")
		headers.Set("Authorization", "Bearer token")
		headers.Set("X-Admin-Token", "admin-secret")
		headers.Set("Content-Type", "application/json")

		redacted := k2.RedactHeaders(headers)

		assert.Equal(t, "***", redacted["X-Api-Key"])
		assert.Equal(t, "***", redacted["Authorization"])
		assert.Equal(t, "***", redacted["X-Admin-Token"])
		assert.Equal(t, "application/json", redacted["Content-Type"])
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		t.Parallel()

		headers := map[string][]string{
			"x-api-key":     {"sk-secret"},
			"AUTHORIZATION": {"Bearer token"},
		}

		redacted := k2.RedactHeaders(headers)

		assert.Equal(t, "***", redacted["x-api-key"])
		assert.Equal(t, "***", redacted["AUTHORIZATION"])
	})

	t.Run("input headers are not modified", func(t *testing.T) {
		t.Parallel()

		headers := http.Header{}
		headers.Set("X-API-Key", "sk-secret")

		_ = k2.RedactHeaders(headers)

		assert.Equal(t, "sk-secret", headers.Get("X-API-Key"))
	})

	t.Run("multi-value headers are joined", func(t *testing.T) {
		t.Parallel()

		headers := http.Header{}
		headers.Add("Accept", "application/json")
		headers.Add("Accept", "text/plain")

		redacted := k2.RedactHeaders(headers)

		assert.Equal(t, "application/json, text/plain", redacted["Accept"])
	})
}

func TestSetDebug(t *testing.T) {
	k2.SetDebug(true)
	assert.True(t, k2.DebugEnabled())

	k2.SetDebug(false)
	assert.False(t, k2.DebugEnabled())
}

type recordingLogger struct {
	msgs []string
}

func (l *recordingLogger) Debug(msg string, _ map[string]interface{}) { l.msgs = append(l.msgs, msg) }
func (l *recordingLogger) Info(msg string, _ map[string]interface{})  { l.msgs = append(l.msgs, msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.msgs = append(l.msgs, msg) }
func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.msgs = append(l.msgs, msg) }

func TestSetDefaultLogger(t *testing.T) {
	logger := &recordingLogger{}

	k2.SetDefaultLogger(logger)
	defer k2.SetDefaultLogger(nil)

	assert.Same(t, k2.Logger(logger), k2.DefaultLogger())

	// nil restores the built-in logger.
	k2.SetDefaultLogger(nil)
	assert.NotNil(t, k2.DefaultLogger())
	assert.NotSame(t, k2.Logger(logger), k2.DefaultLogger())
}
