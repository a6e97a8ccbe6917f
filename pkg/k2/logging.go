package k2

import (
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/knowledge2-io/knowledge2-go/internal/constants"
)

// Logger is the interface used for SDK debug logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// debugEnabled is the process-wide debug switch. It affects every client in
// the process; toggling it is race-free.
var debugEnabled atomic.Bool

// defaultLogger is the shared logger handle used when a client has no Logger
// of its own. Guarded by defaultLoggerMu so SetDefaultLogger can swap it
// while requests are in flight.
var (
	defaultLoggerMu sync.RWMutex
	defaultLogger   Logger = &stderrLogger{}
)

// SetDebug enables or disables SDK debug logging for all client instances in
// the process. When enabled, each request attempt is logged with method,
// path, redacted headers, status, and elapsed time. Credential headers are
// never logged in cleartext.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

// DebugEnabled reports whether process-wide debug logging is on.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// SetDefaultLogger replaces the process-wide logger used by clients that were
// not configured with their own Logger. Passing nil restores the built-in
// stderr logger.
func SetDefaultLogger(logger Logger) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()

	if logger == nil {
		defaultLogger = &stderrLogger{}

		return
	}

	defaultLogger = logger
}

// DefaultLogger returns the current process-wide logger.
func DefaultLogger() Logger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()

	return defaultLogger
}

// redactedHeaders lists headers whose values carry credentials.
var redactedHeaders = map[string]struct{}{
	"x-api-key":     {},
	"authorization": {},
	"x-admin-token": {},
}

// RedactHeaders returns a copy of headers with credential values replaced by
// a mask. The input is never modified.
func RedactHeaders(headers http.Header) map[string]string {
	redacted := make(map[string]string, len(headers))

	for key, values := range headers {
		if _, sensitive := redactedHeaders[strings.ToLower(key)]; sensitive {
			redacted[key] = constants.MaskedSecret
		} else {
			redacted[key] = strings.Join(values, ", ")
		}
	}

	return redacted
}

// stderrLogger is the built-in logger: plain lines on stderr, fields in
// stable order.
type stderrLogger struct{}

func (l *stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l *stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("INFO", msg, fields) }
func (l *stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("WARN", msg, fields) }
func (l *stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }

func (l *stderrLogger) log(level, msg string, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var builder strings.Builder

	builder.WriteString("knowledge2 ")
	builder.WriteString(level)
	builder.WriteString(" ")
	builder.WriteString(msg)

	for _, key := range keys {
		fmt.Fprintf(&builder, " %s=%v", key, fields[key])
	}

	fmt.Fprintln(os.Stderr, builder.String())
}
