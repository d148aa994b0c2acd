package logging

import (
	"fmt"
	"os"
	"time"
)

// QueryLog appends one line per invocation to the file named by SMSH_LOG.
// With an empty path it is a no-op. Logging is best effort: a broken log
// destination never fails the invocation, and credentials are never written.
type QueryLog struct {
	path string
}

// New creates a query log for the given path; empty disables it.
func New(path string) *QueryLog {
	return &QueryLog{path: path}
}

// Enabled reports whether a destination is configured.
func (l *QueryLog) Enabled() bool {
	return l != nil && l.path != ""
}

// Record appends one entry for an operation.
func (l *QueryLog) Record(op, query, result string) {
	if !l.Enabled() {
		return
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()

	ts := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(f, "[%s] %s | query: %s | result: %s\n", ts, op, query, result)
}
