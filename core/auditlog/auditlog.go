// Package auditlog implements an optional, append-only CSV record of
// Operations, with Enabled reporting the ENABLE_VPUNN_DATA_SERIALIZATION
// environment variable. A row is written only when a caller invokes
// Log.Record; neither core.CostEngine nor cmd calls it. Each row holds the
// serialized Operation only, not the cost result. It reuses
// core/serialize's CSV codec rather than duplicating the column layout.
package auditlog

import (
	"encoding/csv"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/npucost/npucost/core"
	"github.com/npucost/npucost/core/serialize"
)

const enableEnvVar = "ENABLE_VPUNN_DATA_SERIALIZATION"

// Log appends scored Operations to a CSV file. Safe for concurrent use: all
// writes are serialized behind a mutex, matching the single-writer,
// append-only contract of the underlying file.
type Log struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	header bool
}

// Enabled reports whether ENABLE_VPUNN_DATA_SERIALIZATION is set to a
// truthy value in the process environment.
func Enabled() bool {
	v := os.Getenv(enableEnvVar)
	return v == "1" || v == "true" || v == "TRUE"
}

// Open creates (or truncates) path for audit logging. Callers should check
// Enabled() first; Open does not consult the environment itself so tests
// can exercise it unconditionally.
func Open(path string) (*Log, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Log{w: f, closer: f}, nil
}

// NewLog wraps an already-open writer (e.g. for tests); Close is a no-op
// unless the writer was created via Open.
func NewLog(w io.Writer) *Log {
	return &Log{w: w}
}

// Record appends one Operation's CSV row, writing the header first if this
// is the log's first write. A write failure is logged at warn level and
// swallowed: audit logging must never abort a cost-engine call.
func (l *Log) Record(op core.Operation, logger *logrus.Logger) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	cw := csv.NewWriter(l.w)
	if !l.header {
		if err := cw.Write(serialize.Header()); err != nil {
			logger.WithError(err).Warn("auditlog: failed to write header")
			return
		}
		l.header = true
	}
	if err := cw.Write(serialize.EncodeRecord(op)); err != nil {
		logger.WithError(err).Warn("auditlog: failed to write record")
		return
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		logger.WithError(err).Warn("auditlog: failed to flush record")
	}
}

// Close releases the underlying file, if Open created one.
func (l *Log) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
