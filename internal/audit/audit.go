// Package audit records MCP tool invocations as newline-delimited JSON.
package audit

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"time"
)

// ErrNilWriter is returned by Logger.Log when the logger was constructed
// with a nil writer.
var ErrNilWriter = errors.New("audit logger: writer is nil")

// Entry captures a single tool invocation. Items is the number of content
// records returned and is omitted for calls that return none.
type Entry struct {
	Timestamp time.Time      `json:"timestamp"`
	Tool      string         `json:"tool"`
	Params    map[string]any `json:"params"`
	Result    string         `json:"result"`
	Items     int            `json:"items,omitempty"`
	Duration  time.Duration  `json:"duration_ns"`
}

// Logger writes Entry records to an io.Writer. It is safe for concurrent use.
type Logger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLogger returns a Logger that writes to w. If w is nil the returned
// logger is also nil; callers must check for nil before use.
func NewLogger(w io.Writer) *Logger {
	if w == nil {
		return nil
	}
	return &Logger{w: w}
}

// OpenFile opens (or creates) path for appending and returns a Logger
// writing to it together with the file, which the caller must close.
func OpenFile(path string) (*Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return NewLogger(f), f, nil
}

// Log serialises entry as a single JSON line and writes it to the underlying
// writer.
func (l *Logger) Log(entry Entry) error {
	if l == nil || l.w == nil {
		return ErrNilWriter
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, err = l.w.Write(data)
	return err
}
