package testutils

import (
	"context"
	"log/slog"
	"sync"
)

// LogEntry is a captured log record flattened to a map.
type LogEntry map[string]interface{}

// TestSlogHandler is a memory-backed slog.Handler for asserting on log output.
type TestSlogHandler struct {
	mu      *sync.Mutex
	entries *[]LogEntry
	attrs   []slog.Attr
}

// NewTestSlogHandler creates an empty handler.
func NewTestSlogHandler() *TestSlogHandler {
	return &TestSlogHandler{mu: &sync.Mutex{}, entries: &[]LogEntry{}}
}

// NewTestLogger returns a logger writing to a new TestSlogHandler.
func NewTestLogger() (*slog.Logger, *TestSlogHandler) {
	h := NewTestSlogHandler()
	return slog.New(h), h
}

func (h *TestSlogHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *TestSlogHandler) Handle(_ context.Context, r slog.Record) error {
	entry := LogEntry{"level": r.Level.String(), "message": r.Message}
	for _, a := range h.attrs {
		entry[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		entry[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	*h.entries = append(*h.entries, entry)
	return nil
}

// WithAttrs keeps attrs on a derived handler that shares the same entries,
// so component loggers are captured too.
func (h *TestSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &TestSlogHandler{mu: h.mu, entries: h.entries}
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return next
}

func (h *TestSlogHandler) WithGroup(string) slog.Handler {
	return h
}

// Entries returns a copy of every captured entry.
func (h *TestSlogHandler) Entries() []LogEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]LogEntry{}, *h.entries...)
}

// Find returns the first entry logged with message.
func (h *TestSlogHandler) Find(message string) (LogEntry, bool) {
	for _, e := range h.Entries() {
		if e["message"] == message {
			return e, true
		}
	}
	return nil, false
}
