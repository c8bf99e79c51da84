package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/job-seeker-api/internal/platform/logger"
	"github.com/phrazzld/job-seeker-api/internal/redact"
)

// Error bodies are the bare error name as plain text.
const (
	BadRequestError     = "BadRequestError"
	UnauthorizedError   = "UnauthorizedError"
	NotFoundError       = "NotFoundError"
	ConflictError       = "ConflictError"
	InternalServerError = "InternalServerError"
)

// ErrorName returns the error body written for status.
func ErrorName(status int) string {
	switch status {
	case http.StatusBadRequest:
		return BadRequestError
	case http.StatusUnauthorized:
		return UnauthorizedError
	case http.StatusNotFound:
		return NotFoundError
	case http.StatusConflict:
		return ConflictError
	default:
		return InternalServerError
	}
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel returns a ResponseOption that raises 4xx errors to WARN level
// instead of the default DEBUG level. Use for important operational issues like
// repeated auth failures.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

// RespondWithText writes a plain text body.
func RespondWithText(w http.ResponseWriter, r *http.Request, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		logger.FromContext(r.Context()).Error("failed to write response",
			slog.String("error", err.Error()))
	}
}

// RespondNoContent writes 204 with no body.
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondWithError writes the error name for status.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int) {
	logger.FromContext(r.Context()).Debug("sending error response",
		slog.Int("status_code", status),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	RespondWithText(w, r, status, ErrorName(status))
}

// RespondWithErrorAndLog writes the error name for status and logs err.
// The client never sees err.
//
// Log level strategy:
// - 5xx errors: Always logged at ERROR level
// - 4xx errors: By default logged at DEBUG level
//
// Use WithElevatedLogLevel to log a 4xx at WARN.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	err error,
	opts ...ResponseOption,
) {
	logAttrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
	}
	if traceID := GetTraceID(r.Context()); traceID != "" {
		logAttrs = append(logAttrs, slog.String("trace_id", traceID))
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	} else if responseOpts.elevateLogLevel && status >= http.StatusBadRequest {
		logLevel = slog.LevelWarn
	}

	logger.FromContext(r.Context()).LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithText(w, r, status, ErrorName(status))
}
