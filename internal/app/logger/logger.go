package logger

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// Logger
var Log *zap.Logger = zap.NewNop()

type contextKey string

const requestIDKey contextKey = "request_id"

// Logging response writer
type LoggingResponseWriter struct {
	http.ResponseWriter
	ResponseStatus int
	ResponseSize   int
}

// Write
func (r *LoggingResponseWriter) Write(b []byte) (int, error) {
	if r.ResponseStatus == 0 {
		r.ResponseStatus = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.ResponseSize += size

	return size, err
}

// WriteHeader
func (r *LoggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	if r.ResponseStatus == 0 {
		r.ResponseStatus = statusCode
	}
}

// Initialize Log
func Initialize(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	config := zap.NewProductionConfig()
	config.Level = lvl
	zLogger, err := config.Build()
	if err != nil {
		return err
	}

	Log = zLogger
	return nil
}

// WithRequestID stores the request id in ctx
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the request id stored in ctx
func RequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok
}

// FromContext returns Log annotated with the request id if ctx carries one
func FromContext(ctx context.Context) *zap.Logger {
	if requestID, ok := RequestID(ctx); ok {
		return Log.With(zap.String("request_id", requestID))
	}

	return Log
}
