package logger

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	clientIPKey  contextKey = "client_ip"
	operationKey contextKey = "operation"
	categoryKey  contextKey = "category"
	loggerKey    contextKey = "logger"

	categoryField = "category"
)

// WithRequestID adds a request ID to the context.
// If requestID is empty, a new UUID is generated.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from context
func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

// WithClientIP adds the caller's address to the context
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// WithOperation tags the context with the engine entry point being run
// (insights, focus, export_healthcare, export_research, log_activity, import)
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey, op)
}

// WithCategory tags the context with the activity category being read or written
func WithCategory(ctx context.Context, category string) context.Context {
	return context.WithValue(ctx, categoryKey, category)
}

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context, or returns the default logger
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// Ctx returns the context's logger enriched with its request, operation and
// category values
func Ctx(ctx context.Context) Logger {
	return FromContext(ctx).WithContext(ctx)
}

func stringValue(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

func contextFields(ctx context.Context) []Field {
	var fields []Field
	for _, kv := range []struct {
		key   contextKey
		field string
	}{
		{requestIDKey, "request_id"},
		{clientIPKey, "client_ip"},
		{operationKey, "operation"},
		{categoryKey, categoryField},
	} {
		if v := stringValue(ctx, kv.key); v != "" {
			fields = append(fields, String(kv.field, v))
		}
	}
	return fields
}
