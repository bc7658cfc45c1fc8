package telemetry

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ContextKey type for context keys
type ContextKey string

const (
	// RequestIDKey is the context key for the per-request id
	RequestIDKey ContextKey = "request_id"
	// SessionIDKey is the context key for the storefront session id
	SessionIDKey ContextKey = "session_id"
)

const (
	// HeaderRequestID is the HTTP header for the request id
	HeaderRequestID = "X-Request-ID"
	// HeaderSessionID is the HTTP header for the storefront session id
	HeaderSessionID = "X-Session-ID"
)

// CorrelationMiddleware stamps every request with a request id, lifts
// the session id into the context, and mirrors both onto the active
// span and the response headers.
func CorrelationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx = context.WithValue(ctx, RequestIDKey, requestID)

		if sessionID := r.Header.Get(HeaderSessionID); sessionID != "" {
			ctx = context.WithValue(ctx, SessionIDKey, sessionID)
		}

		if span := trace.SpanFromContext(ctx); span.IsRecording() {
			span.SetAttributes(attribute.String("request.id", requestID))
			if sessionID := GetSessionID(ctx); sessionID != "" {
				span.SetAttributes(attribute.String("session.id", sessionID))
			}
		}

		w.Header().Set(HeaderRequestID, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request id from context
func GetRequestID(ctx context.Context) string {
	if id := ctx.Value(RequestIDKey); id != nil {
		return id.(string)
	}
	return ""
}

// GetSessionID retrieves the session id from context
func GetSessionID(ctx context.Context) string {
	if id := ctx.Value(SessionIDKey); id != nil {
		return id.(string)
	}
	return ""
}

// EnrichLogFields adds correlation ids and trace context to log fields
func EnrichLogFields(ctx context.Context, fields map[string]interface{}) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{})
	}

	if requestID := GetRequestID(ctx); requestID != "" {
		fields["request_id"] = requestID
	}
	if sessionID := GetSessionID(ctx); sessionID != "" {
		fields["session_id"] = sessionID
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		spanCtx := span.SpanContext()
		fields["trace_id"] = spanCtx.TraceID().String()
		fields["span_id"] = spanCtx.SpanID().String()
	}

	return fields
}
