package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	requestIDKey contextKey = "requestID"
	jsonBodyKey  contextKey = "jsonBody"
)

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithRequestID returns a new context carrying the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// JSONBodyFrom returns the body checked by JSONContentMiddleware.
// ok is false when the middleware did not run for this request.
func JSONBodyFrom(r *http.Request) (body []byte, ok bool) {
	body, ok = r.Context().Value(jsonBodyKey).([]byte)
	return body, ok
}

func contextWithJSONBody(ctx context.Context, body []byte) context.Context {
	return context.WithValue(ctx, jsonBodyKey, body)
}
