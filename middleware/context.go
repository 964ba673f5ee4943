package middleware

import (
	"context"

	"github.com/courierhq/courier-backend/services"
)

// Context key type to avoid collisions
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"

	// AccessKey is the context key for the bound access context
	AccessKey contextKey = "access"
)

// GetRequestIDFromContext retrieves the request ID from context
func GetRequestIDFromContext(ctx context.Context) string {
	if val := ctx.Value(RequestIDKey); val != nil {
		if requestID, ok := val.(string); ok {
			return requestID
		}
	}
	return ""
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetAccessFromContext retrieves the bound access context, or nil on public
// routes and before the pipeline has run.
func GetAccessFromContext(ctx context.Context) *services.AccessContext {
	if val := ctx.Value(AccessKey); val != nil {
		if access, ok := val.(*services.AccessContext); ok {
			return access
		}
	}
	return nil
}

// WithAccess adds a bound access context to the request context
func WithAccess(ctx context.Context, access *services.AccessContext) context.Context {
	return context.WithValue(ctx, AccessKey, access)
}
