package logging

import "context"

type contextKey string

const (
	reviewIDKey  contextKey = "review_id"
	requestIDKey contextKey = "request_id"
)

// WithReviewID adds a review session ID to the context.
func WithReviewID(ctx context.Context, reviewID string) context.Context {
	return context.WithValue(ctx, reviewIDKey, reviewID)
}

// WithRequestID adds a completion request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetReviewID retrieves the review session ID from the context.
// Returns empty string if not present.
func GetReviewID(ctx context.Context) string {
	if id, ok := ctx.Value(reviewIDKey).(string); ok {
		return id
	}
	return ""
}

// GetRequestID retrieves the completion request ID from the context.
// Returns empty string if not present.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
