package logging

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier.
// Uses the "cmp" key for consistency with zerolog conventions.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// ComponentCtx is like Component but also binds the review and request IDs
// carried by ctx, for loggers that outlive a single event.
func ComponentCtx(ctx context.Context, name string) zerolog.Logger {
	lc := log.With().Str("cmp", name)
	if id := GetReviewID(ctx); id != "" {
		lc = lc.Str("review_id", id)
	}
	if id := GetRequestID(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	return lc.Logger()
}
