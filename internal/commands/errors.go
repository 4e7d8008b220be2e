package commands

import (
	"errors"

	"github.com/colonyops/skrive/internal/core/completion"
	"github.com/colonyops/skrive/internal/core/review"
	"github.com/colonyops/skrive/internal/core/suggest"
)

// errorCode returns a stable machine-readable code for err.
func errorCode(err error) string {
	switch {
	case errors.Is(err, suggest.ErrNoStructuredBlock):
		return "NO_STRUCTURED_BLOCK"
	case errors.Is(err, suggest.ErrMalformedJSON):
		return "MALFORMED_JSON"
	case errors.Is(err, suggest.ErrSchemaViolation):
		return "SCHEMA_VIOLATION"
	case errors.Is(err, completion.ErrEmptyText):
		return "EMPTY_TEXT"
	case errors.Is(err, completion.ErrBusy):
		return "BUSY"
	case errors.Is(err, review.ErrEmptySuggestionSet):
		return "EMPTY_SUGGESTION_SET"
	case errors.Is(err, review.ErrTargetNotFound):
		return "TARGET_NOT_FOUND"
	default:
		return "COMPLETION_FAILED"
	}
}
