package completion

import (
	"errors"

	"github.com/colonyops/skrive/internal/core/suggest"
)

// User-facing messages shown when a submission fails.
const (
	MsgEmptyText = "Vennligst skriv inn tekst før du analyserer."
	MsgBusy      = "En analyse pågår allerede. Vent til den er ferdig."
	MsgParse     = "Kunne ikke tolke svaret fra API-et. Vennligst prøv igjen."
	MsgTransport = "Det oppstod en feil ved kontakt med API-et. Prøv igjen senere."
)

// UserMessage maps a Submit error to the message shown to the writer.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmptyText):
		return MsgEmptyText
	case errors.Is(err, ErrBusy):
		return MsgBusy
	case IsParseError(err):
		return MsgParse
	default:
		return MsgTransport
	}
}

// IsParseError reports whether err came from interpreting the completion
// rather than from reaching the endpoint.
func IsParseError(err error) bool {
	return errors.Is(err, suggest.ErrNoStructuredBlock) ||
		errors.Is(err, suggest.ErrMalformedJSON) ||
		errors.Is(err, suggest.ErrSchemaViolation)
}
