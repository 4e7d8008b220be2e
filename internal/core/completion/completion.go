// Package completion obtains improvement suggestions for a document from a
// language model, or from a built-in mock.
package completion

import (
	"context"
	"fmt"

	"github.com/colonyops/skrive/internal/core/config"
	"github.com/colonyops/skrive/internal/core/suggest"
)

// Completer turns document text into a raw or structured suggestion payload.
type Completer interface {
	Complete(ctx context.Context, text string) (suggest.Payload, error)
}

// New returns the Completer selected by cfg.Mode.
func New(cfg config.CompletionConfig) (Completer, error) {
	switch cfg.Mode {
	case config.ModeMock:
		return Mock{}, nil
	case config.ModeLive:
		return NewClient(cfg)
	default:
		return nil, fmt.Errorf("unknown completion mode %q", cfg.Mode)
	}
}
