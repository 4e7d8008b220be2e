package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/colonyops/skrive/internal/core/logging"
	"github.com/colonyops/skrive/internal/core/suggest"
)

var (
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("a submission is already in progress")
	// ErrEmptyText is returned when the submitted document is blank.
	ErrEmptyText = errors.New("document text is empty")
)

// Submitter runs completion followed by parsing, allowing one submission
// at a time.
type Submitter struct {
	completer Completer
	busy      atomic.Bool
}

// NewSubmitter wraps c.
func NewSubmitter(c Completer) *Submitter {
	return &Submitter{completer: c}
}

// Busy reports whether a submission is in flight.
func (s *Submitter) Busy() bool {
	return s.busy.Load()
}

// Submit completes text and parses the response. A concurrent call fails
// immediately with ErrBusy.
func (s *Submitter) Submit(ctx context.Context, text string) (*suggest.Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.busy.Store(false)

	if logging.GetRequestID(ctx) == "" {
		ctx = logging.WithRequestID(ctx, uuid.NewString())
	}
	log := logging.ComponentCtx(ctx, "submit")

	payload, err := s.completer.Complete(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}

	result, err := suggest.Parse(payload)
	if err != nil {
		log.Warn().Err(err).Msg("could not interpret completion")
		return nil, err
	}

	log.Info().Int("suggestions", result.Len()).Msg("submission parsed")
	return result, nil
}
