package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/colonyops/skrive/internal/core/completion"
	"github.com/colonyops/skrive/internal/core/logging"
	"github.com/colonyops/skrive/internal/core/review"
	"github.com/colonyops/skrive/internal/core/suggest"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// SuggestionsRequest is the body of POST /api/suggestions.
type SuggestionsRequest struct {
	Text string `json:"text"`
}

// ApplyRequest is the body of POST /api/apply.
type ApplyRequest struct {
	Text        string               `json:"text"`
	Suggestions []suggest.Suggestion `json:"endringer"`
	Accepted    []int                `json:"accepted"`
}

// ApplyResponse is the body returned by POST /api/apply.
type ApplyResponse struct {
	Text     string `json:"text"`
	Accepted int    `json:"accepted"`
	Declined int    `json:"declined"`
	Skipped  []int  `json:"skipped"`
	Changed  bool   `json:"changed"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Busy   bool   `json:"busy"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Busy: s.submitter.Busy()})
}

func (s *Server) handleSuggestions(c *gin.Context) {
	log := logging.ComponentCtx(c.Request.Context(), "server")

	var req SuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("invalid request body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST", Details: err.Error()})
		return
	}

	start := time.Now()
	result, err := s.submitter.Submit(c.Request.Context(), req.Text)
	if err != nil {
		status, code := submitStatus(err)
		recordSubmission(code, start, 0)
		log.Warn().Err(err).Str("code", code).Msg("submission failed")
		c.JSON(status, ErrorResponse{Error: completion.UserMessage(err), Code: code, Details: err.Error()})
		return
	}

	recordSubmission("ok", start, result.Len())
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleParse(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large", Code: "TOO_LARGE"})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "could not read request body", Code: "READ_FAILED", Details: err.Error()})
		return
	}

	result, err := suggest.ParseText(string(body))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: completion.MsgParse, Code: parseCode(err), Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleApply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST", Details: err.Error()})
		return
	}

	result, err := suggest.Parse(suggest.Structured(&suggest.Result{Suggestions: req.Suggestions}))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: completion.MsgParse, Code: parseCode(err), Details: err.Error()})
		return
	}

	out, err := review.ApplySelection(result.Suggestions, req.Text, req.Accepted)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: applyCode(err)})
		return
	}

	recordApply(out.Accepted, out.Declined-len(out.Skipped), len(out.Skipped))

	skipped := out.Skipped
	if skipped == nil {
		skipped = []int{}
	}
	c.JSON(http.StatusOK, ApplyResponse{
		Text:     out.FinalText,
		Accepted: out.Accepted,
		Declined: out.Declined,
		Skipped:  skipped,
		Changed:  out.Changed,
	})
}

func submitStatus(err error) (int, string) {
	switch {
	case errors.Is(err, completion.ErrEmptyText):
		return http.StatusBadRequest, "EMPTY_TEXT"
	case errors.Is(err, completion.ErrBusy):
		return http.StatusConflict, "BUSY"
	case completion.IsParseError(err):
		return http.StatusUnprocessableEntity, parseCode(err)
	default:
		return http.StatusBadGateway, "COMPLETION_FAILED"
	}
}

func parseCode(err error) string {
	switch {
	case errors.Is(err, suggest.ErrNoStructuredBlock):
		return "NO_STRUCTURED_BLOCK"
	case errors.Is(err, suggest.ErrMalformedJSON):
		return "MALFORMED_JSON"
	default:
		return "SCHEMA_VIOLATION"
	}
}

func applyCode(err error) string {
	switch {
	case errors.Is(err, review.ErrEmptySuggestionSet):
		return "EMPTY_SUGGESTION_SET"
	case errors.Is(err, review.ErrIndexOutOfRange):
		return "INDEX_OUT_OF_RANGE"
	default:
		return "APPLY_FAILED"
	}
}
