// Package suggest defines the suggestion wire format returned by the
// language model and turns raw completion payloads into validated results.
//
// Field names on the wire are Norwegian and fixed:
//
//	{
//	  "endringer": [
//	    {
//	      "original_setning": "...",
//	      "forbedret_setning": "...",
//	      "regler": ["..."],
//	      "kommentar": "...",
//	      "annoteringer": [{"type": "strike-through", "tekst": "..."}]
//	    }
//	  ],
//	  "gjennomgående_kommentar": "..."
//	}
package suggest

// Annotation marks a sub-span of a suggestion's target region for decoration.
// Kind is an open set (underline, strike-through, highlight, ...).
type Annotation struct {
	Kind string `json:"type"`
	Text string `json:"tekst"`
}

// Suggestion is one proposed sentence-level edit.
type Suggestion struct {
	Original    string       `json:"original_setning"`
	Improved    string       `json:"forbedret_setning"`
	Rules       []string     `json:"regler"`
	Comment     string       `json:"kommentar"`
	Annotations []Annotation `json:"annoteringer"`
}

// Result is a validated parse of a completion payload.
type Result struct {
	Suggestions    []Suggestion `json:"endringer"`
	OverallComment string       `json:"gjennomgående_kommentar"`
}

// Len returns the number of suggestions in the result.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Suggestions)
}

// Payload is the raw output of a completion call. Exactly one of Text or
// Structured is expected to be set; Structured wins when both are.
type Payload struct {
	Text       string
	Structured *Result
}

// Text wraps free-form model output.
func Text(s string) Payload {
	return Payload{Text: s}
}

// Structured wraps a result an upstream layer has already decoded.
func Structured(r *Result) Payload {
	return Payload{Structured: r}
}
