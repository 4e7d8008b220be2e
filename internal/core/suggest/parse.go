package suggest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Sentinel errors for parse failures. All are recoverable: the caller shows a
// retry-eligible message and keeps its previous state.
var (
	ErrNoStructuredBlock = errors.New("no fenced json block in response")
	ErrMalformedJSON     = errors.New("malformed json in response")
	ErrSchemaViolation   = errors.New("response does not match suggestion schema")
)

const (
	openFence  = "```json"
	closeFence = "```"
)

const schemaURL = "endringer-v1.schema.json"

//go:embed schema.json
var schemaJSON []byte

var responseSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("suggest: add schema resource: %v", err))
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		panic(fmt.Sprintf("suggest: compile schema: %v", err))
	}
	return schema
}

// Parse turns a completion payload into a validated Result.
//
// A structured payload is validated and returned directly. Free text is
// checked for a JSON object that already exposes "endringer" and for a
// chat-completion envelope (choices[0].message.content), then searched for
// exactly one ```json fenced block.
func Parse(p Payload) (*Result, error) {
	if p.Structured != nil {
		return normalize(p.Structured)
	}

	text := strings.TrimSpace(p.Text)

	if obj, ok := decodeObject(text); ok {
		if _, has := obj["endringer"]; has {
			return decode([]byte(text))
		}
		if content, ok := envelopeContent(obj); ok {
			text = content
		}
	}

	blocks := fencedBlocks(text)
	switch len(blocks) {
	case 0:
		return nil, ErrNoStructuredBlock
	case 1:
		return decode([]byte(blocks[0]))
	default:
		return nil, fmt.Errorf("%w: found %d blocks, want exactly 1", ErrNoStructuredBlock, len(blocks))
	}
}

// ParseText is shorthand for Parse(Text(s)).
func ParseText(s string) (*Result, error) {
	return Parse(Text(s))
}

// decode validates raw JSON against the response schema and decodes it.
func decode(raw []byte) (*Result, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	if err := responseSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	var r Result
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	return normalize(&r)
}

// normalize copies r, defaulting optional lists to empty and rejecting
// suggestions without both sentences.
func normalize(r *Result) (*Result, error) {
	out := &Result{
		Suggestions:    make([]Suggestion, 0, len(r.Suggestions)),
		OverallComment: r.OverallComment,
	}

	for i, s := range r.Suggestions {
		if s.Original == "" {
			return nil, fmt.Errorf("%w: endringer[%d].original_setning is empty", ErrSchemaViolation, i)
		}
		if s.Improved == "" {
			return nil, fmt.Errorf("%w: endringer[%d].forbedret_setning is empty", ErrSchemaViolation, i)
		}

		rules := make([]string, len(s.Rules))
		copy(rules, s.Rules)

		annotations := make([]Annotation, len(s.Annotations))
		copy(annotations, s.Annotations)

		out.Suggestions = append(out.Suggestions, Suggestion{
			Original:    s.Original,
			Improved:    s.Improved,
			Rules:       rules,
			Comment:     s.Comment,
			Annotations: annotations,
		})
	}

	return out, nil
}

func decodeObject(text string) (map[string]json.RawMessage, bool) {
	if !strings.HasPrefix(text, "{") {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// envelopeContent extracts choices[0].message.content from an
// OpenAI-style chat completion response.
func envelopeContent(obj map[string]json.RawMessage) (string, bool) {
	raw, ok := obj["choices"]
	if !ok {
		return "", false
	}

	var choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(raw, &choices); err != nil || len(choices) == 0 {
		return "", false
	}

	content := choices[0].Message.Content
	return content, content != ""
}

// fencedBlocks returns the bodies of every ```json fenced block in s.
// The body starts on the line after the opening marker and ends at the next
// closing marker.
func fencedBlocks(s string) []string {
	var blocks []string

	for {
		i := strings.Index(s, openFence)
		if i < 0 {
			return blocks
		}

		rest := s[i+len(openFence):]
		nl := strings.IndexByte(rest, '\n')
		if nl < 0 {
			return blocks
		}

		body := rest[nl+1:]
		j := strings.Index(body, closeFence)
		if j < 0 {
			return blocks
		}

		blocks = append(blocks, strings.TrimSpace(body[:j]))
		s = body[j+len(closeFence):]
	}
}
