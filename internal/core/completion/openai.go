package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/colonyops/skrive/internal/core/config"
	"github.com/colonyops/skrive/internal/core/logging"
	"github.com/colonyops/skrive/internal/core/suggest"
	"github.com/colonyops/skrive/pkg/tmpl"
)

// ErrNoChoices is returned when the endpoint answers without any choices.
var ErrNoChoices = errors.New("completion returned no choices")

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	client         *openai.Client
	model          string
	systemPrompt   string
	promptTemplate string
}

// NewClient builds a Client from cfg. The endpoint is used as the API base
// URL, so "http://localhost:3000/api" posts to
// "http://localhost:3000/api/chat/completions".
func NewClient(cfg config.CompletionConfig) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("completion endpoint is empty")
	}

	oc := openai.DefaultConfig(cfg.Credential())
	oc.BaseURL = cfg.Endpoint
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	promptTemplate := cfg.PromptTemplate
	if promptTemplate == "" {
		promptTemplate = config.DefaultPromptTemplate
	}

	return &Client{
		client:         openai.NewClientWithConfig(oc),
		model:          cfg.Model,
		systemPrompt:   cfg.SystemPrompt,
		promptTemplate: promptTemplate,
	}, nil
}

// Complete sends text as the user message and returns the first choice's
// content as a raw text payload.
func (c *Client) Complete(ctx context.Context, text string) (suggest.Payload, error) {
	log := logging.ComponentCtx(ctx, "completion")

	prompt, err := tmpl.Render(c.promptTemplate, config.PromptTemplateData{Text: text, Model: c.model})
	if err != nil {
		return suggest.Payload{}, fmt.Errorf("render prompt: %w", err)
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if c.systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: c.systemPrompt})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt})

	log.Debug().Str("model", c.model).Int("chars", len(text)).Msg("requesting completion")

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		log.Error().Err(err).Msg("completion request failed")
		return suggest.Payload{}, fmt.Errorf("completion request: %w", err)
	}

	if len(resp.Choices) == 0 {
		log.Warn().Msg("completion returned no choices")
		return suggest.Payload{}, ErrNoChoices
	}

	log.Debug().Str("finish_reason", string(resp.Choices[0].FinishReason)).Msg("completion received")
	return suggest.Text(resp.Choices[0].Message.Content), nil
}
