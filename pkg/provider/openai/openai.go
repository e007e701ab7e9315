// Package openai adapts the official OpenAI SDK to the single-shot
// completion call the client needs.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/recall-ai/recall/pkg/models"
)

// ErrAPIKeyNotSet is returned when constructing a client without an API key.
var ErrAPIKeyNotSet = errors.New("API key not set")

// Result is the outcome of one chat completion call.
type Result struct {
	Text  string
	Model string
	Usage *models.Usage
}

// Client issues one chat completion per call: a single user-role message
// carrying the full prompt, no retry, no streaming. Timeout behavior is
// whatever the underlying HTTP client does unless the caller's context
// says otherwise.
type Client struct {
	client openai.Client
	model  string
}

// New creates a Client for the given model. baseURL may be empty for the
// public API; tests point it at a local server.
func New(apiKey, model, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyNotSet
	}

	// The SDK retries transient failures by default; this client makes
	// exactly one attempt per call.
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Complete sends the prompt as the sole message and returns the text of
// the first choice. Errors come back unchanged in meaning: wrapped for
// context, never retried, never replaced with a fallback response.
func (c *Client) Complete(ctx context.Context, prompt string) (Result, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("chat completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return Result{}, fmt.Errorf("no completion choices returned")
	}

	return Result{
		Text:  completion.Choices[0].Message.Content,
		Model: string(completion.Model),
		Usage: &models.Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}, nil
}
