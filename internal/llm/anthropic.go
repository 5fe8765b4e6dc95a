package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/taxxyapp/taxxy/internal/common"
)

// anthropicClient implements the Client interface for the Anthropic API.
type anthropicClient struct {
	client      *anthropic.Client
	model       anthropic.Model
	temperature float32
	maxTokens   int
}

// newAnthropicClient creates a new Anthropic API client.
func newAnthropicClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: anthropic API key", common.ErrMissingConfig)
	}

	model := anthropic.Model(cfg.Model)
	if cfg.Model == "" {
		model = anthropic.ModelClaude3Dot5SonnetLatest
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 300
	}

	return &anthropicClient{
		client:      anthropic.NewClient(cfg.APIKey),
		model:       model,
		temperature: float32(temperature),
		maxTokens:   maxTokens,
	}, nil
}

// Complete sends a completion request to Anthropic and returns the raw text.
func (c *anthropicClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       c.model,
		System:      req.System,
		MaxTokens:   c.maxTokens,
		Temperature: &c.temperature,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(req.User),
		},
	})
	if err != nil {
		return "", &common.RetryableError{
			Err:       fmt.Errorf("anthropic request failed: %w", err),
			Retryable: anthropicRetryable(err),
		}
	}

	text := resp.GetFirstContentText()
	if text == "" {
		return "", fmt.Errorf("no content in response")
	}

	return text, nil
}

// anthropicRetryable reports whether an Anthropic failure is worth another
// attempt. Rate limits, overload and server errors are transient; the other
// API error types (authentication, invalid request) are permanent. Transport
// failures without a status are treated as transient.
func anthropicRetryable(err error) bool {
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsRateLimitErr() || apiErr.IsOverloadedErr() || apiErr.IsApiErr()
	}

	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode == http.StatusTooManyRequests ||
			reqErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}
