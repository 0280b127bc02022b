// Package aiclient talks to an OpenAI-compatible chat-completion endpoint.
package aiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/daybook-app/daybook/internal/model"
)

var (
	// ErrCredentialNotReady is returned while the API credential has not
	// been resolved yet.
	ErrCredentialNotReady = errors.New("api credential not loaded")
	// ErrInvalidResponse covers transport failures, non-2xx statuses and
	// undecodable payloads. Callers receive one terminal result per call;
	// there is no retry.
	ErrInvalidResponse = errors.New("invalid completion response")
)

// Client issues one-shot chat-completion calls. The credential is written
// once by Resolve and read-only afterwards; calls are otherwise
// independent.
type Client struct {
	http       *resty.Client
	model      string
	credential string
	source     CredentialSource
}

// New builds a client against baseURL with a bounded per-call timeout.
func New(baseURL, model string, timeout time.Duration, source CredentialSource) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &Client{http: c, model: model, source: source}
}

// Resolve loads the credential from the configured source. It is called
// once at startup; until it succeeds every Complete call fails with
// ErrCredentialNotReady.
func (c *Client) Resolve(ctx context.Context) error {
	key, err := c.source.APIKey(ctx)
	if err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("%w: credential source returned empty key", ErrCredentialNotReady)
	}
	c.credential = key
	return nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a system+user prompt pair and returns the trimmed reply
// text. Temperature must be in [0,2] and maxTokens positive.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	if systemPrompt == "" || userPrompt == "" {
		return "", fmt.Errorf("%w: prompts must be non-empty", model.ErrValidation)
	}
	if temperature < 0 || temperature > 2 {
		return "", fmt.Errorf("%w: temperature %v outside [0,2]", model.ErrValidation, temperature)
	}
	if maxTokens <= 0 {
		return "", fmt.Errorf("%w: maxTokens must be positive", model.ErrValidation)
	}
	if c.credential == "" {
		return "", ErrCredentialNotReady
	}

	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.credential).
		SetBody(&body).
		Post("/v1/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrInvalidResponse, resp.StatusCode())
	}

	var out chatResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrInvalidResponse, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrInvalidResponse)
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
