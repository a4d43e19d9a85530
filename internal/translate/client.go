package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// defaultTimeout bounds a single completion attempt; a request that has not
// answered by then counts as a failed attempt.
const defaultTimeout = 60 * time.Second

// Completer issues one text completion. Implemented by CompletionClient and
// by fakes in tests.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// CompletionClient talks to an OpenAI-compatible chat completions endpoint.
type CompletionClient struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

// ClientOption configures the completion client.
type ClientOption func(*CompletionClient)

// WithTimeout overrides the per-attempt request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *CompletionClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewCompletionClient creates a client for the given completions endpoint.
func NewCompletionClient(endpoint, apiKey, model string, opts ...ClientOption) *CompletionClient {
	c := &CompletionClient{
		endpoint:   strings.TrimSpace(endpoint),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends one request with the system instruction and the text as the
// sole user content and returns the first completion's text, trimmed.
func (c *CompletionClient) Complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
