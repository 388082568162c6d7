// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inference calls an OpenAI-compatible chat-completions endpoint.
// It speaks the minimal contract the pipeline needs: one model, a list of
// role/content messages, an optional temperature, text back.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/meshintel/research-assistant/internal/httputil"
)

// DefaultBaseURL is the Groq OpenAI-compatible API root.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes one chat-completion call. It is constructed fresh per
// stage and doubles as the wire body. Temperature nil means the endpoint
// default is used and the field is omitted from the payload.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
}

// Response holds the text of the first completion choice.
type Response struct {
	Text string
}

// Client calls the chat-completions endpoint. Construction is cheap; the
// caller owns the instance for the lifetime of a session.
type Client struct {
	// APIKey is sent as a bearer token. It is never logged.
	APIKey string

	// BaseURL overrides DefaultBaseURL, mainly for tests and self-hosted
	// endpoints.
	BaseURL string

	// MaxRetries is the number of rate-limit retries per request. Zero
	// means a single attempt.
	MaxRetries int

	// Client is the HTTP client to use; nil falls back to
	// http.DefaultClient.
	Client *http.Client
}

// Chat-completions response body. Only the fields the pipeline consumes.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message Message `json:"message"`
}

// Complete issues one chat-completion request and returns the first
// choice's text. Non-2xx responses become errors carrying the status code
// and the raw response body, which callers surface to the user as-is.
func (c *Client) Complete(ctx context.Context, req Request) (Response, error) {
	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("marshaling request: %w", err)
	}

	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return Response{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, httpReq, c.MaxRetries)
	if err != nil {
		return Response{}, fmt.Errorf("calling chat completions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Response{}, fmt.Errorf("chat completions returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return Response{}, fmt.Errorf("parsing chat completions response: %w", err)
	}

	if len(cResp.Choices) == 0 {
		return Response{}, fmt.Errorf("chat completions returned no choices")
	}

	return Response{Text: cResp.Choices[0].Message.Content}, nil
}
