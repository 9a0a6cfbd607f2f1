// Package llm wraps the Gemini API for the game's generative
// collaborators: scenario cards, advisor text, final reports, and
// card translations. Every caller must tolerate a nil client; the
// engine carries deterministic fallbacks for all of them.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// Client is a thin Gemini wrapper. A nil *Client is valid and means
// the collaborator is disabled.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client. Returns nil (not an error) when
// apiKey is empty so callers can wire the disabled state through.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, nil
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{client: gc, model: defaultModel}, nil
}

// Enabled reports whether generative calls can be made.
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// generate runs one completion with a deadline. jsonOut requests a
// JSON response body.
func (c *Client) generate(ctx context.Context, system, prompt string, jsonOut bool, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.8)),
	}
	if system != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	if jsonOut {
		cfg.ResponseMIMEType = "application/json"
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}

// extractJSON pulls the outermost JSON object from a response that may
// carry markdown fences or prose around it.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object in response")
	}
	return s[start : end+1], nil
}
