// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/omics-reporter/pkg/types"
)

// claudeAPIURL is the Claude API endpoint. Package-level var for test
// substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

const (
	defaultModel   = "claude-sonnet-4-5-20250929"
	defaultTimeout = 30 * time.Second

	systemPrompt = "You are an expert clinical genomics report writer."
)

// ClaudeBackend calls the Anthropic Messages API to draft the report
// body. All failure modes come back as *ServiceError.
type ClaudeBackend struct {
	APIKey string
	Model  string
	Client *http.Client
}

// NewClaudeBackend creates a backend from AI settings, filling in the
// default model and timeout where unset.
func NewClaudeBackend(cfg types.AIConfig) *ClaudeBackend {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &ClaudeBackend{
		APIKey: cfg.APIKey,
		Model:  model,
		Client: &http.Client{Timeout: timeout},
	}
}

// claudeRequest is the request body for the Claude Messages API.
type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
}

// claudeMessage is a single message in the Claude API conversation.
type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// claudeResponse is the response body from the Claude Messages API.
type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

// claudeContent is a content block in the Claude API response.
type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Generate sends the prompt and returns the concatenated text blocks of
// the response.
func (c *ClaudeBackend) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := claudeRequest{
		Model:     c.Model,
		MaxTokens: 4096,
		System:    systemPrompt,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ServiceError{Err: fmt.Errorf("marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, claudeAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &ServiceError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", &ServiceError{Err: fmt.Errorf("calling Claude API: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &ServiceError{Err: fmt.Errorf("Claude API returned %d: %s", resp.StatusCode, string(body))}
	}

	var cResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", &ServiceError{Err: fmt.Errorf("decoding Claude response: %w", err)}
	}

	var text bytes.Buffer
	for _, block := range cResp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", &ServiceError{Err: fmt.Errorf("Claude API returned empty content")}
	}
	return text.String(), nil
}
