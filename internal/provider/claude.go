package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/smsh-cli/smsh/internal/config"
)

const (
	defaultClaudeBaseURL   = "https://api.anthropic.com/v1"
	anthropicVersion       = "2023-06-01"
	claudeResponseToolName = "structured_response"
)

// Claude provider implementation.
type Claude struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// Anthropic API request/response types
type claudeRequest struct {
	Model       string           `json:"model"`
	MaxTokens   int              `json:"max_tokens"`
	Temperature float64          `json:"temperature"`
	System      string           `json:"system"`
	Messages    []claudeMessage  `json:"messages"`
	Tools       []claudeTool     `json:"tools"`
	ToolChoice  claudeToolChoice `json:"tool_choice"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema responseSchema `json:"input_schema"`
}

type claudeToolChoice struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type claudeResponse struct {
	Content []struct {
		Type  string          `json:"type"`
		Input structuredReply `json:"input"`
	} `json:"content"`
	Error *claudeError `json:"error,omitempty"`
}

type claudeError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewClaude creates a Claude provider bound to one credential and model.
func NewClaude(apiKey, model string, client *http.Client) *Claude {
	if client == nil {
		client = &http.Client{}
	}
	return &Claude{
		APIKey:     apiKey,
		Model:      model,
		BaseURL:    defaultClaudeBaseURL,
		HTTPClient: client,
	}
}

// Name returns the provider identifier.
func (c *Claude) Name() string {
	return config.ProviderClaude
}

// Generate requests a structured completion from the messages API. The
// response schema is enforced by forcing a tool call whose input is the
// structured object.
func (c *Claude) Generate(ctx context.Context, system, user string) (*Reply, error) {
	reqBody := claudeRequest{
		Model:       c.Model,
		MaxTokens:   512,
		Temperature: 0,
		System:      system,
		Messages: []claudeMessage{
			{Role: "user", Content: user},
		},
		Tools: []claudeTool{{
			Name:        claudeResponseToolName,
			Description: "Return the structured response",
			InputSchema: newResponseSchema(),
		}},
		ToolChoice: claudeToolChoice{Type: "tool", Name: claudeResponseToolName},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPIFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPIFailure, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyResponse
	}

	var result claudeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: status %d", ErrAPIFailure, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrAPIFailure, result.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrAPIFailure, resp.StatusCode)
	}
	if len(result.Content) == 0 {
		return nil, ErrEmptyResponse
	}

	parsed := result.Content[0].Input
	text := strings.TrimSpace(parsed.Result)
	if text == "" && !parsed.Error {
		return nil, ErrEmptyResponse
	}
	return &Reply{Text: text, Refused: parsed.Error, Model: c.Model}, nil
}
