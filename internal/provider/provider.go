package provider

import (
	"context"
	"errors"
)

// Common errors. Each dispatch makes exactly one attempt; retry policy, if
// any, belongs to the caller.
var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrAPIFailure      = errors.New("API request failed")
	ErrBadResponse     = errors.New("unexpected response from API")
	ErrEmptyResponse   = errors.New("empty response from API")
)

// Provider is one LLM backend. The set is closed (openai, claude); each
// variant builds its own request shape and parses its own response shape.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// Generate sends the framed request and returns the model's structured
	// reply. A refusal is a valid terminal outcome, not an error.
	Generate(ctx context.Context, system, user string) (*Reply, error)
}

// Reply is the model's classified output.
type Reply struct {
	Text    string // command or explanation text
	Refused bool   // model declined; Text is a human-readable reason
	Model   string // which model produced it
}

// Both providers are asked for the same structured object so that refusal is
// an explicit field rather than a guess over free text:
//
//	{ "result": "<command or explanation>", "error": <true when refusing> }

type structuredReply struct {
	Result string `json:"result"`
	Error  bool   `json:"error"`
}

type schemaProperty struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type responseSchema struct {
	Type                 string                    `json:"type"`
	Properties           map[string]schemaProperty `json:"properties"`
	Required             []string                  `json:"required"`
	AdditionalProperties bool                      `json:"additionalProperties"`
}

func newResponseSchema() responseSchema {
	return responseSchema{
		Type: "object",
		Properties: map[string]schemaProperty{
			"result": {
				Type:        "string",
				Description: "The command or explanation",
			},
			"error": {
				Type:        "boolean",
				Description: "Set to true if the request is unclear, impossible, or not a valid shell task",
			},
		},
		Required:             []string{"result", "error"},
		AdditionalProperties: false,
	}
}
