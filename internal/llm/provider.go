package llm

import (
	"context"
	"encoding/json"
)

// Provider sends a prompt to a language model and returns its output.
type Provider interface {
	// Generate runs one completion. When req.Schema is set the provider uses
	// its native structured-output mode and Response.Content holds JSON that
	// has been validated against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the resolved model identifier.
	ModelID() string
}

// Request is a single completion request.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, constrains the output to JSON of this shape.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default in place
	// except for OpenAI, which treats it as fully deterministic.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON a caller expects back.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "answer-verdict". It doubles as
	// the cache key for the compiled validator.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// defaultMaxTokens applies when Request.MaxTokens is zero.
const defaultMaxTokens = 512

func maxTokens(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return defaultMaxTokens
}

// finish turns raw provider output into a Response. Structured output cut
// off at the token limit is reported as ErrMaxTokensExceeded rather than
// as a schema failure.
func finish(req Request, content json.RawMessage, stop string, model string, usage Usage) (*Response, error) {
	if req.Schema != nil {
		if stop == "max_tokens" {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// resolveModel maps a friendly name such as "claude-haiku" to a model ID.
// Unknown names are passed through.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}

// statusError classifies an HTTP status from a provider SDK error.
func statusError(status int, err error) error {
	switch {
	case status == 429:
		return &ErrRateLimit{Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}
