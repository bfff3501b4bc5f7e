// Package llm talks to the hosted language models behind the tutor. Every
// vendor is reached through the same Provider interface, and structured
// answers are checked against a JSON schema before callers see them.
package llm

import (
	"context"
	"encoding/json"
)

// DefaultMaxTokens is used when a Request leaves MaxTokens unset.
const DefaultMaxTokens = 1024

// Provider generates a completion for a Request.
type Provider interface {
	// Generate returns the model's answer. With req.Schema set, Content is
	// a JSON document that validates against it; otherwise Content is the
	// reply text encoded as a JSON string.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model requests are sent to.
	ModelID() string

	// Name is the vendor: anthropic, openai, gemini, openrouter or mock.
	Name() string
}

// Request is one call to a model.
type Request struct {
	System string

	// Messages is the dialogue, oldest first. Quizzes and grammar checks
	// send a single user turn; conversation practice sends the whole chat.
	Messages []Message

	// Schema asks for structured JSON output. Vendors that support native
	// structured output are given the schema directly.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the vendor default in place.
	Temperature float64
}

// Message is a single dialogue turn.
type Message struct {
	Role    Role
	Content string
}

// Role says who wrote a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON schema for structured output.
type Schema struct {
	// Name is kebab-case, e.g. "vocab-quiz". Compiled schemas are cached
	// by name, so two schemas must not share one.
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason is why the model stopped generating.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is a model's answer.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string // model that actually served the request
	StopReason StopReason
}

// Text decodes Content for requests made without a schema.
func (r *Response) Text() (string, error) {
	var s string
	if err := json.Unmarshal(r.Content, &s); err != nil {
		return "", &ErrInvalidResponse{Content: r.Content, Err: err}
	}
	return s, nil
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
