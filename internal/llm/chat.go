package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// completion is a vendor's raw answer.
type completion struct {
	Text  string
	Model string
	Usage Usage
	Stop  StopReason
}

// backend sends one request through a vendor SDK. Implementations
// translate the request and the vendor's errors and nothing else.
type backend interface {
	complete(ctx context.Context, model string, req Request) (completion, error)
}

// chatProvider turns a vendor backend into a Provider. Output handling
// is the same for every vendor and lives here.
type chatProvider struct {
	name    string
	model   string
	backend backend
}

func (p *chatProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if req.MaxTokens <= 0 {
		req.MaxTokens = DefaultMaxTokens
	}

	c, err := p.backend.complete(ctx, p.model, req)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Model:      c.Model,
		Usage:      c.Usage,
		StopReason: c.Stop,
	}
	if resp.Model == "" {
		resp.Model = p.model
	}
	if resp.Usage.TotalTokens == 0 {
		resp.Usage.TotalTokens = resp.Usage.InputTokens + resp.Usage.OutputTokens
	}

	if req.Schema == nil {
		resp.Content, _ = json.Marshal(c.Text)
		return resp, nil
	}

	content := json.RawMessage(unfence(c.Text))
	if c.Stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	resp.Content = content
	return resp, nil
}

func (p *chatProvider) ModelID() string { return p.model }

func (p *chatProvider) Name() string { return p.name }

// unfence strips a markdown code fence that some models put around JSON
// even when asked for structured output.
func unfence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
