package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var replySchema = &Schema{
	Name: "test-reply",
	Definition: map[string]any{
		"type":       "object",
		"properties": map[string]any{"reply": map[string]any{"type": "string"}},
		"required":   []string{"reply"},
	},
}

// serve starts a server that answers every request with status and body,
// and records the last request body.
func serve(t *testing.T, status int, header http.Header, body any) (url string, lastBody *string) {
	t.Helper()
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got = string(b)
		for k, vs := range header {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL, &got
}

func dial(t *testing.T, name, model, baseURL string) Provider {
	t.Helper()
	v, ok := lookupVendor(name)
	if !ok {
		t.Fatalf("no vendor %q", name)
	}
	b, err := v.dial(context.Background(), VendorConfig{APIKey: "test-key", BaseURL: baseURL})
	if err != nil {
		t.Fatalf("dial %s: %v", name, err)
	}
	return &chatProvider{name: name, model: v.resolve(model), backend: b}
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5-20251001",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func anthropicError(kind string) map[string]any {
	return map[string]any{
		"type":  "error",
		"error": map[string]any{"type": kind, "message": kind},
	}
}

func TestAnthropic_StructuredReply(t *testing.T) {
	url, body := serve(t, http.StatusOK, nil,
		anthropicMessage("```json\n{\"reply\":\"¡Hola! ¿Qué tal?\"}\n```", "end_turn"))
	p := dial(t, Anthropic, "claude-haiku", url)

	resp, err := p.Generate(context.Background(), Request{
		System:   "You are a Spanish conversation partner.",
		Messages: []Message{{Role: RoleUser, Content: "Hola"}},
		Schema:   replySchema,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"reply":"¡Hola! ¿Qué tal?"}` {
		t.Errorf("content = %s", resp.Content)
	}
	if resp.Usage.TotalTokens != 80 {
		t.Errorf("total tokens = %d, want 80", resp.Usage.TotalTokens)
	}
	if resp.StopReason != StopEnd {
		t.Errorf("stop = %q", resp.StopReason)
	}
	if !strings.Contains(*body, `"max_tokens":1024`) {
		t.Errorf("default max tokens not sent: %s", *body)
	}
	if !strings.Contains(*body, "claude-haiku-4-5-20251001") {
		t.Errorf("friendly model not resolved: %s", *body)
	}
}

func TestAnthropic_TruncatedStructuredOutput(t *testing.T) {
	url, _ := serve(t, http.StatusOK, nil, anthropicMessage(`{"reply":"Hol`, "max_tokens"))
	p := dial(t, Anthropic, "claude-haiku", url)

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Hola"}},
		Schema:   replySchema,
	})
	var truncated *ErrMaxTokensExceeded
	if !errors.As(err, &truncated) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestAnthropic_ErrorClassification(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		header        http.Header
		kind          string
		wantRateLimit time.Duration
		wantPermanent bool
	}{
		{"rate limited", http.StatusTooManyRequests, http.Header{"Retry-After": {"2"}}, "rate_limit_error", 2 * time.Second, false},
		{"bad key", http.StatusUnauthorized, nil, "authentication_error", 0, true},
		{"server error", http.StatusInternalServerError, nil, "api_error", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, _ := serve(t, tt.status, tt.header, anthropicError(tt.kind))
			p := dial(t, Anthropic, "claude-haiku", url)

			_, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "test"}},
			})
			if tt.status == http.StatusTooManyRequests {
				var rl *ErrRateLimit
				if !errors.As(err, &rl) {
					t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
				}
				if rl.RetryAfter != tt.wantRateLimit {
					t.Errorf("retry after = %s, want %s", rl.RetryAfter, tt.wantRateLimit)
				}
				return
			}
			var unavailable *ErrProviderUnavailable
			if !errors.As(err, &unavailable) {
				t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
			}
			if unavailable.Permanent != tt.wantPermanent {
				t.Errorf("permanent = %v, want %v", unavailable.Permanent, tt.wantPermanent)
			}
			if unavailable.Status != tt.status {
				t.Errorf("status = %d, want %d", unavailable.Status, tt.status)
			}
		})
	}
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAI_SendsSchemaAndHistory(t *testing.T) {
	url, body := serve(t, http.StatusOK, nil, chatCompletion(`{"reply":"Très bien !"}`, "stop"))
	p := dial(t, OpenAI, "gpt-4o-mini", url+"/v1")

	resp, err := p.Generate(context.Background(), Request{
		System: "You are a French conversation partner.",
		Messages: []Message{
			{Role: RoleUser, Content: "Bonjour"},
			{Role: RoleAssistant, Content: "Bonjour ! Ça va ?"},
			{Role: RoleUser, Content: "Ça va bien"},
		},
		Schema:    replySchema,
		MaxTokens: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Errorf("usage = %+v", resp.Usage)
	}

	var sent struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		ResponseFormat struct {
			Type       string `json:"type"`
			JSONSchema struct {
				Name string `json:"name"`
			} `json:"json_schema"`
		} `json:"response_format"`
	}
	if err := json.Unmarshal([]byte(*body), &sent); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	roles := make([]string, len(sent.Messages))
	for i, m := range sent.Messages {
		roles[i] = m.Role
	}
	if strings.Join(roles, ",") != "system,user,assistant,user" {
		t.Errorf("roles = %v", roles)
	}
	if sent.ResponseFormat.Type != "json_schema" || sent.ResponseFormat.JSONSchema.Name != "test-reply" {
		t.Errorf("response format = %+v", sent.ResponseFormat)
	}
}

func TestOpenAI_SchemaMismatch(t *testing.T) {
	url, _ := serve(t, http.StatusOK, nil, chatCompletion(`{"answer":"oui"}`, "stop"))
	p := dial(t, OpenAI, "gpt-4o-mini", url+"/v1")

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "test"}},
		Schema:   replySchema,
	})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestOpenAI_LengthFinishIsTruncation(t *testing.T) {
	url, _ := serve(t, http.StatusOK, nil, chatCompletion(`{"reply":"Bon`, "length"))
	p := dial(t, OpenAI, "gpt-4o-mini", url+"/v1")

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "test"}},
		Schema:   replySchema,
	})
	var truncated *ErrMaxTokensExceeded
	if !errors.As(err, &truncated) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestOpenAI_RateLimit(t *testing.T) {
	url, _ := serve(t, http.StatusTooManyRequests, nil, map[string]any{
		"error": map[string]any{"type": "tokens", "message": "slow down", "code": "rate_limit_exceeded"},
	})
	p := dial(t, OpenAI, "gpt-4o-mini", url+"/v1")

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "test"}}})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
	}
}

func TestOpenRouter_PassesModelThrough(t *testing.T) {
	url, body := serve(t, http.StatusOK, nil, chatCompletion("Hallo!", "stop"))
	p := dial(t, OpenRouter, "meta-llama/llama-3-8b", url)

	if p.Name() != OpenRouter || p.ModelID() != "meta-llama/llama-3-8b" {
		t.Fatalf("name/model = %s/%s", p.Name(), p.ModelID())
	}
	resp, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "Hallo"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text, _ := resp.Text(); text != "Hallo!" {
		t.Errorf("text = %q", text)
	}
	if !strings.Contains(*body, `"model":"meta-llama/llama-3-8b"`) {
		t.Errorf("model not passed through: %s", *body)
	}
}

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"term":  map[string]any{"type": "string", "description": "word"},
			"score": map[string]any{"type": "integer"},
			"level": map[string]any{"type": "string", "enum": []any{"Beginner", "Intermediate", "Advanced"}},
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":             []string{"term", "score"},
		"additionalProperties": false,
	}

	s := geminiSchema(def)
	if s.Type != "OBJECT" {
		t.Fatalf("type = %s", s.Type)
	}
	if len(s.Properties) != 4 {
		t.Fatalf("properties = %d", len(s.Properties))
	}
	if s.Properties["term"].Description != "word" {
		t.Errorf("description lost")
	}
	if s.Properties["score"].Type != "INTEGER" {
		t.Errorf("score type = %s", s.Properties["score"].Type)
	}
	if len(s.Properties["level"].Enum) != 3 {
		t.Errorf("enum = %v", s.Properties["level"].Enum)
	}
	if s.Properties["tags"].Items.Type != "STRING" {
		t.Errorf("items type = %s", s.Properties["tags"].Items.Type)
	}
	if strings.Join(s.Required, ",") != "term,score" {
		t.Errorf("required = %v", s.Required)
	}
}

func TestStringList(t *testing.T) {
	if got := stringList([]any{"a", 1, "b"}); strings.Join(got, ",") != "a,b" {
		t.Errorf("[]any = %v", got)
	}
	if got := stringList([]string{"x"}); len(got) != 1 {
		t.Errorf("[]string = %v", got)
	}
	if got := stringList(nil); got != nil {
		t.Errorf("nil = %v", got)
	}
}
