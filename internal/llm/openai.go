package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// openaiBackend serves OpenAI and OpenRouter, which speaks the same API.
type openaiBackend struct {
	client *openai.Client
}

func newOpenAIBackend(vc VendorConfig, defaultBaseURL string) *openaiBackend {
	cfg := openai.DefaultConfig(vc.APIKey)
	switch {
	case vc.BaseURL != "":
		cfg.BaseURL = vc.BaseURL
	case defaultBaseURL != "":
		cfg.BaseURL = defaultBaseURL
	}
	return &openaiBackend{client: openai.NewClientWithConfig(cfg)}
}

func dialOpenAI(_ context.Context, vc VendorConfig) (backend, error) {
	return newOpenAIBackend(vc, ""), nil
}

func dialOpenRouter(_ context.Context, vc VendorConfig) (backend, error) {
	return newOpenAIBackend(vc, defaultOpenRouterBaseURL), nil
}

func (b *openaiBackend) complete(ctx context.Context, model string, req Request) (completion, error) {
	chat := openai.ChatCompletionRequest{
		Model:               model,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
		Messages:            make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1),
	}
	if req.System != "" {
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return completion{}, fmt.Errorf("marshal schema %s: %w", req.Schema.Name, err)
		}
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        req.Schema.Name,
				Description: req.Schema.Description,
				Schema:      json.RawMessage(def),
				Strict:      true,
			},
		}
	}

	resp, err := b.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		var apiErr *openai.APIError
		var reqErr *openai.RequestError
		switch {
		case errors.As(err, &apiErr):
			return completion{}, classify(apiErr.HTTPStatusCode, nil, err)
		case errors.As(err, &reqErr):
			return completion{}, classify(reqErr.HTTPStatusCode, nil, err)
		}
		return completion{}, classify(0, nil, err)
	}
	if len(resp.Choices) == 0 {
		return completion{}, &ErrInvalidResponse{Err: errors.New("chat completion has no choices")}
	}

	choice := resp.Choices[0]
	stop := StopEnd
	if choice.FinishReason == openai.FinishReasonLength {
		stop = StopMaxTokens
	}
	return completion{
		Text:  choice.Message.Content,
		Model: resp.Model,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Stop: stop,
	}, nil
}
