package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type anthropicBackend struct {
	client anthropic.Client
}

func dialAnthropic(_ context.Context, vc VendorConfig) (backend, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(vc.APIKey),
		// RetryProvider owns retries.
		option.WithMaxRetries(0),
	}
	if vc.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(vc.BaseURL))
	}
	return &anthropicBackend{client: anthropic.NewClient(opts...)}, nil
}

func (b *anthropicBackend) complete(ctx context.Context, model string, req Request) (completion, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(req.MaxTokens),
		Messages:  make([]anthropic.MessageParam, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == RoleAssistant {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
		}
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if req.Schema != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{Schema: req.Schema.Definition},
		}
	}

	msg, err := b.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			if apiErr.Response != nil {
				return completion{}, classify(apiErr.StatusCode, apiErr.Response.Header, err)
			}
			return completion{}, classify(apiErr.StatusCode, nil, err)
		}
		return completion{}, classify(0, nil, err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return completion{}, &ErrInvalidResponse{Err: errors.New("anthropic response has no text")}
	}

	stop := StopEnd
	if msg.StopReason == anthropic.StopReasonMaxTokens {
		stop = StopMaxTokens
	}
	return completion{
		Text:  text.String(),
		Model: string(msg.Model),
		Usage: Usage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
		},
		Stop: stop,
	}, nil
}
