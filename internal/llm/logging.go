package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/store"
)

// LoggingProvider stores every request as an LLM event, tagged with the
// purpose and conversation carried by the context.
type LoggingProvider struct {
	inner  Provider
	events store.EventRepo
	log    *zap.Logger
	now    func() time.Time
}

// WithLogging wraps p with event logging. A nil logger is replaced by a
// no-op one.
func WithLogging(p Provider, events store.EventRepo, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingProvider{inner: p, events: events, log: log, now: time.Now}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := l.now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:       l.inner.Name(),
		Model:          l.inner.ModelID(),
		Purpose:        PurposeFrom(ctx),
		ConversationID: ConversationFrom(ctx),
		LatencyMs:      l.now().Sub(start).Milliseconds(),
		Success:        err == nil,
		RequestBody:    transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	log := l.log.With(
		zap.String("provider", ev.Provider),
		zap.String("model", ev.Model),
		zap.String("purpose", ev.Purpose),
		zap.Int64("latency_ms", ev.LatencyMs),
	)
	if err != nil {
		log.Warn("llm request failed", zap.Error(err))
	} else {
		log.Debug("llm request",
			zap.Int("input_tokens", ev.InputTokens),
			zap.Int("output_tokens", ev.OutputTokens))
	}

	// A failed write loses the audit record, not the answer.
	if werr := l.events.AppendLLMRequest(ctx, ev); werr != nil {
		log.Warn("store llm event", zap.Error(werr))
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) Name() string { return l.inner.Name() }

// transcript renders a request the way `lingua llm view` shows it.
func transcript(req Request) string {
	var b strings.Builder
	section := func(title, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", title, body)
	}

	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
