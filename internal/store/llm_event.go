package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var llmEventColumns = []string{
	"id", "sequence", "timestamp", "provider", "model", "purpose", "conversation_id",
	"input_tokens", "output_tokens", "latency_ms", "success", "error_message",
	"request_body", "response_body",
}

// eventRepo implements EventRepo backed by the global sequence counter.
type eventRepo struct {
	s *Store
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.s.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.s.insert(ctx, r.s.x, r.s.builder().Insert(LlmRequestEventsTable.Name).
		Columns(
			"sequence", "timestamp", "provider", "model", "purpose", "conversation_id",
			"input_tokens", "output_tokens", "latency_ms", "success", "error_message",
			"request_body", "response_body",
		).
		Values(
			seqNum, time.Now().UTC(), data.Provider, data.Model, data.Purpose, data.ConversationID,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage,
			data.RequestBody, data.ResponseBody,
		))
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	sel := r.s.builder().Select(llmEventColumns...).
		From(entsql.Table(LlmRequestEventsTable.Name)).
		OrderBy(entsql.Desc("sequence"))

	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Purpose != "" {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}
	if opts.ConversationID != "" {
		sel.Where(entsql.EQ("conversation_id", opts.ConversationID))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	var out []LLMRequestEventRecord
	if err := selectAll(ctx, r.s.x, &out, sel); err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error) {
	var e LLMRequestEventRecord
	sel := r.s.builder().Select(llmEventColumns...).
		From(entsql.Table(LlmRequestEventsTable.Name)).
		Where(entsql.EQ("id", id))
	found, err := get(ctx, r.s.x, &e, sel)
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &e, nil
}

// usageRow is shared by the per-purpose and per-model aggregates. Sums
// and averages come back as floats or numeric strings depending on the
// driver, so they are scanned as float64.
type usageRow struct {
	Key          string  `db:"key"`
	Calls        int     `db:"calls"`
	InputTokens  float64 `db:"input_tokens"`
	OutputTokens float64 `db:"output_tokens"`
	AvgLatency   float64 `db:"avg_latency"`
}

func (r *eventRepo) usageBy(ctx context.Context, column string) ([]usageRow, error) {
	sel := r.s.builder().Select(
		entsql.As(column, "key"),
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
		entsql.As(entsql.Avg("latency_ms"), "avg_latency"),
	).
		From(entsql.Table(LlmRequestEventsTable.Name)).
		GroupBy(column).
		OrderBy(column)

	var rows []usageRow
	if err := selectAll(ctx, r.s.x, &rows, sel); err != nil {
		return nil, fmt.Errorf("LLM usage by %s: %w", column, err)
	}
	return rows, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	rows, err := r.usageBy(ctx, "purpose")
	if err != nil {
		return nil, err
	}
	out := make([]LLMUsageStats, len(rows))
	for i, row := range rows {
		out[i] = LLMUsageStats{
			Purpose:      row.Key,
			Calls:        row.Calls,
			InputTokens:  int(row.InputTokens),
			OutputTokens: int(row.OutputTokens),
			AvgLatencyMs: int64(row.AvgLatency),
		}
	}
	return out, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	rows, err := r.usageBy(ctx, "model")
	if err != nil {
		return nil, err
	}
	out := make([]LLMModelUsage, len(rows))
	for i, row := range rows {
		out[i] = LLMModelUsage{
			Model:        row.Key,
			Calls:        row.Calls,
			InputTokens:  int(row.InputTokens),
			OutputTokens: int(row.OutputTokens),
		}
	}
	return out, nil
}
