package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendEvents(t *testing.T, repo EventRepo, events ...LLMRequestEventData) {
	t.Helper()
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(context.Background(), e))
	}
}

func TestLLMEventAppendAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendEvents(t, repo, LLMRequestEventData{
		Provider:       "anthropic",
		Model:          "claude-haiku-4-5",
		Purpose:        "quiz",
		ConversationID: "c1",
		InputTokens:    120,
		OutputTokens:   40,
		LatencyMs:      350,
		Success:        true,
		RequestBody:    "[user]\nquiz me",
		ResponseBody:   `{"questions":[]}`,
	})

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, "quiz", e.Purpose)
	assert.Equal(t, "c1", e.ConversationID)
	assert.True(t, e.Success)
	assert.False(t, e.Timestamp.IsZero())

	got, err := repo.GetLLMEvent(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"questions":[]}`, got.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLLMEventQueryFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendEvents(t, repo,
		LLMRequestEventData{Model: "m1", Purpose: "quiz", ConversationID: "a", Success: true},
		LLMRequestEventData{Model: "m1", Purpose: "grammar", ConversationID: "b", Success: true},
		LLMRequestEventData{Model: "m2", Purpose: "conversation", ConversationID: "c", Success: false, ErrorMessage: "boom"},
		LLMRequestEventData{Model: "m2", Purpose: "conversation", ConversationID: "c", Success: true},
	)

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Greater(t, all[0].Sequence, all[3].Sequence, "newest first")

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	convo, err := repo.QueryLLMEvents(ctx, QueryOpts{ConversationID: "c"})
	require.NoError(t, err)
	assert.Len(t, convo, 2)

	quiz, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz"})
	require.NoError(t, err)
	assert.Len(t, quiz, 1)

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: all[1].Sequence})
	require.NoError(t, err)
	assert.Len(t, after, 1)
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendEvents(t, repo,
		LLMRequestEventData{Model: "gpt-4o-mini", Purpose: "quiz", InputTokens: 100, OutputTokens: 10, LatencyMs: 100, Success: true},
		LLMRequestEventData{Model: "gpt-4o-mini", Purpose: "quiz", InputTokens: 200, OutputTokens: 20, LatencyMs: 300, Success: true},
		LLMRequestEventData{Model: "claude-haiku-4-5", Purpose: "grammar", InputTokens: 50, OutputTokens: 5, LatencyMs: 50, Success: true},
	)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMUsageStats{Purpose: "grammar", Calls: 1, InputTokens: 50, OutputTokens: 5, AvgLatencyMs: 50}, byPurpose[0])
	assert.Equal(t, LLMUsageStats{Purpose: "quiz", Calls: 2, InputTokens: 300, OutputTokens: 30, AvgLatencyMs: 200}, byPurpose[1])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "claude-haiku-4-5", byModel[0].Model)
	assert.Equal(t, 300, byModel[1].InputTokens)
}

func TestLLMUsageEmpty(t *testing.T) {
	s := openTestStore(t)
	stats, err := s.EventRepo().LLMUsageByPurpose(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats)
}
