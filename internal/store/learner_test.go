package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/proficiency"
	"github.com/abhisek/lingua/internal/vocab"
)

func TestLearnerCreateAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.LearnerRepo()
	ctx := context.Background()

	p, err := repo.Create(ctx, NewLearner{Name: "Alice", TargetLanguage: "Spanish", Level: proficiency.Intermediate})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, proficiency.Intermediate, p.Tier())

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "Spanish", got.TargetLanguage)
	assert.Equal(t, proficiency.Intermediate, got.Tier())
	assert.Empty(t, got.History())

	byName, err := repo.ByName(ctx, "Alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, p.ID, byName.ID)
}

func TestLearnerCreateDefaultsToBeginner(t *testing.T) {
	s := openTestStore(t)
	p, err := s.LearnerRepo().Create(context.Background(), NewLearner{Name: "Bob", TargetLanguage: "French"})
	require.NoError(t, err)
	assert.Equal(t, proficiency.Beginner, p.Tier())
}

func TestLearnerMissingIsNil(t *testing.T) {
	s := openTestStore(t)
	repo := s.LearnerRepo()
	ctx := context.Background()

	p, err := repo.Get(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = repo.ByName(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestLearnerDuplicateName(t *testing.T) {
	s := openTestStore(t)
	repo := s.LearnerRepo()
	ctx := context.Background()

	_, err := repo.Create(ctx, NewLearner{Name: "Alice", TargetLanguage: "Spanish"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, NewLearner{Name: "Alice", TargetLanguage: "German"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate), "got %v", err)
}

func TestLearnerCountAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.LearnerRepo()
	ctx := context.Background()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	for _, name := range []string{"Carol", "Alice", "Bob"} {
		_, err := repo.Create(ctx, NewLearner{Name: name, TargetLanguage: "Spanish"})
		require.NoError(t, err)
	}

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Alice", all[0].Name)
	assert.Equal(t, "Carol", all[2].Name)
}

func TestRecordSessionPersistsHistoryAndTier(t *testing.T) {
	s := openTestStore(t)
	repo := s.LearnerRepo()
	ctx := context.Background()

	p, err := repo.Create(ctx, NewLearner{Name: "Alice", TargetLanguage: "Spanish"})
	require.NoError(t, err)

	lesson, err := s.LessonRepo().Create(ctx, vocab.Lesson{Title: "Basic Greetings"})
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, score := range []int{95, 99} {
		rec := p.RecordSession(score, &lesson.ID, "ok", base.Add(time.Duration(i)*time.Hour))
		id, err := repo.RecordSession(ctx, p, rec)
		require.NoError(t, err)
		assert.NotZero(t, id)
	}
	require.Equal(t, proficiency.Advanced, p.Tier())

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.History(), 2)
	assert.Equal(t, 95, got.History()[0].Score)
	assert.Equal(t, 99, got.History()[1].Score)
	require.NotNil(t, got.History()[0].LessonID)
	assert.Equal(t, lesson.ID, *got.History()[0].LessonID)
	assert.Equal(t, proficiency.Advanced, got.Tier())

	var cached string
	require.NoError(t, s.DB().QueryRow(`SELECT proficiency_level FROM learners WHERE id = ?`, p.ID).Scan(&cached))
	assert.Equal(t, "Advanced", cached)
}

func TestRecordSessionUnsavedLearner(t *testing.T) {
	s := openTestStore(t)
	p, _ := s.LearnerRepo().Create(context.Background(), NewLearner{Name: "Alice", TargetLanguage: "Spanish"})
	p.ID = 0
	rec := p.RecordSession(50, nil, "", time.Time{})
	_, err := s.LearnerRepo().RecordSession(context.Background(), p, rec)
	assert.Error(t, err)
}

func TestListIncludesHistory(t *testing.T) {
	s := openTestStore(t)
	repo := s.LearnerRepo()
	ctx := context.Background()

	alice, err := repo.Create(ctx, NewLearner{Name: "Alice", TargetLanguage: "Spanish"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, NewLearner{Name: "Bob", TargetLanguage: "French", Level: proficiency.Intermediate})
	require.NoError(t, err)

	_, err = repo.RecordSession(ctx, alice, alice.RecordSession(85, nil, "Good start!", time.Time{}))
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].Sessions())
	assert.Equal(t, proficiency.Intermediate, all[0].Tier())
	assert.Equal(t, 0, all[1].Sessions())
	assert.Equal(t, proficiency.Intermediate, all[1].Tier())
}

func TestDeleteCascades(t *testing.T) {
	s := openTestStore(t)
	repo := s.LearnerRepo()
	ctx := context.Background()

	p, err := repo.Create(ctx, NewLearner{Name: "Alice", TargetLanguage: "Spanish"})
	require.NoError(t, err)
	_, err = repo.RecordSession(ctx, p, p.RecordSession(70, nil, "", time.Time{}))
	require.NoError(t, err)
	require.NoError(t, s.ReviewRepo().Add(ctx, p.ID, "hola"))

	require.NoError(t, repo.Delete(ctx, "Alice"))

	var sessions, items int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM practice_sessions`).Scan(&sessions))
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM review_items`).Scan(&items))
	assert.Zero(t, sessions)
	assert.Zero(t, items)

	err = repo.Delete(ctx, "Alice")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestPassword(t *testing.T) {
	s := openTestStore(t)
	repo := s.LearnerRepo()
	ctx := context.Background()

	p, err := repo.Create(ctx, NewLearner{Name: "Alice", TargetLanguage: "Spanish", PasswordHash: "h1"})
	require.NoError(t, err)

	h, err := repo.PasswordHash(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "h1", h)

	require.NoError(t, repo.SetPassword(ctx, p.ID, "h2"))
	h, err = repo.PasswordHash(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "h2", h)

	_, err = repo.PasswordHash(ctx, 999)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(repo.SetPassword(ctx, 999, "x"), ErrNotFound))
}
