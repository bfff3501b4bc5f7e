package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/vocab"
)

func TestWordCreateListByTerm(t *testing.T) {
	s := openTestStore(t)
	repo := s.WordRepo()
	ctx := context.Background()

	w, err := repo.Create(ctx, vocab.Word{Term: "hola", Translation: "hello", PartOfSpeech: "interjection"})
	require.NoError(t, err)
	assert.NotZero(t, w.ID)

	_, err = repo.Create(ctx, vocab.Word{Term: "adios", Translation: "goodbye"})
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "hola", all[0].Term)

	got, err := repo.ByTerm(ctx, "hola")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "interjection", got.PartOfSpeech)

	missing, err := repo.ByTerm(ctx, "gracias")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestWordDuplicateTerm(t *testing.T) {
	s := openTestStore(t)
	repo := s.WordRepo()
	ctx := context.Background()

	_, err := repo.Create(ctx, vocab.Word{Term: "hola", Translation: "hello"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, vocab.Word{Term: "hola", Translation: "hi"})
	assert.True(t, errors.Is(err, ErrDuplicate), "got %v", err)
}

func TestWordUpsert(t *testing.T) {
	s := openTestStore(t)
	repo := s.WordRepo()
	ctx := context.Background()

	w, created, err := repo.Upsert(ctx, vocab.Word{Term: "hola", Translation: "hello"})
	require.NoError(t, err)
	assert.True(t, created)

	w2, created, err := repo.Upsert(ctx, vocab.Word{Term: "hola", Translation: "hi", ExampleSentence: "¡Hola, amigo!"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, w.ID, w2.ID)

	got, err := repo.ByTerm(ctx, "hola")
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Translation)
	assert.Equal(t, "¡Hola, amigo!", got.ExampleSentence)
}

func TestLessonWithWords(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	hola, err := s.WordRepo().Create(ctx, vocab.Word{Term: "hola", Translation: "hello"})
	require.NoError(t, err)
	adios, err := s.WordRepo().Create(ctx, vocab.Word{Term: "adios", Translation: "goodbye"})
	require.NoError(t, err)
	_, err = s.WordRepo().Create(ctx, vocab.Word{Term: "gracias", Translation: "thank you"})
	require.NoError(t, err)

	l, err := s.LessonRepo().Create(ctx, vocab.Lesson{
		Title:       "Basic Greetings",
		Description: "Learn simple greetings",
		Words:       []vocab.Word{hola, adios},
	})
	require.NoError(t, err)
	assert.Equal(t, vocab.DefaultDifficulty, l.Difficulty)

	got, err := s.LessonRepo().Get(ctx, l.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Basic Greetings", got.Title)
	require.Len(t, got.Words, 2)
	assert.Equal(t, "hola", got.Words[0].Term)
	assert.Equal(t, "adios", got.Words[1].Term)

	list, err := s.LessonRepo().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Words)

	missing, err := s.LessonRepo().Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLessonUnknownWordRollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.LessonRepo().Create(ctx, vocab.Lesson{
		Title: "Broken",
		Words: []vocab.Word{{ID: 999, Term: "ghost"}},
	})
	require.Error(t, err)

	list, err := s.LessonRepo().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
