// Package seed loads a small sample data set for trying lingua out.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/lingua/internal/proficiency"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/vocab"
)

// Result counts what Run inserted.
type Result struct {
	Learners int
	Words    int
	Lessons  int
	Sessions int
}

var learners = []store.NewLearner{
	{Name: "Alice", TargetLanguage: "Spanish", Level: proficiency.Beginner},
	{Name: "Bob", TargetLanguage: "French", Level: proficiency.Intermediate},
}

var words = []vocab.Word{
	{Term: "hola", Translation: "hello", PartOfSpeech: "interjection", ExampleSentence: "Hola, ¿cómo estás?"},
	{Term: "adios", Translation: "goodbye", PartOfSpeech: "interjection", ExampleSentence: "Adiós, hasta luego."},
	{Term: "gracias", Translation: "thank you", PartOfSpeech: "interjection"},
}

// Run clears learners, vocabulary, lessons and practice history, then
// inserts the sample data. Logged LLM requests are kept.
func Run(ctx context.Context, s *store.Store) (Result, error) {
	var res Result

	if err := s.Reset(ctx); err != nil {
		return res, fmt.Errorf("seed: %w", err)
	}

	for _, nl := range learners {
		if _, err := s.LearnerRepo().Create(ctx, nl); err != nil {
			return res, fmt.Errorf("seed learner %s: %w", nl.Name, err)
		}
		res.Learners++
	}

	saved := make([]vocab.Word, 0, len(words))
	for _, w := range words {
		sw, err := s.WordRepo().Create(ctx, w)
		if err != nil {
			return res, fmt.Errorf("seed word %s: %w", w.Term, err)
		}
		saved = append(saved, sw)
		res.Words++
	}

	lesson, err := s.LessonRepo().Create(ctx, vocab.Lesson{
		Title:       "Basic Greetings",
		Description: "Learn simple hello and goodbye phrases.",
		Difficulty:  1,
		Words:       saved,
	})
	if err != nil {
		return res, fmt.Errorf("seed lesson: %w", err)
	}
	res.Lessons++

	alice, err := s.LearnerRepo().ByName(ctx, "Alice")
	if err != nil {
		return res, fmt.Errorf("seed session: %w", err)
	}
	rec := alice.RecordSession(85, &lesson.ID, "Good start!", time.Now())
	if _, err := s.LearnerRepo().RecordSession(ctx, alice, rec); err != nil {
		return res, fmt.Errorf("seed session: %w", err)
	}
	res.Sessions++

	return res, nil
}
