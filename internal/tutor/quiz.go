package tutor

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/abhisek/lingua/internal/vocab"
)

// Question is a single quiz item.
type Question struct {
	// Term is the word being tested. Missed terms go to the review queue.
	Term   string
	Prompt string
	// Answer may list accepted alternatives separated by "/".
	Answer string
}

// Quiz is a list of questions plus a note for the learner when the quiz
// didn't come from the model.
type Quiz struct {
	Questions []Question
	Fallback  bool
	Note      string
}

// Grade is the result of checking answers against a quiz.
type Grade struct {
	Score   int
	Correct int
	Total   int
	Missed  []string
}

// Grade checks answers positionally. Missing answers count as wrong.
// The score is the percentage of correct answers, rounded.
func (q Quiz) Grade(answers []string) Grade {
	g := Grade{Total: len(q.Questions)}
	for i, question := range q.Questions {
		var given string
		if i < len(answers) {
			given = answers[i]
		}
		if question.Accepts(given) {
			g.Correct++
			continue
		}
		term := question.Term
		if term == "" {
			term = question.Answer
		}
		if !slices.Contains(g.Missed, term) {
			g.Missed = append(g.Missed, term)
		}
	}
	if g.Total > 0 {
		g.Score = int(math.Round(float64(g.Correct) * 100 / float64(g.Total)))
	}
	return g
}

// Accepts reports whether answer matches one of the expected answers,
// ignoring case, surrounding space and sentence punctuation.
func (q Question) Accepts(answer string) bool {
	given := normalize(answer)
	if given == "" {
		return false
	}
	for _, alt := range strings.Split(q.Answer, "/") {
		if normalize(alt) == given {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, ".!?¡¿,;:\"'")
	return strings.Join(strings.Fields(s), " ")
}

// fallbackQuiz builds a translation quiz from known words, weak terms
// first. With no vocabulary it returns the single sample question.
func fallbackQuiz(words []vocab.Word, weak []string, n int) Quiz {
	if len(words) == 0 || n <= 0 {
		return Quiz{
			Questions: []Question{{Term: "hola", Prompt: "What is 'hola'?", Answer: "hello"}},
			Fallback:  true,
			Note:      FallbackQuizNote,
		}
	}

	ordered := make([]vocab.Word, 0, len(words))
	for _, t := range weak {
		if i := slices.IndexFunc(words, func(w vocab.Word) bool { return w.Term == t }); i >= 0 {
			ordered = append(ordered, words[i])
		}
	}
	for _, w := range words {
		if !slices.Contains(weak, w.Term) {
			ordered = append(ordered, w)
		}
	}

	q := Quiz{Fallback: true, Note: "AI unavailable. Quiz built from your vocabulary."}
	for _, w := range ordered {
		if len(q.Questions) == n {
			break
		}
		q.Questions = append(q.Questions, Question{
			Term:   w.Term,
			Prompt: fmt.Sprintf("What is '%s'?", w.Term),
			Answer: w.Translation,
		})
	}
	return q
}
