package tutor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/vocab"
)

func TestQuestionAccepts(t *testing.T) {
	q := Question{Term: "hola", Answer: "hello/hi"}

	tests := []struct {
		answer string
		want   bool
	}{
		{"hello", true},
		{"  Hello ", true},
		{"HI!", true},
		{"hi.", true},
		{"hey", false},
		{"", false},
		{"hello/hi", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			if got := q.Accepts(tt.answer); got != tt.want {
				t.Errorf("Accepts(%q) = %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}

func TestQuestionAccepts_MultiWord(t *testing.T) {
	q := Question{Answer: "thank you"}
	if !q.Accepts("thank   you") {
		t.Error("inner whitespace should be collapsed")
	}
}

func TestGrade(t *testing.T) {
	quiz := Quiz{Questions: []Question{
		{Term: "hola", Answer: "hello"},
		{Term: "adios", Answer: "goodbye"},
		{Term: "gracias", Answer: "thank you"},
	}}

	tests := []struct {
		name    string
		answers []string
		score   int
		correct int
		missed  []string
	}{
		{"all correct", []string{"hello", "goodbye", "thank you"}, 100, 3, nil},
		{"one wrong", []string{"hello", "bye", "thank you"}, 67, 2, []string{"adios"}},
		{"missing answers", []string{"hello"}, 33, 1, []string{"adios", "gracias"}},
		{"none", nil, 0, 0, []string{"hola", "adios", "gracias"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := quiz.Grade(tt.answers)
			assert.Equal(t, tt.score, g.Score)
			assert.Equal(t, tt.correct, g.Correct)
			assert.Equal(t, 3, g.Total)
			assert.Equal(t, tt.missed, g.Missed)
		})
	}
}

func TestGrade_EmptyQuiz(t *testing.T) {
	g := Quiz{}.Grade([]string{"x"})
	assert.Equal(t, Grade{}, g)
}

func TestGrade_MissedTermFallsBackToAnswer(t *testing.T) {
	q := Quiz{Questions: []Question{
		{Answer: "perro"},
		{Answer: "perro"},
	}}
	g := q.Grade(nil)
	assert.Equal(t, []string{"perro"}, g.Missed, "missed terms are reported once")
}

func TestFallbackQuiz_WeakTermsFirst(t *testing.T) {
	q := fallbackQuiz(testWords(), []string{"gracias", "unknown"}, 2)

	require.Len(t, q.Questions, 2)
	assert.Equal(t, "gracias", q.Questions[0].Term)
	assert.Equal(t, "hola", q.Questions[1].Term)
	assert.True(t, q.Fallback)
}

func TestFallbackQuiz_NoWords(t *testing.T) {
	q := fallbackQuiz([]vocab.Word{}, nil, 3)
	require.Len(t, q.Questions, 1)
	assert.Equal(t, "What is 'hola'?", q.Questions[0].Prompt)
	assert.Equal(t, FallbackQuizNote, q.Note)
}
