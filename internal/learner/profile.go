// Package learner models a learner's identity and practice history.
package learner

import (
	"fmt"
	"time"

	"github.com/abhisek/lingua/internal/proficiency"
)

// PracticeRecord is one completed practice session.
type PracticeRecord struct {
	ID          int
	Score       int
	LessonID    *int
	Feedback    string
	PracticedAt time.Time
}

// Profile is a learner and their ordered practice history. The tier is
// derived from history; it is only stored so that it can be reported
// before any session has been recorded.
type Profile struct {
	ID             int
	Name           string
	TargetLanguage string
	CreatedAt      time.Time

	startTier proficiency.Tier
	tier      proficiency.Tier
	history   []PracticeRecord
}

// New returns a profile with an empty history at the given starting tier.
// An empty tier defaults to Beginner.
func New(name, language string, start proficiency.Tier) *Profile {
	if start == "" {
		start = proficiency.Beginner
	}
	return &Profile{
		Name:           name,
		TargetLanguage: language,
		CreatedAt:      time.Now(),
		startTier:      start,
		tier:           start,
	}
}

// Restore rebuilds a profile from persisted data. The tier is recomputed
// from history so that a stale stored level cannot leak through.
func Restore(id int, name, language string, start proficiency.Tier, createdAt time.Time, history []PracticeRecord) *Profile {
	p := New(name, language, start)
	p.ID = id
	p.CreatedAt = createdAt
	p.history = append([]PracticeRecord(nil), history...)
	p.reclassify()
	return p
}

// StartTier returns the tier the learner registered with.
func (p *Profile) StartTier() proficiency.Tier { return p.startTier }

// Tier returns the current proficiency tier.
func (p *Profile) Tier() proficiency.Tier { return p.tier }

// RecordSession appends a practice record and reclassifies the learner.
// Scores are not range-checked here.
func (p *Profile) RecordSession(score int, lessonID *int, feedback string, at time.Time) PracticeRecord {
	if at.IsZero() {
		at = time.Now()
	}
	rec := PracticeRecord{
		Score:       score,
		LessonID:    lessonID,
		Feedback:    feedback,
		PracticedAt: at,
	}
	p.history = append(p.history, rec)
	p.reclassify()
	return rec
}

func (p *Profile) reclassify() {
	if len(p.history) == 0 {
		p.tier = p.startTier
		return
	}
	p.tier = proficiency.ClassifyTier(proficiency.AverageScore(p.Scores()))
}

// History returns a copy of the practice records in insertion order.
func (p *Profile) History() []PracticeRecord {
	return append([]PracticeRecord(nil), p.history...)
}

// Sessions returns the number of recorded sessions.
func (p *Profile) Sessions() int { return len(p.history) }

// Scores returns the session scores as floats in insertion order.
func (p *Profile) Scores() []float64 {
	out := make([]float64, len(p.history))
	for i, r := range p.history {
		out[i] = float64(r.Score)
	}
	return out
}

func (p *Profile) AverageScore() float64 {
	return proficiency.AverageScore(p.Scores())
}

func (p *Profile) FluencyScore() float64 {
	return proficiency.FluencyScore(p.Scores())
}

// QuizPrompt returns the quiz description for the learner's current tier.
func (p *Profile) QuizPrompt() string {
	return proficiency.QuizPrompt(p.tier, p.TargetLanguage)
}

// Progress returns a one-line human summary.
func (p *Profile) Progress() string {
	return fmt.Sprintf("Progress for %s: %d sessions, average score: %.2f",
		p.Name, len(p.history), p.AverageScore())
}
