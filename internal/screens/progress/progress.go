package progress

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/learner"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/theme"
)

// recentLimit is how many sessions the screen lists.
const recentLimit = 8

type loadedMsg struct {
	profile *learner.Profile
	err     error
}

// ProgressScreen shows a learner's tier, scores and recent sessions.
type ProgressScreen struct {
	learners  store.LearnerRepo
	learnerID int

	profile *learner.Profile
	err     error
}

var _ screen.Screen = (*ProgressScreen)(nil)

// New creates a progress screen that loads the learner on Init.
func New(learners store.LearnerRepo, learnerID int) *ProgressScreen {
	return &ProgressScreen{learners: learners, learnerID: learnerID}
}

func (p *ProgressScreen) Init() tea.Cmd {
	repo, id := p.learners, p.learnerID
	return func() tea.Msg {
		prof, err := repo.Get(context.Background(), id)
		if err == nil && prof == nil {
			err = fmt.Errorf("learner %d no longer exists", id)
		}
		return loadedMsg{profile: prof, err: err}
	}
}

func (p *ProgressScreen) Title() string {
	return "Progress"
}

func (p *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(loadedMsg); ok {
		p.profile, p.err = msg.profile, msg.err
	}
	return p, nil
}

func (p *ProgressScreen) View(width, height int) string {
	var body string
	switch {
	case p.err != nil:
		body = theme.Incorrect.Render("Could not load progress: " + p.err.Error())
	case p.profile == nil:
		body = theme.Hint.Render("Loading...")
	default:
		body = p.render(min(width-8, 70))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(body))
}

func (p *ProgressScreen) render(w int) string {
	prof := p.profile
	tier := prof.Tier().String()

	lines := []string{
		theme.Title.Render(prof.Name + " · " + prof.TargetLanguage),
		"",
		theme.Body.Render(prof.Progress()),
		"Level: " + theme.TierStyle(tier).Render(tier),
		"",
		components.NewScoreBar("Average", prof.AverageScore(), w).View(),
		components.NewScoreBar("Fluency", prof.FluencyScore(), w).View(),
		"",
	}

	history := prof.History()
	if len(history) == 0 {
		lines = append(lines, theme.Hint.Render("No practice sessions yet."))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, theme.Subtitle.Render("Recent sessions"))
	for i := len(history) - 1; i >= 0 && i >= len(history)-recentLimit; i-- {
		rec := history[i]
		score := theme.Correct
		if rec.Score < 70 {
			score = theme.Incorrect
		}
		line := fmt.Sprintf("%s  %s", rec.PracticedAt.Local().Format("2006-01-02 15:04"),
			score.Render(fmt.Sprintf("%3d", rec.Score)))
		if rec.Feedback != "" {
			line += "  " + theme.Hint.Render(rec.Feedback)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
