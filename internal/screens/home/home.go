package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/auth"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens/convo"
	"github.com/abhisek/lingua/internal/screens/progress"
	"github.com/abhisek/lingua/internal/screens/reviewqueue"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/tutor"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/theme"
)

// reviewItem is the menu index of the review queue entry.
const reviewItem = 1

type reviewCountMsg struct {
	n   int
	err error
}

// HomeScreen is the main menu shown after login.
type HomeScreen struct {
	session *auth.Session
	tutor   *tutor.Tutor
	reviews store.ReviewRepo
	menu    components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen for the session's learner.
func New(sess *auth.Session, st *store.Store, t *tutor.Tutor) *HomeScreen {
	p := sess.Profile

	items := []components.MenuItem{
		{Label: "Conversation practice", Hint: "chat with your tutor", Action: func() tea.Cmd {
			return router.Open(convo.New(t, p.TargetLanguage))
		}},
		{Label: "Review queue", Hint: "words you keep missing", Action: func() tea.Cmd {
			return router.Open(reviewqueue.New(st.ReviewRepo(), p.ID))
		}},
		{Label: "Progress", Hint: "scores and level", Action: func() tea.Cmd {
			return router.Open(progress.New(st.LearnerRepo(), p.ID))
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		session: sess,
		tutor:   t,
		reviews: st.ReviewRepo(),
		menu:    components.NewMenu(items),
	}
}

// Init counts the review queue for the menu hint.
func (h *HomeScreen) Init() tea.Cmd {
	repo, id := h.reviews, h.session.Profile.ID
	return func() tea.Msg {
		items, err := repo.Items(context.Background(), id)
		return reviewCountMsg{n: len(items), err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.ResumedMsg:
		return h, h.Init()
	case reviewCountMsg:
		if msg.err == nil {
			h.menu.Items[reviewItem].Hint = reviewHint(msg.n)
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	p := h.session.Profile

	sections := []string{
		theme.Title.Render("Hola, " + p.Name + "!"),
		theme.Subtitle.Render("Learning " + p.TargetLanguage),
		"",
		lipgloss.NewStyle().Width(min(width-10, 60)).Foreground(theme.TextDim).Render(p.QuizPrompt()),
		"",
		h.menu.View(),
	}
	if !h.tutor.Available() {
		sections = append(sections, theme.FallbackTag.Render("AI tutor offline: replies are canned samples."))
	}

	card := theme.Card.Render(strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func reviewHint(n int) string {
	switch n {
	case 0:
		return "nothing to review"
	case 1:
		return "1 word to review"
	}
	return fmt.Sprintf("%d words to review", n)
}
