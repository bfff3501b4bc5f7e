package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/auth"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens/home"
	"github.com/abhisek/lingua/internal/screens/login"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/tutor"
	"github.com/abhisek/lingua/internal/ui/layout"
)

// Options holds the dependencies the interactive menu needs.
type Options struct {
	Store *store.Store
	Auth  *auth.Authenticator
	Tutor *tutor.Tutor
	Log   *zap.Logger

	// Session skips the login screen when set.
	Session *auth.Session

	// LearnerName pre-fills the login form.
	LearnerName string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts    Options
	router  *router.Router
	session *auth.Session
	width   int
	height  int
}

// newAppModel starts on the home screen when already logged in, and on
// the login screen otherwise.
func newAppModel(opts Options) AppModel {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	m := AppModel{opts: opts, session: opts.Session}
	if m.session != nil {
		m.router = router.New(m.homeScreen())
	} else {
		m.router = router.New(login.New(opts.Auth, opts.LearnerName))
	}
	return m
}

func (m AppModel) homeScreen() screen.Screen {
	return home.New(m.session, m.opts.Store, m.opts.Tutor)
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case login.LoggedInMsg:
		m.session = msg.Session
		m.opts.Log.Info("learner logged in", zap.String("learner", msg.Session.Profile.Name))
		return m, router.Swap(m.homeScreen())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m, router.Back
		}
	}
	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}

	frame := layout.Frame{
		Trail:  m.router.Trail(),
		Status: m.status(),
		Hints:  m.hints(),
	}
	v.SetContent(frame.Render(m.width, m.height, m.router.View))
	return v
}

func (m AppModel) status() string {
	if m.session == nil {
		return ""
	}
	p := m.session.Profile
	return fmt.Sprintf("%s · %s", p.Name, p.Tier())
}

func (m AppModel) hints() []layout.KeyHint {
	if h, ok := m.router.Active().(screen.Hinter); ok {
		return h.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}, {Key: "Ctrl+C", Description: "Quit"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run interactive menu: %w", err)
	}
	return nil
}
