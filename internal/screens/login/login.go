package login

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/auth"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

// LoggedInMsg is sent once credentials check out. The app swaps the
// login screen for the home screen when it sees it.
type LoggedInMsg struct {
	Session *auth.Session
}

type resultMsg struct {
	session *auth.Session
	err     error
}

// LoginScreen asks for a learner name and an optional password.
type LoginScreen struct {
	auth     *auth.Authenticator
	name     components.TextInput
	password components.TextInput
	focus    int
	busy     bool
	errMsg   string
}

var _ screen.Screen = (*LoginScreen)(nil)

// New creates a login screen. name pre-fills the learner field.
func New(a *auth.Authenticator, name string) *LoginScreen {
	s := &LoginScreen{
		auth:     a,
		name:     components.NewTextInput("learner name", 40),
		password: components.NewPasswordInput("password (if set)", 72),
	}
	s.name.Model.SetValue(name)
	return s
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.name.Init()
}

func (s *LoginScreen) Title() string {
	return "Log in"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Log in"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		s.busy = false
		if msg.err != nil {
			s.errMsg = loginError(msg.err)
			s.password.Reset()
			return s, nil
		}
		sess := msg.session
		return s, func() tea.Msg { return LoggedInMsg{Session: sess} }

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			return s, s.toggleFocus()
		case "enter":
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	if s.focus == 0 {
		s.name, cmd = s.name.Update(msg)
	} else {
		s.password, cmd = s.password.Update(msg)
	}
	return s, cmd
}

func (s *LoginScreen) toggleFocus() tea.Cmd {
	if s.focus == 0 {
		s.focus = 1
		s.name.Blur()
		return s.password.Focus()
	}
	s.focus = 0
	s.password.Blur()
	return s.name.Focus()
}

func (s *LoginScreen) submit() tea.Cmd {
	name := strings.TrimSpace(s.name.Value())
	if name == "" {
		s.errMsg = "Enter your learner name."
		return nil
	}
	s.busy = true
	s.errMsg = ""

	a, password := s.auth, s.password.Value()
	return func() tea.Msg {
		sess, err := a.Login(context.Background(), name, password)
		return resultMsg{session: sess, err: err}
	}
}

func loginError(err error) string {
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return "Unknown learner or wrong password."
	}
	return "Login failed: " + err.Error()
}

func (s *LoginScreen) View(width, height int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(10)

	rows := []string{
		theme.Title.Render("Welcome back"),
		"",
		label.Render("Learner") + s.name.View(),
		label.Render("Password") + s.password.View(),
		"",
	}
	switch {
	case s.busy:
		rows = append(rows, theme.Hint.Render("Checking..."))
	case s.errMsg != "":
		rows = append(rows, theme.Incorrect.Render(s.errMsg))
	default:
		rows = append(rows, theme.Hint.Render("New here? Run: lingua learner create --name NAME --language LANG"))
	}

	card := theme.Card.Render(strings.Join(rows, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
