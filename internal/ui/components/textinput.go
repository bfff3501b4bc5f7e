package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is a focused single-line input with lingua's prompt.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput returns a focused input that accepts up to limit runes.
func NewTextInput(placeholder string, limit int) TextInput {
	m := textinput.New()
	m.Prompt = "› "
	m.Placeholder = placeholder
	m.CharLimit = limit
	m.Focus()
	return TextInput{Model: m}
}

// NewPasswordInput returns an unfocused input that masks what is typed.
func NewPasswordInput(placeholder string, limit int) TextInput {
	t := NewTextInput(placeholder, limit)
	t.Model.EchoMode = textinput.EchoPassword
	t.Model.EchoCharacter = '•'
	t.Model.Blur()
	return t
}

func (t TextInput) Init() tea.Cmd { return t.Model.Focus() }

func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }

func (t *TextInput) Blur() { t.Model.Blur() }

func (t *TextInput) Reset() { t.Model.Reset() }

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string { return t.Model.View() }

func (t TextInput) Value() string { return t.Model.Value() }

// Take returns the trimmed value and clears the input.
func (t *TextInput) Take() string {
	v := strings.TrimSpace(t.Model.Value())
	t.Model.Reset()
	return v
}
