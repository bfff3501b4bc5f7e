package convo

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/tutor"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

// ExitWord ends the conversation.
const ExitWord = "exit"

type replyMsg struct {
	reply tutor.Reply
}

type line struct {
	learner  bool
	text     string
	fallback bool
}

// ConvoScreen runs a free conversation with the tutor in the learner's
// target language.
type ConvoScreen struct {
	conv    *tutor.Conversation
	input   components.TextInput
	lines   []line
	waiting bool
}

var _ screen.Screen = (*ConvoScreen)(nil)

// New starts a conversation in language.
func New(t *tutor.Tutor, language string) *ConvoScreen {
	return &ConvoScreen{
		conv:  t.NewConversation(language),
		input: components.NewTextInput("say something, or type exit", 200),
	}
}

func (c *ConvoScreen) Init() tea.Cmd {
	return c.input.Init()
}

func (c *ConvoScreen) Title() string {
	return "Conversation · " + c.conv.Language
}

func (c *ConvoScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *ConvoScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		c.waiting = false
		c.lines = append(c.lines, line{text: msg.reply.Text, fallback: msg.reply.Fallback})
		return c, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return c, c.send()
		}
		if c.waiting {
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *ConvoScreen) send() tea.Cmd {
	if c.waiting {
		return nil
	}
	text := c.input.Take()
	if text == "" {
		return nil
	}
	if strings.EqualFold(text, ExitWord) {
		return router.Back
	}

	c.lines = append(c.lines, line{learner: true, text: text})
	c.waiting = true

	conv := c.conv
	return func() tea.Msg {
		return replyMsg{reply: conv.Say(context.Background(), text)}
	}
}

func (c *ConvoScreen) View(width, height int) string {
	var rendered []string
	for _, l := range c.lines {
		if l.learner {
			rendered = append(rendered, theme.LearnerLine.Render("You: ")+theme.Body.Render(l.text))
			continue
		}
		s := theme.PartnerLine.Render("Tutor: " + l.text)
		if l.fallback {
			s += " " + theme.FallbackTag.Render("(offline)")
		}
		rendered = append(rendered, s)
	}
	if c.waiting {
		rendered = append(rendered, theme.Hint.Render("Tutor is typing..."))
	}
	if len(rendered) == 0 {
		rendered = append(rendered, theme.Hint.Render("Start the conversation in "+c.conv.Language+"."))
	}

	// Keep the latest lines that fit above the input.
	room := max(height-4, 1)
	if len(rendered) > room {
		rendered = rendered[len(rendered)-room:]
	}

	transcript := lipgloss.NewStyle().
		Width(width-4).
		Height(room).
		Padding(0, 2).
		Render(strings.Join(rendered, "\n"))

	return transcript + "\n\n  " + c.input.View()
}
