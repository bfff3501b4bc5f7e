package convo

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/tutor"
)

func newOffline() *ConvoScreen {
	return New(tutor.New(nil, tutor.DefaultConfig(), nil), "Spanish")
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func TestSendUsesFallbackReply(t *testing.T) {
	c := newOffline()
	c.input.Model.SetValue("hola")

	_, cmd := c.Update(enter())
	if cmd == nil {
		t.Fatal("expected a tutor command")
	}
	if !c.waiting {
		t.Error("screen should wait for the reply")
	}
	if c.input.Value() != "" {
		t.Error("input should be cleared after sending")
	}

	c.Update(cmd())

	if c.waiting {
		t.Error("still waiting after reply")
	}
	if len(c.lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(c.lines))
	}
	if !c.lines[0].learner || c.lines[0].text != "hola" {
		t.Errorf("first line = %+v", c.lines[0])
	}
	if c.lines[1].text != tutor.FallbackReply || !c.lines[1].fallback {
		t.Errorf("reply line = %+v", c.lines[1])
	}
	if !strings.Contains(c.View(100, 20), "(offline)") {
		t.Error("fallback replies should be labelled")
	}
}

func TestExitPopsScreen(t *testing.T) {
	c := newOffline()
	c.input.Model.SetValue("  EXIT ")

	_, cmd := c.Update(enter())
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if !router.IsBack(cmd()) {
		t.Error("exit should pop the screen")
	}
	if len(c.lines) != 0 {
		t.Error("exit should not be sent to the tutor")
	}
}

func TestBlankInputIgnored(t *testing.T) {
	c := newOffline()
	c.input.Model.SetValue("   ")

	if _, cmd := c.Update(enter()); cmd != nil {
		t.Error("blank input should not send")
	}
}

func TestNoSecondSendWhileWaiting(t *testing.T) {
	c := newOffline()
	c.input.Model.SetValue("uno")
	c.Update(enter())

	c.input.Model.SetValue("dos")
	if _, cmd := c.Update(enter()); cmd != nil {
		t.Error("should not send while a reply is pending")
	}
}
