package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestScoreBarFraction(t *testing.T) {
	tests := []struct {
		value float64
		want  float64
	}{
		{0, 0},
		{50, 0.5},
		{100, 1},
		{250, 1},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := NewScoreBar("x", tt.value, 40).Fraction(); got != tt.want {
			t.Errorf("Fraction(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}

	if got := (ScoreBar{Value: 10}).Fraction(); got != 0 {
		t.Errorf("zero max should give 0, got %v", got)
	}
}

func TestScoreBarViewShowsValue(t *testing.T) {
	v := NewScoreBar("Average", 85, 40).View()
	if !strings.Contains(v, "Average") || !strings.Contains(v, "85.0") {
		t.Errorf("view missing label or value: %q", v)
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b"},
		{Label: "c", Disabled: true},
		{Label: "d"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("after up = %d, want 1", m.Selected)
	}
}

func TestMenuWrapsAround(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a", Disabled: true}, {Label: "b"}, {Label: "c"}})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 2 {
		t.Errorf("up from first = %d, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 1 {
		t.Errorf("down from last = %d, want 1", m.Selected)
	}
}

func TestMenuAllDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a", Disabled: true}})
	m, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("a disabled menu should do nothing")
	}
	if m.Selected != -1 {
		t.Errorf("selected = %d, want -1", m.Selected)
	}
}

func TestMenuDigitRunsItem(t *testing.T) {
	var ran []string
	act := func(name string) func() tea.Cmd {
		return func() tea.Cmd { ran = append(ran, name); return nil }
	}
	m := NewMenu([]MenuItem{
		{Label: "a", Action: act("a")},
		{Label: "b", Action: act("b"), Disabled: true},
		{Label: "c", Action: act("c")},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	m, _ = m.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	m, _ = m.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	if len(ran) != 1 || ran[0] != "c" {
		t.Errorf("ran = %v, want [c]", ran)
	}
	if m.Selected != 2 {
		t.Errorf("selected = %d, want 2", m.Selected)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !ran {
		t.Error("enter should run the selected action")
	}
}

func TestMenuViewShowsSelectedHint(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Review", Hint: "missed words"},
		{Label: "Quit", Hint: "bye"},
	})
	v := m.View()
	if !strings.Contains(v, "missed words") {
		t.Error("selected item hint should be shown")
	}
	if strings.Contains(v, "bye") {
		t.Error("unselected item hint should be hidden")
	}
}

func TestTextInputTake(t *testing.T) {
	in := NewTextInput("say something", 50)
	in.Model.SetValue("  hola  ")

	if got := in.Take(); got != "hola" {
		t.Errorf("Take = %q, want hola", got)
	}
	if in.Value() != "" {
		t.Errorf("input not cleared: %q", in.Value())
	}
}
