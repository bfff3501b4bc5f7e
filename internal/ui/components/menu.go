package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/ui/theme"
)

type MenuItem struct {
	Label    string
	Hint     string // shown beside the item while it is selected
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. Arrow keys wrap around and skip
// disabled items; digits 1-9 run the matching item directly.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	return m
}

// move steps the selection by dir until it lands on an enabled item.
// The selection stays put when no other item is enabled.
func (m *Menu) move(dir int) {
	n := len(m.Items)
	for i := 1; i <= n; i++ {
		j := ((m.Selected+dir*i)%n + n) % n
		if !m.Items[j].Disabled {
			m.Selected = j
			return
		}
	}
}

func (m Menu) run(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) || m.Items[i].Disabled || m.Items[i].Action == nil {
		return nil
	}
	return m.Items[i].Action()
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch k := key.String(); k {
	case "up", "k":
		m.move(-1)
	case "down", "j", "tab":
		m.move(1)
	case "enter":
		return m, m.run(m.Selected)
	default:
		if d, err := strconv.Atoi(k); err == nil && d >= 1 && d <= 9 && !m.itemDisabled(d-1) {
			m.Selected = d - 1
			return m, m.run(d - 1)
		}
	}
	return m, nil
}

func (m Menu) itemDisabled(i int) bool {
	return i >= len(m.Items) || m.Items[i].Disabled
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		label := strconv.Itoa(i+1) + ". " + item.Label
		switch {
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("▸ " + label))
			if item.Hint != "" {
				b.WriteString(theme.Hint.Render("  " + item.Hint))
			}
		case item.Disabled:
			b.WriteString(theme.Hint.Render("  " + label))
		default:
			b.WriteString(theme.Unselected.Render("  " + label))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
