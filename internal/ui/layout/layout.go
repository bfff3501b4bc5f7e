// Package layout draws the frame around every screen: a header with the
// breadcrumb trail and learner status, the body, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/ui/theme"
)

// The smallest terminal the frame is drawn in.
const (
	MinWidth  = 64
	MinHeight = 20
)

const crumbSep = " › "

type KeyHint struct {
	Key         string
	Description string
}

// Frame is the chrome of one rendered view.
type Frame struct {
	Trail  []string // screen titles, root first
	Status string   // right side of the header
	Hints  []KeyHint
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// Render draws the frame at width×height with body filling the space
// between header and footer. body receives the size it may use.
func (f Frame) Render(width, height int, body func(w, h int) string) string {
	if width < MinWidth || height < MinHeight {
		return tooSmall(width, height)
	}

	header := f.header(width)
	footer := f.footer(width)
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(body(width, h))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (f Frame) header(width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" lingua ")
	status := lipgloss.NewStyle().Foreground(theme.Accent).Render(f.Status)

	// Inside the border and one cell of padding each side.
	room := max(width-4-lipgloss.Width(brand)-lipgloss.Width(status)-2, 0)
	crumbs := lipgloss.NewStyle().Foreground(theme.Text).Render(fitTrail(f.Trail, room))

	gap := max(width-4-lipgloss.Width(brand)-lipgloss.Width(crumbs)-lipgloss.Width(status), 1)
	line := brand + crumbs + strings.Repeat(" ", gap) + status
	return bar.Width(width).Padding(0, 1).Render(line)
}

func (f Frame) footer(width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(f.Hints))
	for i, h := range f.Hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar.Width(width).Padding(0, 1).Render(strings.Join(parts, "  ·  "))
}

// fitTrail joins the trail, replacing crumbs after the root with an
// ellipsis until it fits in room cells. The active title is always kept.
func fitTrail(trail []string, room int) string {
	s := strings.Join(trail, crumbSep)
	for drop := 1; lipgloss.Width(s) > room && drop < len(trail)-1; drop++ {
		kept := append([]string{trail[0], "…"}, trail[1+drop:]...)
		s = strings.Join(kept, crumbSep)
	}
	return s
}

func tooSmall(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Terminal is %d×%d.\nLingua needs at least %d×%d.", width, height, MinWidth, MinHeight))
}
