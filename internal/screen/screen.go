// Package screen defines the pages the router stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/ui/layout"
)

// Screen is one page of the interactive menu. The app draws the frame
// around it; a screen only renders its body.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body into a width×height area.
	View(width, height int) string

	// Title is the screen's breadcrumb in the header.
	Title() string
}

// Hinter replaces the default footer hints.
type Hinter interface {
	KeyHints() []layout.KeyHint
}
