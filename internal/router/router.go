// Package router keeps the stack of open screens.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/screen"
)

type (
	openMsg struct{ s screen.Screen }
	swapMsg struct{ s screen.Screen }
	backMsg struct{}
	homeMsg struct{}
)

// ResumedMsg is delivered to a screen that becomes active again after the
// screens above it were closed.
type ResumedMsg struct{}

// Open is a command that opens s on top of the current screen.
func Open(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return openMsg{s} }
}

// Swap is a command that replaces the current screen with s.
func Swap(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return swapMsg{s} }
}

// Back is a command that closes the current screen.
func Back() tea.Msg { return backMsg{} }

// Home is a command that closes every screen above the first.
func Home() tea.Msg { return homeMsg{} }

// IsBack reports whether msg is the message Back produces.
func IsBack(msg tea.Msg) bool {
	_, ok := msg.(backMsg)
	return ok
}

// Router holds the open screens; the last one is active. The first
// screen is never closed.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Trail lists the titles of the open screens, root first.
func (r *Router) Trail() []string {
	titles := make([]string, len(r.stack))
	for i, s := range r.stack {
		titles[i] = s.Title()
	}
	return titles
}

func (r *Router) open(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

func (r *Router) swap(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// truncate closes screens until depth n remains and resumes the new top.
func (r *Router) truncate(n int) tea.Cmd {
	if n < 1 || n >= len(r.stack) {
		return nil
	}
	clear(r.stack[n:])
	r.stack = r.stack[:n]
	return r.forward(ResumedMsg{})
}

func (r *Router) forward(msg tea.Msg) tea.Cmd {
	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

// Update applies navigation messages and passes everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case openMsg:
		return r.open(msg.s)
	case swapMsg:
		return r.swap(msg.s)
	case backMsg:
		return r.truncate(len(r.stack) - 1)
	case homeMsg:
		return r.truncate(1)
	}
	return r.forward(msg)
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
