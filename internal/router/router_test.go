package router

import (
	"slices"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/screen"
)

type page struct {
	title   string
	inits   int
	resumed int
	got     []tea.Msg
}

func (p *page) Init() tea.Cmd {
	p.inits++
	return nil
}

func (p *page) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(ResumedMsg); ok {
		p.resumed++
	}
	p.got = append(p.got, msg)
	return p, nil
}

func (p *page) View(int, int) string { return p.title }
func (p *page) Title() string        { return p.title }

// run executes a navigation command the way the program would.
func run(r *Router, cmd tea.Cmd) {
	r.Update(cmd())
}

func TestOpenAndBack(t *testing.T) {
	home, words := &page{title: "Home"}, &page{title: "Words"}
	r := New(home)

	run(r, Open(words))
	if r.Depth() != 2 || r.Active() != words || words.inits != 1 {
		t.Fatalf("depth=%d active=%q inits=%d", r.Depth(), r.Active().Title(), words.inits)
	}
	if got := r.Trail(); !slices.Equal(got, []string{"Home", "Words"}) {
		t.Errorf("trail = %v", got)
	}

	run(r, Back)
	if r.Active() != home {
		t.Fatalf("active = %q after back", r.Active().Title())
	}
	if home.resumed != 1 {
		t.Errorf("home resumed %d times, want 1", home.resumed)
	}
}

func TestBackKeepsRoot(t *testing.T) {
	home := &page{title: "Home"}
	r := New(home)

	run(r, Back)
	if r.Depth() != 1 || r.Active() != home {
		t.Fatal("back must not close the root screen")
	}
	if home.resumed != 0 {
		t.Error("root should not be resumed when nothing closed")
	}
}

func TestHomeClosesEverythingAboveRoot(t *testing.T) {
	home := &page{title: "Home"}
	r := New(home)
	run(r, Open(&page{title: "Review"}))
	run(r, Open(&page{title: "Word"}))

	run(r, Home)
	if r.Depth() != 1 || r.Active() != home || home.resumed != 1 {
		t.Fatalf("depth=%d resumed=%d", r.Depth(), home.resumed)
	}
}

func TestSwapKeepsDepth(t *testing.T) {
	login, home := &page{title: "Login"}, &page{title: "Home"}
	r := New(login)

	run(r, Swap(home))
	if r.Depth() != 1 || r.Active() != home || home.inits != 1 {
		t.Fatalf("depth=%d active=%q", r.Depth(), r.Active().Title())
	}
}

func TestOtherMessagesReachActiveScreen(t *testing.T) {
	home, words := &page{title: "Home"}, &page{title: "Words"}
	r := New(home)
	run(r, Open(words))

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if len(words.got) != 1 || len(home.got) != 0 {
		t.Errorf("words got %d, home got %d", len(words.got), len(home.got))
	}
	if r.View(10, 10) != "Words" {
		t.Errorf("view = %q", r.View(10, 10))
	}
}

func TestIsBack(t *testing.T) {
	if !IsBack(Back()) || IsBack(Home()) {
		t.Error("IsBack should recognise only Back")
	}
}
