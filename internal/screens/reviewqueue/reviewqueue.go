package reviewqueue

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/review"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

type loadedMsg struct {
	queue *review.Queue
	err   error
}

type missSavedMsg struct {
	term string
	err  error
}

// ReviewScreen browses the learner's weak words. Marking a word missed
// moves it to the back of the queue; sorting only changes the display.
type ReviewScreen struct {
	repo      store.ReviewRepo
	learnerID int

	queue  *review.Queue // store order
	sorted *review.Queue // alphabetical copy while sorting is on
	cursor int
	status string
	err    error
}

var _ screen.Screen = (*ReviewScreen)(nil)

// New creates a review screen that loads the queue on Init.
func New(repo store.ReviewRepo, learnerID int) *ReviewScreen {
	return &ReviewScreen{repo: repo, learnerID: learnerID}
}

func (r *ReviewScreen) Init() tea.Cmd {
	repo, id := r.repo, r.learnerID
	return func() tea.Msg {
		q, err := repo.Queue(context.Background(), id)
		return loadedMsg{queue: q, err: err}
	}
}

func (r *ReviewScreen) Title() string {
	return "Review Queue"
}

func (r *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "m", Description: "Missed again"},
		{Key: "s", Description: "Sort A-Z"},
		{Key: "Esc", Description: "Back"},
	}
}

func (r *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		r.queue, r.err = msg.queue, msg.err
		r.sorted = nil
		r.cursor = 0

	case missSavedMsg:
		if msg.err != nil {
			r.status = fmt.Sprintf("Could not save %q: %v", msg.term, msg.err)
		}

	case tea.KeyMsg:
		if r.queue == nil {
			return r, nil
		}
		switch msg.String() {
		case "up", "k":
			if r.cursor > 0 {
				r.cursor--
			}
		case "down", "j":
			if r.cursor < r.queue.Len()-1 {
				r.cursor++
			}
		case "s":
			r.sortCopy()
			r.status = "Sorted alphabetically."
		case "m":
			return r, r.markMissed()
		}
	}
	return r, nil
}

// sortCopy builds the alphabetical view from the queue's terms. The queue
// itself keeps the order the store has.
func (r *ReviewScreen) sortCopy() {
	c := review.New()
	for term := range r.queue.All() {
		c.Add(term)
	}
	c.Sort()
	r.sorted = c
}

// shown is the list on screen.
func (r *ReviewScreen) shown() *review.Queue {
	if r.sorted != nil {
		return r.sorted
	}
	return r.queue
}

// markMissed moves the selected term to the tail of the queue, returns to
// queue order and persists the miss.
func (r *ReviewScreen) markMissed() tea.Cmd {
	sel := r.nodeAt(r.cursor)
	if sel == nil {
		return nil
	}
	term := sel.Term
	n := r.queue.Search(term)
	if n == nil {
		return nil
	}
	r.queue.MoveToEnd(n)
	r.sorted = nil
	r.cursor = r.queue.Len() - 1
	r.status = fmt.Sprintf("%q moved to the back of the queue.", term)

	repo, id := r.repo, r.learnerID
	return func() tea.Msg {
		return missSavedMsg{term: term, err: repo.Miss(context.Background(), id, term)}
	}
}

func (r *ReviewScreen) nodeAt(i int) *review.Node {
	n := r.shown().Head()
	for ; n != nil && i > 0; i-- {
		n = n.Next()
	}
	return n
}

func (r *ReviewScreen) View(width, height int) string {
	var body string
	switch {
	case r.err != nil:
		body = theme.Incorrect.Render("Could not load review queue: " + r.err.Error())
	case r.queue == nil:
		body = theme.Hint.Render("Loading...")
	case r.queue.Len() == 0:
		body = theme.Hint.Render("Nothing to review. Missed quiz words show up here.")
	default:
		body = r.renderList(height - 8)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(body))
}

func (r *ReviewScreen) renderList(maxRows int) string {
	heading := "Least recently missed first"
	if r.sorted != nil {
		heading = "Alphabetical"
	}
	lines := []string{theme.Subtitle.Render(heading), ""}

	// Scroll so the cursor stays visible.
	first := 0
	if maxRows > 0 && r.cursor >= maxRows {
		first = r.cursor - maxRows + 1
	}
	i := 0
	for n := r.shown().Head(); n != nil; n = n.Next() {
		if i >= first && (maxRows <= 0 || i < first+maxRows) {
			if i == r.cursor {
				lines = append(lines, theme.Selected.Render("▸ "+n.Term))
			} else {
				lines = append(lines, theme.Unselected.Render("  "+n.Term))
			}
		}
		i++
	}

	if r.status != "" {
		lines = append(lines, "", theme.Hint.Render(r.status))
	}
	return strings.Join(lines, "\n")
}
