package review

import (
	"slices"
	"testing"
)

func queueOf(terms ...string) *Queue {
	q := New()
	for _, t := range terms {
		q.Add(t)
	}
	return q
}

// checkLinks walks the chain in both directions and verifies the
// head/tail invariants.
func checkLinks(t *testing.T, q *Queue) {
	t.Helper()
	if q.Len() == 0 {
		if q.Head() != nil || q.Tail() != nil {
			t.Fatalf("empty queue has head=%v tail=%v", q.Head(), q.Tail())
		}
		return
	}
	if q.Head().Prev() != nil {
		t.Fatal("head has a prev link")
	}
	if q.Tail().Next() != nil {
		t.Fatal("tail has a next link")
	}

	var forward, backward []string
	for n := q.Head(); n != nil; n = n.Next() {
		forward = append(forward, n.Term)
		if n.Next() != nil && n.Next().Prev() != n {
			t.Fatalf("broken back link after %q", n.Term)
		}
	}
	for n := q.Tail(); n != nil; n = n.Prev() {
		backward = append(backward, n.Term)
	}
	slices.Reverse(backward)
	if !slices.Equal(forward, backward) {
		t.Fatalf("forward %v != backward %v", forward, backward)
	}
	if len(forward) != q.Len() {
		t.Fatalf("len = %d, chain has %d nodes", q.Len(), len(forward))
	}
}

func TestAddThenSearch(t *testing.T) {
	q := queueOf("hola", "adios")
	n := q.Search("hola")
	if n == nil {
		t.Fatal("expected to find hola")
	}
	if n.Term != "hola" {
		t.Errorf("found %q, want hola", n.Term)
	}
	if q.Search("gracias") != nil {
		t.Error("expected nil for a term never added")
	}
	checkLinks(t, q)
}

func TestSearchEmptyQueue(t *testing.T) {
	q := New()
	if q.Search("hola") != nil {
		t.Fatal("expected nil on empty queue")
	}
}

func TestAddAllowsDuplicates(t *testing.T) {
	q := queueOf("hola", "hola")
	if q.Len() != 2 {
		t.Fatalf("len = %d, want 2", q.Len())
	}
	if q.Search("hola") != q.Head() {
		t.Error("search should return the first matching node")
	}
	checkLinks(t, q)
}

func TestMoveToEnd(t *testing.T) {
	tests := []struct {
		name  string
		terms []string
		move  string
		want  []string
	}{
		{"tail is a no-op", []string{"a", "b", "c"}, "c", []string{"a", "b", "c"}},
		{"head", []string{"a", "b", "c"}, "a", []string{"b", "c", "a"}},
		{"middle", []string{"a", "b", "c"}, "b", []string{"a", "c", "b"}},
		{"single node", []string{"a"}, "a", []string{"a"}},
		{"two nodes head", []string{"a", "b"}, "a", []string{"b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := queueOf(tt.terms...)
			n := q.Search(tt.move)
			q.MoveToEnd(n)

			if got := q.Terms(); !slices.Equal(got, tt.want) {
				t.Errorf("terms = %v, want %v", got, tt.want)
			}
			if q.Tail() != n {
				t.Error("moved node should be the tail")
			}
			checkLinks(t, q)
		})
	}
}

func TestMoveToEndRelinksHead(t *testing.T) {
	q := queueOf("a", "b", "c")
	oldHead := q.Head()
	second := oldHead.Next()

	q.MoveToEnd(oldHead)

	if q.Head() != second {
		t.Fatalf("head = %q, want b", q.Head().Term)
	}
	if second.Prev() != nil {
		t.Error("new head still has a prev link")
	}
	if oldHead.Next() != nil {
		t.Error("moved node still has a next link")
	}
	if oldHead.Prev().Term != "c" {
		t.Errorf("moved node prev = %q, want c", oldHead.Prev().Term)
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		name  string
		terms []string
		want  []string
	}{
		{"two", []string{"word2", "word1"}, []string{"word1", "word2"}},
		{"empty", nil, []string{}},
		{"already sorted", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"reversed", []string{"gracias", "adios", "hola", "adios"}, []string{"adios", "adios", "gracias", "hola"}},
		{"unicode", []string{"über", "año", "zorro"}, []string{"año", "zorro", "über"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := queueOf(tt.terms...)
			q.Sort()
			if got := q.Terms(); !slices.Equal(got, tt.want) {
				t.Errorf("terms = %v, want %v", got, tt.want)
			}
			checkLinks(t, q)
		})
	}
}

func TestSortKeepsNodePositions(t *testing.T) {
	q := queueOf("word2", "word1")
	head := q.Head()

	q.Sort()

	if q.Head() != head {
		t.Fatal("sort should not relink nodes")
	}
	if head.Term != "word1" {
		t.Errorf("head term = %q, want word1", head.Term)
	}
}

func TestAllStopsEarly(t *testing.T) {
	q := queueOf("a", "b", "c")
	var seen []string
	for term := range q.All() {
		seen = append(seen, term)
		if term == "b" {
			break
		}
	}
	if !slices.Equal(seen, []string{"a", "b"}) {
		t.Errorf("seen = %v", seen)
	}
}
