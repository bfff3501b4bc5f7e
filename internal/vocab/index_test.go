package vocab

import (
	"slices"
	"testing"
)

func TestIndexInOrder(t *testing.T) {
	tests := []struct {
		name   string
		insert []string
		want   []string
	}{
		{"verb noun", []string{"verb", "noun"}, []string{"noun", "verb"}},
		{"empty", nil, []string{}},
		{"duplicates kept", []string{"hola", "adios", "hola"}, []string{"adios", "hola", "hola"}},
		{"ascending input", []string{"a", "b", "c", "d"}, []string{"a", "b", "c", "d"}},
		{"mixed", []string{"m", "c", "x", "a", "e", "z", "m"}, []string{"a", "c", "e", "m", "m", "x", "z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := NewIndex[string]()
			for _, v := range tt.insert {
				idx.Insert(v)
			}
			if got := idx.Values(); !slices.Equal(got, tt.want) {
				t.Errorf("Values() = %v, want %v", got, tt.want)
			}
			if idx.Len() != len(tt.insert) {
				t.Errorf("Len() = %d, want %d", idx.Len(), len(tt.insert))
			}
		})
	}
}

func TestIndexRootAndTies(t *testing.T) {
	idx := NewIndex[string]()
	idx.Insert("verb")
	idx.Insert("noun")
	idx.Insert("verb")

	root := idx.Root()
	if root.Value != "verb" {
		t.Fatalf("root = %q, want verb", root.Value)
	}
	if root.Left == nil || root.Left.Value != "noun" {
		t.Error("noun should be the left child")
	}
	if root.Right == nil || root.Right.Value != "verb" {
		t.Error("tie should descend right")
	}
}

func TestIndexInOrderRestartable(t *testing.T) {
	idx := NewIndex[int]()
	for _, v := range []int{5, 3, 8, 1} {
		idx.Insert(v)
	}

	first := slices.Collect(idx.InOrder())
	second := slices.Collect(idx.InOrder())
	if !slices.Equal(first, second) {
		t.Fatalf("traversals differ: %v vs %v", first, second)
	}
	if !slices.Equal(first, []int{1, 3, 5, 8}) {
		t.Errorf("got %v", first)
	}
}

func TestIndexInOrderEarlyStop(t *testing.T) {
	idx := NewIndex[int]()
	for _, v := range []int{5, 3, 8, 1, 4} {
		idx.Insert(v)
	}
	var got []int
	for v := range idx.InOrder() {
		if v > 3 {
			break
		}
		got = append(got, v)
	}
	if !slices.Equal(got, []int{1, 3}) {
		t.Errorf("got %v", got)
	}
}

func TestSortedTerms(t *testing.T) {
	words := []Word{{Term: "hola"}, {Term: "gracias"}, {Term: "adios"}}
	got := SortedTerms(words)
	want := []string{"adios", "gracias", "hola"}
	if !slices.Equal(got, want) {
		t.Errorf("SortedTerms = %v, want %v", got, want)
	}
}
