package vocab

import (
	"cmp"
	"iter"
)

// IndexNode is a single value in an Index.
type IndexNode[T cmp.Ordered] struct {
	Value T
	Left  *IndexNode[T]
	Right *IndexNode[T]
}

// Index is an unbalanced binary search tree over terms. Values smaller
// than a node go left; equal or greater values go right, so duplicates
// are kept. There is no deletion or rebalancing.
type Index[T cmp.Ordered] struct {
	root *IndexNode[T]
	size int
}

// NewIndex returns an empty index.
func NewIndex[T cmp.Ordered]() *Index[T] {
	return &Index[T]{}
}

// Root returns the root node, or nil if the index is empty.
func (x *Index[T]) Root() *IndexNode[T] { return x.root }

// Len returns the number of inserted values.
func (x *Index[T]) Len() int { return x.size }

// Insert adds v to the index.
func (x *Index[T]) Insert(v T) {
	x.size++
	node := &IndexNode[T]{Value: v}
	if x.root == nil {
		x.root = node
		return
	}

	cur := x.root
	for {
		if cmp.Less(v, cur.Value) {
			if cur.Left == nil {
				cur.Left = node
				return
			}
			cur = cur.Left
		} else {
			if cur.Right == nil {
				cur.Right = node
				return
			}
			cur = cur.Right
		}
	}
}

// InOrder yields the values in ascending order. The sequence can be
// ranged over again and reflects the tree at that time.
func (x *Index[T]) InOrder() iter.Seq[T] {
	return func(yield func(T) bool) {
		walk(x.root, yield)
	}
}

// Values returns the values in ascending order.
func (x *Index[T]) Values() []T {
	out := make([]T, 0, x.size)
	for v := range x.InOrder() {
		out = append(out, v)
	}
	return out
}

func walk[T cmp.Ordered](n *IndexNode[T], yield func(T) bool) bool {
	if n == nil {
		return true
	}
	return walk(n.Left, yield) && yield(n.Value) && walk(n.Right, yield)
}
