package review

import "iter"

// Node holds a single weak term inside a Queue.
type Node struct {
	Term string
	prev *Node
	next *Node
}

// Next returns the node after n, or nil at the tail.
func (n *Node) Next() *Node { return n.next }

// Prev returns the node before n, or nil at the head.
func (n *Node) Prev() *Node { return n.prev }

// Queue is a doubly linked list of weak vocabulary terms ordered
// least-recently-missed first. It is not safe for concurrent use.
type Queue struct {
	head *Node
	tail *Node
	size int
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{}
}

// Head returns the least-recently-missed node, or nil if the queue is empty.
func (q *Queue) Head() *Node { return q.head }

// Tail returns the most-recently-missed node, or nil if the queue is empty.
func (q *Queue) Tail() *Node { return q.tail }

// Len returns the number of nodes in the queue.
func (q *Queue) Len() int { return q.size }

// Add appends term at the tail. Duplicate terms get their own node.
func (q *Queue) Add(term string) *Node {
	n := &Node{Term: term}
	if q.head == nil {
		q.head = n
		q.tail = n
	} else {
		n.prev = q.tail
		q.tail.next = n
		q.tail = n
	}
	q.size++
	return n
}

// Search returns the first node from the head whose term equals term,
// or nil if there is none.
func (q *Queue) Search(term string) *Node {
	for cur := q.head; cur != nil; cur = cur.next {
		if cur.Term == term {
			return cur
		}
	}
	return nil
}

// MoveToEnd relinks n as the new tail. n must be a node of this queue;
// passing a node from another queue corrupts both.
func (q *Queue) MoveToEnd(n *Node) {
	if n == q.tail {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if n == q.head {
		q.head = n.next
	}
	n.prev = q.tail
	n.next = nil
	q.tail.next = n
	q.tail = n
}

// Sort orders the terms ascending in place. Terms are exchanged between
// nodes; the nodes themselves keep their positions in the chain, so a
// *Node held across Sort may carry a different term afterwards.
func (q *Queue) Sort() {
	for cur := q.head; cur != nil; cur = cur.next {
		for ahead := cur.next; ahead != nil; ahead = ahead.next {
			if cur.Term > ahead.Term {
				cur.Term, ahead.Term = ahead.Term, cur.Term
			}
		}
	}
}

// All yields the terms from head to tail.
func (q *Queue) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for cur := q.head; cur != nil; cur = cur.next {
			if !yield(cur.Term) {
				return
			}
		}
	}
}

// Terms returns the terms from head to tail. An empty queue yields an
// empty, non-nil slice.
func (q *Queue) Terms() []string {
	out := make([]string, 0, q.size)
	for t := range q.All() {
		out = append(out, t)
	}
	return out
}
