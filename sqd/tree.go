package sqd

import (
	"container/heap"
	"fmt"
)

// CompositeValue is the Value of a Node that represents several symbols.
const CompositeValue = -1

// Node is a node of a Huffman tree. Leaves carry a symbol value; internal
// nodes carry CompositeValue and always have two children.
type Node struct {
	Value int
	Count uint64
	Depth int // height of the subtree below this node, 0 for leaves
	Left  *Node
	Right *Node

	slot int // queue position inherited from the first merged child
}

// nodeQueue orders nodes by count, then depth, then slot. Picking the
// shallower node on equal counts keeps the tree short; the slot makes the
// order total so the tree is the same on every run.
type nodeQueue []*Node

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.Count != b.Count {
		return a.Count < b.Count
	}
	if a.Depth != b.Depth {
		return a.Depth < b.Depth
	}
	return a.slot < b.slot
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) {
	*q = append(*q, x.(*Node))
}

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return node
}

// BuildTree builds a Huffman tree over counts, one leaf per symbol. Symbols
// with a zero count take no part, except the last symbol, the end-of-stream
// marker, which is always included. The two lowest nodes are merged
// repeatedly until a single root remains; with only one active symbol the
// root is that symbol's leaf.
func BuildTree(counts []uint64) (*Node, error) {
	if len(counts) == 0 {
		return nil, fmt.Errorf("%w: empty alphabet", ErrCodeAssignment)
	}

	eof := len(counts) - 1
	q := make(nodeQueue, 0, 64)
	for v, c := range counts {
		if c == 0 && v != eof {
			continue
		}
		q = append(q, &Node{Value: v, Count: c, slot: v})
	}
	heap.Init(&q)

	for q.Len() > 1 {
		left := heap.Pop(&q).(*Node)
		right := heap.Pop(&q).(*Node)

		if left.Count+right.Count < left.Count {
			return nil, fmt.Errorf("%w: symbol counts overflow", ErrCodeAssignment)
		}

		heap.Push(&q, &Node{
			Value: CompositeValue,
			Count: left.Count + right.Count,
			Depth: max(left.Depth, right.Depth) + 1,
			Left:  left,
			Right: right,
			slot:  left.slot,
		})
	}

	return heap.Pop(&q).(*Node), nil
}

// CodeLengths returns the code length of every symbol in an alphabet of
// alphabetSize symbols: the depth of its leaf, or 0 if it has none. A tree
// made of a single leaf gives that symbol length 1.
func CodeLengths(root *Node, alphabetSize int) ([]int, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil tree", ErrCodeAssignment)
	}

	lengths := make([]int, alphabetSize)

	if root.Left == nil && root.Right == nil {
		if root.Value < 0 || root.Value >= alphabetSize {
			return nil, fmt.Errorf("%w: leaf value %d outside alphabet", ErrCodeAssignment, root.Value)
		}
		lengths[root.Value] = 1
		return lengths, nil
	}

	type frame struct {
		node  *Node
		depth int
	}
	stack := []frame{{root, 0}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := f.node
		if n.Left == nil && n.Right == nil {
			if n.Value < 0 || n.Value >= alphabetSize {
				return nil, fmt.Errorf("%w: leaf value %d outside alphabet", ErrCodeAssignment, n.Value)
			}
			if f.depth > MaxCodeLength {
				return nil, fmt.Errorf("%w: code length %d exceeds %d", ErrCodeAssignment, f.depth, MaxCodeLength)
			}
			lengths[n.Value] = f.depth
			continue
		}
		if n.Left == nil || n.Right == nil {
			return nil, fmt.Errorf("%w: internal node with one child", ErrCodeAssignment)
		}

		stack = append(stack, frame{n.Right, f.depth + 1}, frame{n.Left, f.depth + 1})
	}

	return lengths, nil
}
