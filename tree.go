package huffman

import (
	"container/heap"
)

// Node is a node of a Huffman tree.  A leaf has neither child and carries a
// Symbol; an internal node has at least a Left child and carries the sum of
// its children's frequencies.
type Node struct {
	Symbol Symbol
	Freq   uint64
	Left   *Node
	Right  *Node
}

// IsLeaf returns true iff this node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// BuildTree constructs a Huffman tree from the given frequencies.  It returns
// nil if the table is empty.  Every internal node's frequency is exactly the
// sum of its children's, since no partial sum can exceed ft.Total().
//
// Nodes are merged two at a time, smallest frequency first.  The first node
// popped becomes the Left ("0") child and the second becomes the Right ("1")
// child.  Ties between equal frequencies are broken by an order key: a leaf
// uses its Symbol value, and a synthetic node uses NumSymbols plus the
// number of synthetic nodes created before it.  The resulting tree is thus a
// pure function of the table.
//
// A table with a single Symbol produces a synthetic root whose only child is
// that Symbol's leaf, so that the Symbol is assigned the one-bit code "0".
func BuildTree(ft FrequencyTable) *Node {
	switch ft.Len() {
	case 0:
		return nil
	case 1:
		symbol := ft.Symbols()[0]
		freq := ft.Count(symbol)
		leaf := &Node{Symbol: symbol, Freq: freq}
		return &Node{Freq: freq, Left: leaf}
	}

	// Step 1: build a minheap of leaves.

	h := freqHeap{list: make([]heapItem, 0, ft.Len())}
	for _, symbol := range ft.Symbols() {
		node := &Node{Symbol: symbol, Freq: ft.Count(symbol)}
		h.list = append(h.list, heapItem{node: node, order: uint32(symbol)})
	}
	h.Init()

	// Step 2: pop two nodes, combine them into a new synthetic node, and
	// push the synthetic node back onto the minheap, until one remains.

	nextOrder := uint32(NumSymbols)
	for h.Len() > 1 {
		a := heap.Pop(&h).(heapItem)
		b := heap.Pop(&h).(heapItem)

		node := &Node{
			Freq:  a.node.Freq + b.node.Freq,
			Left:  a.node,
			Right: b.node,
		}
		heap.Push(&h, heapItem{node: node, order: nextOrder})
		nextOrder++
	}

	return heap.Pop(&h).(heapItem).node
}

// type heapItem + type freqHeap {{{

type heapItem struct {
	node  *Node
	order uint32
}

type freqHeap struct {
	list []heapItem
}

func (h *freqHeap) Init() {
	heap.Init(h)
}

func (h *freqHeap) Len() int {
	return len(h.list)
}

func (h *freqHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *freqHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.node.Freq != b.node.Freq {
		return a.node.Freq < b.node.Freq
	}
	return a.order < b.order
}

func (h *freqHeap) Push(x interface{}) {
	h.list = append(h.list, x.(heapItem))
}

func (h *freqHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = heapItem{}
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*freqHeap)(nil)

// }}}
