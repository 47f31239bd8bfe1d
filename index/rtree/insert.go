package rtree

import (
	"math"
	"sort"

	"github.com/hupe1980/geogo/index"
)

// Insert adds an item to the tree. When a node exceeds MaxEntries it is
// split along the longer axis of its bound and the split propagates upward,
// growing a new root if necessary.
func (t *RTree[T]) Insert(item T) {
	box := t.itemBox(item)

	if sibling := t.insert(t.root, item, box); sibling != nil {
		t.root = &index.Node[T]{
			Box:      index.Combine(t.root.Box, sibling.Box),
			Children: []*index.Node[T]{t.root, sibling},
		}
	}
	t.size++
}

// insert descends to a leaf, extending boxes on the way down. It returns a
// new sibling node when the target node had to be split, nil otherwise.
func (t *RTree[T]) insert(n *index.Node[T], item T, box index.Box) *index.Node[T] {
	n.Box = index.Combine(n.Box, box)

	if n.Leaf {
		n.Items = append(n.Items, item)
		if len(n.Items) > t.opts.MaxEntries {
			return t.splitLeaf(n)
		}
		return nil
	}

	child := t.chooseSubtree(n, box)
	if sibling := t.insert(child, item, box); sibling != nil {
		n.Children = append(n.Children, sibling)
		if len(n.Children) > t.opts.MaxEntries {
			return t.splitInternal(n)
		}
	}
	return nil
}

// chooseSubtree picks the child whose box needs the least enlargement to
// accommodate the new box, breaking ties by smaller area.
func (t *RTree[T]) chooseSubtree(n *index.Node[T], box index.Box) *index.Node[T] {
	best := n.Children[0]
	bestEnlargement := index.Enlargement(best.Box, box)

	for _, child := range n.Children[1:] {
		enlargement := index.Enlargement(child.Box, box)
		if enlargement < bestEnlargement ||
			(enlargement == bestEnlargement && index.Area(child.Box) < index.Area(best.Box)) {
			best = child
			bestEnlargement = enlargement
		}
	}
	return best
}

func (t *RTree[T]) splitLeaf(n *index.Node[T]) *index.Node[T] {
	t.sortByLongerAxis(n.Box, len(n.Items), func(i, j int) (index.Box, index.Box) {
		return t.itemBox(n.Items[i]), t.itemBox(n.Items[j])
	}, func(i, j int) {
		n.Items[i], n.Items[j] = n.Items[j], n.Items[i]
	})

	split := t.chooseSplitIndex(len(n.Items), func(i int) index.Box {
		return t.itemBox(n.Items[i])
	})
	moved := make([]T, len(n.Items)-split)
	copy(moved, n.Items[split:])
	n.Items = n.Items[:split]

	sibling := &index.Node[T]{Leaf: true, Items: moved}
	sibling.Box = t.itemsBound(moved)
	n.Box = t.itemsBound(n.Items)
	return sibling
}

func (t *RTree[T]) splitInternal(n *index.Node[T]) *index.Node[T] {
	t.sortByLongerAxis(n.Box, len(n.Children), func(i, j int) (index.Box, index.Box) {
		return n.Children[i].Box, n.Children[j].Box
	}, func(i, j int) {
		n.Children[i], n.Children[j] = n.Children[j], n.Children[i]
	})

	split := t.chooseSplitIndex(len(n.Children), func(i int) index.Box {
		return n.Children[i].Box
	})
	moved := make([]*index.Node[T], len(n.Children)-split)
	copy(moved, n.Children[split:])
	n.Children = n.Children[:split]

	sibling := &index.Node[T]{Children: moved}
	sibling.Box = childrenBound(moved)
	n.Box = childrenBound(n.Children)
	return sibling
}

// chooseSplitIndex picks the split position with the smallest total area of
// the two resulting bounds, among positions leaving at least MinEntries
// entries on each side. Entries must already be sorted along the split axis;
// boxAt returns the box of the entry at position i.
func (t *RTree[T]) chooseSplitIndex(n int, boxAt func(i int) index.Box) int {
	m := t.opts.MinEntries
	if n < 2*m {
		return n / 2
	}

	suffix := make([]index.Box, n+1)
	suffix[n] = index.EmptyBox()
	for i := n - 1; i >= 0; i-- {
		suffix[i] = index.Combine(suffix[i+1], boxAt(i))
	}

	best, bestArea := n/2, math.Inf(1)
	left := index.EmptyBox()
	for i := 0; i < n-m; i++ {
		left = index.Combine(left, boxAt(i))
		split := i + 1
		if split < m {
			continue
		}
		if total := index.Area(left) + index.Area(suffix[split]); total < bestArea {
			best, bestArea = split, total
		}
	}
	return best
}

// sortByLongerAxis sorts n entries by their box midpoint along the longer
// axis of bound, using the provided box accessor and swap.
func (t *RTree[T]) sortByLongerAxis(bound index.Box, n int, boxes func(i, j int) (index.Box, index.Box), swap func(i, j int)) {
	byX := bound.MaxX-bound.MinX > bound.MaxY-bound.MinY
	sort.Sort(&axisSorter{
		n: n,
		less: func(i, j int) bool {
			bi, bj := boxes(i, j)
			if byX {
				return bi.MinX+bi.MaxX < bj.MinX+bj.MaxX
			}
			return bi.MinY+bi.MaxY < bj.MinY+bj.MaxY
		},
		swap: swap,
	})
}

type axisSorter struct {
	n    int
	less func(i, j int) bool
	swap func(i, j int)
}

func (s *axisSorter) Len() int           { return s.n }
func (s *axisSorter) Less(i, j int) bool { return s.less(i, j) }
func (s *axisSorter) Swap(i, j int)      { s.swap(i, j) }

func childrenBound[T any](children []*index.Node[T]) index.Box {
	bound := index.EmptyBox()
	for _, child := range children {
		bound = index.Combine(bound, child.Box)
	}
	return bound
}
