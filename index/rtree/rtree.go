// Package rtree implements a two-dimensional R-tree over arbitrary items.
//
// Trees are built either incrementally with Insert or from a full item set
// with BulkLoad, which produces a better-packed tree with less node overlap.
// The built tree is exposed to search algorithms through the read-only
// index.Index contract.
package rtree

import (
	"sort"

	"github.com/hupe1980/geogo/index"
)

// Compile time check to ensure RTree satisfies the index contract.
var _ index.Index[int] = (*RTree[int])(nil)

const (
	defaultMinEntries = 4
	defaultMaxEntries = 9
)

// Options configures node fill degree.
type Options struct {
	// MinEntries is the minimum number of entries per node after a split.
	// Must be at most half of MaxEntries.
	MinEntries int

	// MaxEntries is the maximum number of entries per node. Larger values
	// give flatter trees and faster bulk loads, smaller values give faster
	// queries on point-heavy data.
	MaxEntries int
}

// RTree is an in-memory 2D R-tree holding items of type T. The item bounding
// box function is fixed at construction and must be pure: the same item must
// always map to the same box while it is stored in the tree.
type RTree[T any] struct {
	root    *index.Node[T]
	itemBox func(T) index.Box
	size    int
	opts    Options
}

// New creates an empty R-tree using itemBox to derive item bounds.
func New[T any](itemBox func(T) index.Box, optFns ...func(o *Options)) *RTree[T] {
	opts := Options{
		MinEntries: defaultMinEntries,
		MaxEntries: defaultMaxEntries,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxEntries < 2 {
		opts.MaxEntries = 2
	}
	if opts.MinEntries < 1 {
		opts.MinEntries = 1
	}
	if opts.MinEntries > opts.MaxEntries/2 {
		opts.MinEntries = opts.MaxEntries / 2
	}

	return &RTree[T]{
		root:    &index.Node[T]{Leaf: true, Box: index.EmptyBox()},
		itemBox: itemBox,
		opts:    opts,
	}
}

// BulkLoad builds a packed R-tree from the given items in one pass. The
// input slice is not modified.
func BulkLoad[T any](items []T, itemBox func(T) index.Box, optFns ...func(o *Options)) *RTree[T] {
	t := New(itemBox, optFns...)
	if len(items) == 0 {
		return t
	}

	owned := make([]T, len(items))
	copy(owned, items)

	t.root = t.build(owned)
	t.size = len(owned)
	return t
}

// Root returns the root node of the tree.
func (t *RTree[T]) Root() *index.Node[T] { return t.root }

// ItemBox returns the bounding box of an item.
func (t *RTree[T]) ItemBox(item T) index.Box { return t.itemBox(item) }

// Len returns the number of items in the tree.
func (t *RTree[T]) Len() int { return t.size }

// Extent gives the box that most closely bounds the tree's contents. If the
// tree is empty, false is returned.
func (t *RTree[T]) Extent() (index.Box, bool) {
	if t.size == 0 {
		return index.Box{}, false
	}
	return t.root.Box, true
}

// Search visits every item whose box overlaps the query box. Iteration stops
// early when iter returns false; Search then returns false as well.
func (t *RTree[T]) Search(box index.Box, iter func(item T) bool) bool {
	if t.size == 0 {
		return true
	}
	return t.search(t.root, box, iter)
}

func (t *RTree[T]) search(n *index.Node[T], box index.Box, iter func(item T) bool) bool {
	if n.Leaf {
		for _, item := range n.Items {
			if !index.Overlap(t.itemBox(item), box) {
				continue
			}
			if !iter(item) {
				return false
			}
		}
		return true
	}
	for _, child := range n.Children {
		if !index.Overlap(child.Box, box) {
			continue
		}
		if !t.search(child, box, iter) {
			return false
		}
	}
	return true
}

// build recursively packs items into a subtree: small sets become a leaf,
// larger sets are sorted along the longer axis of their bound and split in
// half. This keeps sibling overlap low, which is what makes queries fast.
func (t *RTree[T]) build(items []T) *index.Node[T] {
	if len(items) <= t.opts.MaxEntries {
		// Clamp capacity: the leaves of one bulk load share a backing
		// array, and a later Insert must reallocate on append rather
		// than grow into the next leaf's storage.
		n := &index.Node[T]{Leaf: true, Items: items[:len(items):len(items)]}
		n.Box = t.itemsBound(items)
		return n
	}

	bound := t.itemsBound(items)
	if bound.MaxX-bound.MinX > bound.MaxY-bound.MinY {
		sort.Slice(items, func(i, j int) bool {
			bi, bj := t.itemBox(items[i]), t.itemBox(items[j])
			return bi.MinX+bi.MaxX < bj.MinX+bj.MaxX
		})
	} else {
		sort.Slice(items, func(i, j int) bool {
			bi, bj := t.itemBox(items[i]), t.itemBox(items[j])
			return bi.MinY+bi.MaxY < bj.MinY+bj.MaxY
		})
	}

	split := len(items) / 2
	left := t.build(items[:split])
	right := t.build(items[split:])

	return &index.Node[T]{
		Box:      index.Combine(left.Box, right.Box),
		Children: []*index.Node[T]{left, right},
	}
}

func (t *RTree[T]) itemsBound(items []T) index.Box {
	bound := index.EmptyBox()
	for _, item := range items {
		bound = index.Combine(bound, t.itemBox(item))
	}
	return bound
}
