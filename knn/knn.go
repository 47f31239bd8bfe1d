// Package knn implements incremental nearest-neighbor search over a spatial
// index.
//
// The search expands the index lazily, nearest regions first: a single
// priority queue holds both still-unexpanded tree regions and final item
// candidates, keyed by the squared distance from the query point to their
// bounding box. Because the box distance never overestimates the distance to
// anything inside the box, the entry at the front of the queue is always
// globally next, so results come out in non-decreasing distance order
// without a separate sort and the traversal can stop as soon as enough
// results are collected.
//
// The algorithm only reads the tree through index.Index; it is safe to run
// any number of searches concurrently against the same immutable tree.
package knn

import (
	"math"

	"github.com/hupe1980/geogo/index"
	"github.com/hupe1980/geogo/internal/queue"
)

// entryKind discriminates what a queue entry refers to.
type entryKind uint8

const (
	// frontier entries reference an unexpanded tree node.
	frontier entryKind = iota
	// candidate entries reference an item from a leaf.
	candidate
)

// entry is one element of the traversal queue. Entries are created when a
// node is expanded and never mutated afterwards.
type entry[T any] struct {
	kind entryKind
	node *index.Node[T] // set for frontier entries
	item T              // set for candidate entries
	dist float64        // squared box distance to the query point
}

// Options configures a search.
type Options[T any] struct {
	// Predicate filters candidates. Items failing it are discarded without
	// counting toward the result limit and the search keeps looking.
	Predicate func(item T) bool

	// MaxDistance limits the search radius (in the same units as the item
	// coordinates, not squared). Entries whose minimal possible distance
	// already exceeds it are never enqueued. Must be non-negative; zero
	// keeps only boxes coinciding with the query point. Defaults to +Inf.
	MaxDistance float64
}

// Search returns the k items of the index nearest to the point (x, y),
// nearest first. k <= 0 means unbounded: all items satisfying the predicate
// and radius constraint are returned. Ties in distance may appear in either
// relative order.
//
// Query coordinates must not be NaN; NaN propagates into the queue ordering
// and makes the traversal order unspecified.
func Search[T any](ix index.Index[T], x, y float64, k int, optFns ...func(o *Options[T])) []T {
	opts := Options[T]{
		MaxDistance: math.Inf(1),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	maxDist := opts.MaxDistance * opts.MaxDistance

	q := queue.New(0, func(a, b entry[T]) bool { return a.dist < b.dist })

	var result []T
	node := ix.Root()
	for node != nil {
		// Expand the frontier node: enqueue every child within reach.
		if node.Leaf {
			for _, item := range node.Items {
				dist := index.PointBoxDist(x, y, ix.ItemBox(item))
				if dist <= maxDist {
					q.Push(entry[T]{kind: candidate, item: item, dist: dist})
				}
			}
		} else {
			for _, child := range node.Children {
				dist := index.PointBoxDist(x, y, child.Box)
				if dist <= maxDist {
					q.Push(entry[T]{kind: frontier, node: child, dist: dist})
				}
			}
		}

		// Drain candidates at the front of the queue. Any region still
		// queued behind them cannot contain anything closer.
		for {
			top, ok := q.Peek()
			if !ok || top.kind != candidate {
				break
			}
			q.Pop()

			if opts.Predicate != nil && !opts.Predicate(top.item) {
				continue
			}
			result = append(result, top.item)
			if k > 0 && len(result) == k {
				return result
			}
		}

		// The next-nearest entry is a region; make it the new frontier.
		next, ok := q.Pop()
		if !ok {
			node = nil
		} else {
			node = next.node
		}
	}

	return result
}

// SearchFunc traverses all items of the index in order of increasing squared
// distance from the point (x, y), calling iter with each item and its squared
// box distance. Iteration stops when iter returns false; SearchFunc then
// returns false as well.
func SearchFunc[T any](ix index.Index[T], x, y float64, iter func(item T, dist float64) bool) bool {
	q := queue.New(0, func(a, b entry[T]) bool { return a.dist < b.dist })

	node := ix.Root()
	for node != nil {
		if node.Leaf {
			for _, item := range node.Items {
				q.Push(entry[T]{kind: candidate, item: item, dist: index.PointBoxDist(x, y, ix.ItemBox(item))})
			}
		} else {
			for _, child := range node.Children {
				q.Push(entry[T]{kind: frontier, node: child, dist: index.PointBoxDist(x, y, child.Box)})
			}
		}

		for {
			top, ok := q.Peek()
			if !ok || top.kind != candidate {
				break
			}
			q.Pop()
			if !iter(top.item, top.dist) {
				return false
			}
		}

		next, ok := q.Pop()
		if !ok {
			node = nil
		} else {
			node = next.node
		}
	}

	return true
}
