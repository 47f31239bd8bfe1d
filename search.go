// Package geogo provides an embedded 2D spatial search engine.
//
// This file implements a fluent search API for querying Geogo instances.
package geogo

import (
	"context"
	"iter"
	"math"

	"github.com/hupe1980/geogo/filter"
	"github.com/hupe1980/geogo/knn"
)

// Nearest creates a new fluent search builder for the given query point.
//
// Example:
//
//	results, err := db.Nearest(13.4, 52.5).
//	    K(10).
//	    Within(5).
//	    Execute(ctx)
//
//	// Or with streaming:
//	for result, err := range db.Nearest(13.4, 52.5).K(100).Stream(ctx) {
//	    if err != nil { break }
//	    if result.Distance > threshold { break }
//	    process(result)
//	}
func (g *Geogo[T]) Nearest(x, y float64) *SearchBuilder[T] {
	return &SearchBuilder[T]{
		g:           g,
		x:           x,
		y:           y,
		k:           10, // Default k
		maxDistance: math.Inf(1),
	}
}

// SearchBuilder is a fluent builder for constructing spatial queries.
type SearchBuilder[T any] struct {
	g    *Geogo[T]
	x, y float64
	k    int

	// Constraints
	maxDistance float64
	filterFunc  FilterFunc
	idSet       *filter.IDSet
}

// K sets the number of nearest neighbors to return.
func (sb *SearchBuilder[T]) K(k int) *SearchBuilder[T] {
	sb.k = k
	return sb
}

// All removes the result count limit: every item satisfying the radius and
// filter constraints is returned.
func (sb *SearchBuilder[T]) All() *SearchBuilder[T] {
	sb.k = 0
	return sb
}

// Within limits the search radius (not squared).
func (sb *SearchBuilder[T]) Within(radius float64) *SearchBuilder[T] {
	sb.maxDistance = radius
	return sb
}

// Filter sets a filter function for search results.
// Only items where filter(id) returns true are returned; filtered items do
// not count toward k.
func (sb *SearchBuilder[T]) Filter(fn FilterFunc) *SearchBuilder[T] {
	sb.filterFunc = fn
	return sb
}

// WithIDSet restricts results to members of the given ID set.
func (sb *SearchBuilder[T]) WithIDSet(s *filter.IDSet) *SearchBuilder[T] {
	sb.idSet = s
	return sb
}

func (sb *SearchBuilder[T]) options() NearestSearchOptions {
	return NearestSearchOptions{
		MaxDistance: sb.maxDistance,
		FilterFunc:  sb.filterFunc,
		IDSet:       sb.idSet,
	}
}

// Execute runs the search and returns the results.
func (sb *SearchBuilder[T]) Execute(ctx context.Context) ([]SearchResult[T], error) {
	if sb.maxDistance < 0 {
		return nil, ErrInvalidRadius
	}

	opts := sb.options()
	if sb.k <= 0 {
		// Unbounded: radius/filter constraints decide the result set.
		return sb.g.WithinSearch(ctx, sb.x, sb.y, sb.maxDistance, func(o *NearestSearchOptions) {
			*o = opts
		})
	}
	return sb.g.NearestSearch(ctx, sb.x, sb.y, sb.k, func(o *NearestSearchOptions) {
		*o = opts
	})
}

// MustExecute runs the search, panicking on error.
// Use this only in tests or when you're certain the query is valid.
func (sb *SearchBuilder[T]) MustExecute(ctx context.Context) []SearchResult[T] {
	results, err := sb.Execute(ctx)
	if err != nil {
		panic(err)
	}
	return results
}

// Stream returns an iterator over search results for memory-efficient
// processing. Results are yielded in order from nearest to farthest and the
// loop may break at any point to terminate the traversal early.
//
// The engine's read lock is held for the duration of the iteration.
func (sb *SearchBuilder[T]) Stream(ctx context.Context) iter.Seq2[SearchResult[T], error] {
	return func(yield func(SearchResult[T], error) bool) {
		if sb.maxDistance < 0 {
			yield(SearchResult[T]{}, ErrInvalidRadius)
			return
		}

		opts := sb.options()
		pred := opts.predicate()
		maxDist := sb.maxDistance * sb.maxDistance

		g := sb.g
		g.mu.RLock()
		defer g.mu.RUnlock()

		yielded := 0
		knn.SearchFunc(g.tree, sb.x, sb.y, func(id uint32, dist float64) bool {
			if dist > maxDist {
				return false // distances are non-decreasing from here on
			}
			if pred != nil && !pred(id) {
				return true
			}
			if !yield(SearchResult[T]{ID: id, Distance: dist, Data: g.data[id]}, nil) {
				return false
			}
			yielded++
			return sb.k <= 0 || yielded < sb.k
		})
	}
}

// First returns only the nearest result, or ErrNotFound if none matches.
// The builder itself is left untouched and can be reused.
func (sb *SearchBuilder[T]) First(ctx context.Context) (SearchResult[T], error) {
	b := *sb
	b.k = 1
	results, err := b.Execute(ctx)
	if err != nil {
		return SearchResult[T]{}, err
	}
	if len(results) == 0 {
		return SearchResult[T]{}, ErrNotFound
	}
	return results[0], nil
}

// Count executes the search and returns the number of results.
func (sb *SearchBuilder[T]) Count(ctx context.Context) (int, error) {
	results, err := sb.Execute(ctx)
	if err != nil {
		return 0, err
	}
	return len(results), nil
}

// Exists checks if at least one result matches the search.
// The builder itself is left untouched and can be reused.
func (sb *SearchBuilder[T]) Exists(ctx context.Context) (bool, error) {
	b := *sb
	b.k = 1
	results, err := b.Execute(ctx)
	if err != nil {
		return false, err
	}
	return len(results) > 0, nil
}
