package geogo

import (
	"context"
	"math"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/geogo/filter"
	"github.com/hupe1980/geogo/index"
	"github.com/hupe1980/geogo/index/rtree"
	"github.com/hupe1980/geogo/knn"
)

// ItemWithBox pairs a payload with the bounding box it is indexed under.
type ItemWithBox[T any] struct {
	// Box is the axis-aligned extent of the item. For point data use
	// index.PointBox.
	Box index.Box

	// Data is the payload associated with the item.
	Data T
}

// SearchResult is a single result of a spatial query.
type SearchResult[T any] struct {
	// ID is the identifier assigned at insert time.
	ID uint32

	// Distance is the squared Euclidean distance from the query point to
	// the nearest point of the item's box. It is zero for range queries.
	Distance float64

	// Data is the payload associated with the item.
	Data T
}

// FilterFunc filters search results by item ID. Only items for which it
// returns true are returned.
type FilterFunc func(id uint32) bool

// Point is a 2D query point, used for batch searches.
type Point struct {
	X, Y float64
}

// Geogo is an embedded 2D spatial search engine. Items are indexed by
// bounding box in an R-tree; queries run an incremental nearest-first
// traversal over it.
//
// All methods are safe for concurrent use.
type Geogo[T any] struct {
	mu      sync.RWMutex
	tree    *rtree.RTree[uint32]
	boxes   []index.Box
	data    []T
	logger  *Logger
	metrics MetricsCollector

	treeOptions []func(o *rtree.Options)
}

// New creates an empty search engine for payloads of type T.
func New[T any](optFns ...Option) *Geogo[T] {
	o := applyOptions(optFns)

	g := &Geogo[T]{
		logger:      o.logger,
		metrics:     o.metricsCollector,
		treeOptions: o.treeOptions,
	}
	g.tree = rtree.New(g.idBox, g.treeOptions...)
	return g
}

// idBox resolves a stored ID to its box; this is the ToBBox function handed
// to the index.
func (g *Geogo[T]) idBox(id uint32) index.Box { return g.boxes[id] }

// Len returns the number of indexed items.
func (g *Geogo[T]) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tree.Len()
}

// Extent gives the box bounding all indexed items. If the engine is empty,
// false is returned.
func (g *Geogo[T]) Extent() (index.Box, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tree.Extent()
}

// Get returns the payload stored under id.
func (g *Geogo[T]) Get(id uint32) (T, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if int(id) >= len(g.data) {
		var zero T
		return zero, ErrNotFound
	}
	return g.data[id], nil
}

// Insert adds a single item and returns its assigned ID.
func (g *Geogo[T]) Insert(ctx context.Context, item ItemWithBox[T]) (uint32, error) {
	start := time.Now()

	if err := validateBox(item.Box); err != nil {
		g.metrics.RecordInsert(time.Since(start), err)
		g.logger.LogInsert(ctx, 0, err)
		return 0, err
	}

	g.mu.Lock()
	id := uint32(len(g.data))
	g.boxes = append(g.boxes, item.Box)
	g.data = append(g.data, item.Data)
	g.tree.Insert(id)
	g.mu.Unlock()

	g.metrics.RecordInsert(time.Since(start), nil)
	g.logger.LogInsert(ctx, id, nil)
	return id, nil
}

// BulkInsert adds many items at once and returns their assigned IDs. On an
// empty engine the tree is bulk loaded in one pass, which packs nodes more
// tightly than repeated Insert and speeds up subsequent queries.
func (g *Geogo[T]) BulkInsert(ctx context.Context, items []ItemWithBox[T]) ([]uint32, error) {
	start := time.Now()

	for _, item := range items {
		if err := validateBox(item.Box); err != nil {
			g.logger.LogBulkInsert(ctx, len(items), err)
			return nil, err
		}
	}

	g.mu.Lock()
	wasEmpty := g.tree.Len() == 0

	ids := make([]uint32, len(items))
	for i, item := range items {
		ids[i] = uint32(len(g.data))
		g.boxes = append(g.boxes, item.Box)
		g.data = append(g.data, item.Data)
	}

	if wasEmpty {
		g.tree = rtree.BulkLoad(ids, g.idBox, g.treeOptions...)
	} else {
		for _, id := range ids {
			g.tree.Insert(id)
		}
	}
	g.mu.Unlock()

	g.metrics.RecordBulkInsert(len(items), time.Since(start))
	g.logger.LogBulkInsert(ctx, len(items), nil)
	return ids, nil
}

// NearestSearchOptions contains options for nearest-neighbor search.
type NearestSearchOptions struct {
	// MaxDistance limits the search radius (not squared). Must be
	// non-negative. Defaults to +Inf (no limit).
	MaxDistance float64

	// FilterFunc is a function used to filter search results. Filtered
	// items do not count toward k.
	FilterFunc FilterFunc

	// IDSet restricts results to members of the set. Combined with
	// FilterFunc when both are given.
	IDSet *filter.IDSet
}

func (o *NearestSearchOptions) predicate() func(id uint32) bool {
	switch {
	case o.FilterFunc != nil && o.IDSet != nil:
		return func(id uint32) bool {
			return o.IDSet.Contains(id) && o.FilterFunc(id)
		}
	case o.IDSet != nil:
		return o.IDSet.Contains
	default:
		return o.FilterFunc
	}
}

// NearestSearch returns the k indexed items nearest to (x, y), nearest
// first. Fewer than k items are returned when the index, radius, or filters
// exhaust the candidates first.
func (g *Geogo[T]) NearestSearch(ctx context.Context, x, y float64, k int, optFns ...func(o *NearestSearchOptions)) ([]SearchResult[T], error) {
	start := time.Now()

	opts := NearestSearchOptions{
		MaxDistance: math.Inf(1),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if k <= 0 {
		err := ErrInvalidK
		g.metrics.RecordSearch(k, time.Since(start), err)
		g.logger.LogSearch(ctx, k, 0, err)
		return nil, err
	}
	if opts.MaxDistance < 0 {
		err := ErrInvalidRadius
		g.metrics.RecordSearch(k, time.Since(start), err)
		g.logger.LogSearch(ctx, k, 0, err)
		return nil, err
	}

	results := g.search(x, y, k, &opts)

	g.metrics.RecordSearch(k, time.Since(start), nil)
	g.logger.LogSearch(ctx, k, len(results), nil)
	return results, nil
}

// WithinSearch returns all indexed items within radius of (x, y), nearest
// first.
func (g *Geogo[T]) WithinSearch(ctx context.Context, x, y, radius float64, optFns ...func(o *NearestSearchOptions)) ([]SearchResult[T], error) {
	start := time.Now()

	opts := NearestSearchOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.MaxDistance = radius

	if radius < 0 {
		err := ErrInvalidRadius
		g.metrics.RecordSearch(0, time.Since(start), err)
		g.logger.LogSearch(ctx, 0, 0, err)
		return nil, err
	}

	results := g.search(x, y, 0, &opts)

	g.metrics.RecordSearch(0, time.Since(start), nil)
	g.logger.LogSearch(ctx, 0, len(results), nil)
	return results, nil
}

// search runs the core traversal. k <= 0 means unbounded.
func (g *Geogo[T]) search(x, y float64, k int, opts *NearestSearchOptions) []SearchResult[T] {
	pred := opts.predicate()

	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := knn.Search(g.tree, x, y, k, func(o *knn.Options[uint32]) {
		o.MaxDistance = opts.MaxDistance
		if pred != nil {
			o.Predicate = pred
		}
	})

	results := make([]SearchResult[T], len(ids))
	for i, id := range ids {
		results[i] = SearchResult[T]{
			ID:       id,
			Distance: index.PointBoxDist(x, y, g.boxes[id]),
			Data:     g.data[id],
		}
	}
	return results
}

// RangeSearch returns all indexed items whose box overlaps the query box.
// Results are in tree order, not distance order, and carry a zero Distance.
func (g *Geogo[T]) RangeSearch(ctx context.Context, box index.Box) ([]SearchResult[T], error) {
	start := time.Now()

	if err := validateBox(box); err != nil {
		g.metrics.RecordSearch(0, time.Since(start), err)
		g.logger.LogSearch(ctx, 0, 0, err)
		return nil, err
	}

	g.mu.RLock()
	var results []SearchResult[T]
	g.tree.Search(box, func(id uint32) bool {
		results = append(results, SearchResult[T]{ID: id, Data: g.data[id]})
		return true
	})
	g.mu.RUnlock()

	g.metrics.RecordSearch(0, time.Since(start), nil)
	g.logger.LogSearch(ctx, 0, len(results), nil)
	return results, nil
}

// NearestBatch runs one nearest search per query point in parallel and
// returns the result sets in query order. The whole batch fails on the
// first error.
func (g *Geogo[T]) NearestBatch(ctx context.Context, queries []Point, k int, optFns ...func(o *NearestSearchOptions)) ([][]SearchResult[T], error) {
	results := make([][]SearchResult[T], len(queries))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i, q := range queries {
		eg.Go(func() error {
			r, err := g.NearestSearch(ctx, q.X, q.Y, k, optFns...)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
