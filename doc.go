// Package geogo provides an embedded 2D nearest-neighbor search engine for Go.
//
// Geogo indexes items by axis-aligned bounding box in an R-tree and answers
// spatial queries with an incremental best-first traversal: k-nearest
// neighbors, radius queries, and box overlap queries. All distances are
// squared Euclidean; the traversal works entirely in squared-distance space
// and never visits a tree region that cannot improve the result.
//
// # Quick Start
//
//	ctx := context.Background()
//	db := geogo.New[string]()
//
//	id, err := db.Insert(ctx, geogo.ItemWithBox[string]{
//	    Box:  index.PointBox(13.4, 52.5),
//	    Data: "berlin",
//	})
//
//	results, err := db.NearestSearch(ctx, 13.0, 52.0, 10)
//	for _, r := range results {
//	    fmt.Println(r.ID, r.Distance, r.Data)
//	}
//
// # Fluent Search
//
//	results, err := db.Nearest(13.0, 52.0).
//	    K(10).
//	    Within(5).                        // radius limit
//	    Filter(func(id uint32) bool {     // ID predicate
//	        return id%2 == 0
//	    }).
//	    Execute(ctx)
//
// Streaming search for memory efficiency and early termination:
//
//	for result, err := range db.Nearest(13.0, 52.0).K(100).Stream(ctx) {
//	    if err != nil {
//	        break
//	    }
//	    if result.Distance > threshold {
//	        break
//	    }
//	    process(result)
//	}
//
// # Bulk Loading
//
// BulkInsert into an empty index packs the tree in one pass, which yields
// less node overlap and faster queries than repeated Insert:
//
//	ids, err := db.BulkInsert(ctx, items)
//
// # Concurrency
//
// All methods are safe for concurrent use. Queries against an index that is
// not being mutated run fully in parallel; mutation takes a write lock.
//
// # Key Features
//
//   - R-tree index with one-pass bulk loading (index/rtree)
//   - Incremental k-nearest-neighbor traversal (knn)
//   - Radius and box overlap queries
//   - Roaring-bitmap ID filtering (filter)
//   - Parallel batch queries via NearestBatch
//   - Structured logging (log/slog) and pluggable metrics
package geogo
