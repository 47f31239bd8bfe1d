package testutil

import (
	"math/rand"
	"sort"
	"sync"
)

// Point is a 2D query or data point.
type Point struct {
	X, Y float64
}

// SearchResult represents a search result.
type SearchResult struct {
	ID       uint32
	Distance float64 // squared Euclidean
}

// RNG encapsulates a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints generates points uniformly distributed over the square
// [minV, maxV) x [minV, maxV).
func (r *RNG) UniformPoints(num int, minV, maxV float64) []Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxV - minV
	pts := make([]Point, num)
	for i := range pts {
		pts[i] = Point{
			X: minV + r.rand.Float64()*span,
			Y: minV + r.rand.Float64()*span,
		}
	}
	return pts
}

// ClusteredPoints generates points grouped around random centroids with
// Gaussian spread. Useful for testing index performance on non-uniform data.
func (r *RNG) ClusteredPoints(num, clusters int, spread float64) []Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	centroids := make([]Point, clusters)
	for i := range centroids {
		centroids[i] = Point{X: r.rand.Float64() * 100, Y: r.rand.Float64() * 100}
	}

	pts := make([]Point, num)
	for i := range pts {
		c := centroids[i%clusters]
		pts[i] = Point{
			X: c.X + r.rand.NormFloat64()*spread,
			Y: c.Y + r.rand.NormFloat64()*spread,
		}
	}
	return pts
}

// BruteForceNearest performs exact nearest-neighbor search for ground truth.
// IDs correspond to positions in pts. k <= 0 returns all points.
func BruteForceNearest(pts []Point, x, y float64, k int) []SearchResult {
	results := make([]SearchResult, len(pts))
	for i, p := range pts {
		dx, dy := p.X-x, p.Y-y
		results[i] = SearchResult{ID: uint32(i), Distance: dx*dx + dy*dy}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results
}

// ComputeRecall computes recall@k by comparing results against ground truth.
func ComputeRecall(groundTruth, approximate []SearchResult) float64 {
	if len(groundTruth) == 0 || len(approximate) == 0 {
		if len(groundTruth) == 0 && len(approximate) == 0 {
			return 1.0
		}
		return 0.0
	}

	k := min(len(approximate), len(groundTruth))

	truthSet := make(map[uint32]struct{}, k)
	for i := range k {
		truthSet[groundTruth[i].ID] = struct{}{}
	}

	hits := 0
	for _, r := range approximate {
		if _, ok := truthSet[r.ID]; ok {
			hits++
		}
	}

	return float64(hits) / float64(k)
}
