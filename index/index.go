// Package index defines the spatial index contract shared by index
// implementations and the search algorithms that consume them.
//
// The contract is deliberately read-only: a search holds transient references
// into the node tree and never mutates it, so the Index interface exposes no
// mutation methods. Construction and maintenance of the tree live in the
// implementing packages (see index/rtree).
package index

import "math"

// Box is an axis-aligned bounding box.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyBox returns the identity element for Combine: a box that contains
// nothing and is extended by any other box.
func EmptyBox() Box {
	return Box{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
}

// PointBox returns the degenerate box covering exactly the point (x, y).
func PointBox(x, y float64) Box {
	return Box{MinX: x, MinY: y, MaxX: x, MaxY: y}
}

// Combine gives the smallest box containing both a and b.
func Combine(a, b Box) Box {
	return Box{
		MinX: math.Min(a.MinX, b.MinX),
		MinY: math.Min(a.MinY, b.MinY),
		MaxX: math.Max(a.MaxX, b.MaxX),
		MaxY: math.Max(a.MaxY, b.MaxY),
	}
}

// Area returns the area of the box.
func Area(b Box) float64 {
	return (b.MaxX - b.MinX) * (b.MaxY - b.MinY)
}

// Enlargement returns how much additional area the existing box would have
// to grow by to accommodate the additional box.
func Enlargement(existing, additional Box) float64 {
	return Area(Combine(existing, additional)) - Area(existing)
}

// Overlap reports whether the two boxes intersect (touching counts).
func Overlap(a, b Box) bool {
	return a.MinX <= b.MaxX && a.MaxX >= b.MinX &&
		a.MinY <= b.MaxY && a.MaxY >= b.MinY
}

// AxisDist returns the distance from coordinate k to the interval
// [min, max], or 0 if k lies within it.
func AxisDist(k, min, max float64) float64 {
	if k < min {
		return min - k
	}
	if k <= max {
		return 0
	}
	return k - max
}

// PointBoxDist returns the squared Euclidean distance from the point (x, y)
// to the nearest point of the box. This is a lower bound on the true
// distance to anything inside the box, which makes it an admissible
// heuristic for priority-ordered traversal.
func PointBoxDist(x, y float64, b Box) float64 {
	dx := AxisDist(x, b.MinX, b.MaxX)
	dy := AxisDist(y, b.MinY, b.MaxY)
	return dx*dx + dy*dy
}

// Node is one node of a two-dimensional spatial index. A leaf node holds
// items, an internal node holds child nodes. Box always bounds the whole
// subtree; keeping that invariant is the index implementation's job.
type Node[T any] struct {
	Box      Box
	Leaf     bool
	Children []*Node[T] // populated for internal nodes
	Items    []T        // populated for leaf nodes
}

// Index is the read-only view of a built spatial index. The tree must not
// be mutated while a search is running; multiple concurrent searches over
// the same immutable tree are safe.
type Index[T any] interface {
	// Root returns the root node, or nil for an index holding nothing.
	Root() *Node[T]

	// ItemBox returns the bounding box of an item stored in a leaf.
	ItemBox(item T) Box
}
