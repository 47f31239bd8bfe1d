package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	a := Box{MinX: 0, MinY: 0, MaxX: 2, MaxY: 1}
	b := Box{MinX: 1, MinY: -1, MaxX: 3, MaxY: 4}

	got := Combine(a, b)
	assert.Equal(t, Box{MinX: 0, MinY: -1, MaxX: 3, MaxY: 4}, got)

	// EmptyBox is the identity element.
	assert.Equal(t, a, Combine(EmptyBox(), a))
	assert.Equal(t, a, Combine(a, EmptyBox()))
}

func TestOverlap(t *testing.T) {
	a := Box{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}

	assert.True(t, Overlap(a, Box{MinX: 1, MinY: 1, MaxX: 3, MaxY: 3}))
	assert.True(t, Overlap(a, Box{MinX: 2, MinY: 2, MaxX: 3, MaxY: 3})) // touching
	assert.False(t, Overlap(a, Box{MinX: 3, MinY: 3, MaxX: 4, MaxY: 4}))
	assert.False(t, Overlap(a, Box{MinX: 0, MinY: 3, MaxX: 2, MaxY: 4})) // one axis apart
}

func TestEnlargement(t *testing.T) {
	a := Box{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}

	assert.Equal(t, 0.0, Enlargement(a, Box{MinX: 0.25, MinY: 0.25, MaxX: 0.5, MaxY: 0.5}))
	assert.Equal(t, 3.0, Enlargement(a, Box{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}))
}

func TestAxisDist(t *testing.T) {
	assert.Equal(t, 2.0, AxisDist(-2, 0, 5))
	assert.Equal(t, 0.0, AxisDist(0, 0, 5))
	assert.Equal(t, 0.0, AxisDist(3, 0, 5))
	assert.Equal(t, 0.0, AxisDist(5, 0, 5))
	assert.Equal(t, 4.0, AxisDist(9, 0, 5))
}

func TestPointBoxDist(t *testing.T) {
	b := Box{MinX: 1, MinY: 1, MaxX: 3, MaxY: 3}

	// Inside and on the boundary.
	assert.Equal(t, 0.0, PointBoxDist(2, 2, b))
	assert.Equal(t, 0.0, PointBoxDist(1, 3, b))

	// One axis away.
	assert.Equal(t, 1.0, PointBoxDist(0, 2, b))

	// Diagonal: squared distance to the nearest corner.
	assert.Equal(t, 2.0, PointBoxDist(0, 0, b))
	assert.Equal(t, 8.0, PointBoxDist(5, 5, b))
}
