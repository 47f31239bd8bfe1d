package geogo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geogo/filter"
	"github.com/hupe1980/geogo/testutil"
)

func TestSearchBuilder(t *testing.T) {
	ctx := context.Background()

	db := newTestDB(t, []testutil.Point{
		{X: 0, Y: 0},
		{X: 1, Y: 1},
		{X: 5, Y: 5},
		{X: 10, Y: 10},
	})

	t.Run("Execute", func(t *testing.T) {
		results, err := db.Nearest(0, 0).K(2).Execute(ctx)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, uint32(0), results[0].ID)
		assert.Equal(t, uint32(1), results[1].ID)
	})

	t.Run("Within", func(t *testing.T) {
		results, err := db.Nearest(0, 0).K(4).Within(2).Execute(ctx)
		require.NoError(t, err)
		assert.Len(t, results, 2)

		_, err = db.Nearest(0, 0).Within(-1).Execute(ctx)
		assert.ErrorIs(t, err, ErrInvalidRadius)
	})

	t.Run("All", func(t *testing.T) {
		results, err := db.Nearest(0, 0).All().Execute(ctx)
		require.NoError(t, err)
		assert.Len(t, results, 4)

		results, err = db.Nearest(0, 0).All().Within(8).Execute(ctx)
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("Filter", func(t *testing.T) {
		results, err := db.Nearest(0, 0).K(2).
			Filter(func(id uint32) bool { return id > 0 }).
			Execute(ctx)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, uint32(1), results[0].ID)
		assert.Equal(t, uint32(2), results[1].ID)
	})

	t.Run("WithIDSet", func(t *testing.T) {
		results, err := db.Nearest(0, 0).K(4).
			WithIDSet(filter.NewIDSet(2, 3)).
			Execute(ctx)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, uint32(2), results[0].ID)
		assert.Equal(t, uint32(3), results[1].ID)
	})

	t.Run("FilterAndIDSetCombine", func(t *testing.T) {
		results, err := db.Nearest(0, 0).K(4).
			WithIDSet(filter.NewIDSet(2, 3)).
			Filter(func(id uint32) bool { return id != 3 }).
			Execute(ctx)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, uint32(2), results[0].ID)
	})

	t.Run("First", func(t *testing.T) {
		result, err := db.Nearest(4, 4).First(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint32(2), result.ID)

		_, err = db.Nearest(0, 0).Within(0).Filter(func(uint32) bool { return false }).First(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("CountAndExists", func(t *testing.T) {
		count, err := db.Nearest(0, 0).All().Within(2).Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		ok, err := db.Nearest(0, 0).Within(100).Exists(ctx)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = db.Nearest(-100, -100).Within(1).Exists(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ReusableAfterFirstAndExists", func(t *testing.T) {
		sb := db.Nearest(0, 0).K(3)

		_, err := sb.First(ctx)
		require.NoError(t, err)

		ok, err := sb.Exists(ctx)
		require.NoError(t, err)
		assert.True(t, ok)

		// First/Exists must not clamp the builder's k.
		results, err := sb.Execute(ctx)
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("MustExecute", func(t *testing.T) {
		results := db.Nearest(0, 0).K(1).MustExecute(ctx)
		assert.Len(t, results, 1)

		assert.Panics(t, func() {
			db.Nearest(0, 0).Within(-1).MustExecute(ctx)
		})
	})
}

func TestSearchBuilderStream(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(21)
	pts := rng.UniformPoints(200, 0, 100)

	db := newTestDB(t, pts)

	t.Run("OrderedAndLimited", func(t *testing.T) {
		var dists []float64
		for result, err := range db.Nearest(50, 50).K(25).Stream(ctx) {
			require.NoError(t, err)
			dists = append(dists, result.Distance)
		}
		require.Len(t, dists, 25)
		for i := 1; i < len(dists); i++ {
			assert.LessOrEqual(t, dists[i-1], dists[i])
		}
	})

	t.Run("EarlyBreak", func(t *testing.T) {
		seen := 0
		for _, err := range db.Nearest(50, 50).K(100).Stream(ctx) {
			require.NoError(t, err)
			seen++
			if seen == 3 {
				break
			}
		}
		assert.Equal(t, 3, seen)
	})

	t.Run("RadiusStopsStream", func(t *testing.T) {
		for result, err := range db.Nearest(50, 50).All().Within(10).Stream(ctx) {
			require.NoError(t, err)
			assert.LessOrEqual(t, result.Distance, 100.0)
		}
	})

	t.Run("StreamMatchesExecute", func(t *testing.T) {
		want, err := db.Nearest(30, 70).K(10).Execute(ctx)
		require.NoError(t, err)

		var got []SearchResult[int]
		for result, err := range db.Nearest(30, 70).K(10).Stream(ctx) {
			require.NoError(t, err)
			got = append(got, result)
		}
		assert.Equal(t, want, got)
	})

	t.Run("InvalidRadius", func(t *testing.T) {
		for _, err := range db.Nearest(0, 0).Within(-5).Stream(ctx) {
			assert.ErrorIs(t, err, ErrInvalidRadius)
		}
	})
}
