package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDSet(t *testing.T) {
	t.Run("AddContains", func(t *testing.T) {
		s := NewIDSet(1, 3, 5)

		assert.True(t, s.Contains(1))
		assert.False(t, s.Contains(2))

		s.Add(2)
		assert.True(t, s.Contains(2))
		assert.Equal(t, uint64(4), s.Cardinality())

		s.Remove(1)
		assert.False(t, s.Contains(1))
	})

	t.Run("Empty", func(t *testing.T) {
		s := NewIDSet()
		assert.True(t, s.IsEmpty())
		assert.False(t, s.Contains(0))
	})

	t.Run("AndOr", func(t *testing.T) {
		a := NewIDSet(1, 2, 3)
		b := NewIDSet(2, 3, 4)

		u := a.Clone()
		u.Or(b)
		assert.Equal(t, uint64(4), u.Cardinality())

		a.And(b)
		assert.Equal(t, uint64(2), a.Cardinality())
		assert.True(t, a.Contains(2))
		assert.True(t, a.Contains(3))
		assert.False(t, a.Contains(1))
	})

	t.Run("Iterator", func(t *testing.T) {
		s := NewIDSet(5, 1, 3)

		var ids []uint32
		for id := range s.Iterator() {
			ids = append(ids, id)
		}
		assert.Equal(t, []uint32{1, 3, 5}, ids)
	})

	t.Run("Predicate", func(t *testing.T) {
		s := NewIDSet(7)
		pred := s.Predicate()

		require.NotNil(t, pred)
		assert.True(t, pred(7))
		assert.False(t, pred(8))
	})
}
