package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadgrid/leadgrid/internal/model"
)

func TestResultSet(t *testing.T) {
	t.Parallel()

	t.Run("preserves insertion order", func(t *testing.T) {
		t.Parallel()

		rs := model.NewResultSet()
		rs.Insert(model.Business{PlaceID: "c", Name: "Third"})
		rs.Insert(model.Business{PlaceID: "a", Name: "First"})
		rs.Insert(model.Business{PlaceID: "b", Name: "Second"})

		records := rs.Records()
		require.Len(t, records, 3)
		assert.Equal(t, "c", records[0].PlaceID)
		assert.Equal(t, "a", records[1].PlaceID)
		assert.Equal(t, "b", records[2].PlaceID)
	})

	t.Run("first insert wins", func(t *testing.T) {
		t.Parallel()

		rs := model.NewResultSet()
		assert.True(t, rs.Insert(model.Business{PlaceID: "x", Name: "Original"}))
		assert.False(t, rs.Insert(model.Business{PlaceID: "x", Name: "Imposter"}))

		assert.Equal(t, 1, rs.Len())
		b, ok := rs.Get("x")
		require.True(t, ok)
		assert.Equal(t, "Original", b.Name)
	})

	t.Run("rejects records without an identifier", func(t *testing.T) {
		t.Parallel()

		rs := model.NewResultSet()
		assert.False(t, rs.Insert(model.Business{Name: "Anonymous"}))
		assert.Zero(t, rs.Len())
	})

	t.Run("membership", func(t *testing.T) {
		t.Parallel()

		rs := model.NewResultSet()
		rs.Insert(model.Business{PlaceID: "x"})
		assert.True(t, rs.Has("x"))
		assert.False(t, rs.Has("y"))
	})
}
