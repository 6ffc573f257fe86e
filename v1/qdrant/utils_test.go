package qdrant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relevancelab/searchinit/v1/dataset"
)

func TestPointID(t *testing.T) {
	t.Run("numeric id passes through", func(t *testing.T) {
		id := pointID("42")
		assert.Equal(t, uint64(42), id.GetNum())
	})

	t.Run("uuid passes through", func(t *testing.T) {
		id := pointID("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", id.GetUuid())
	})

	t.Run("arbitrary string hashes deterministically", func(t *testing.T) {
		a := pointID("book-001")
		b := pointID("book-001")
		other := pointID("book-002")

		require.NotEmpty(t, a.GetUuid())
		assert.Equal(t, a.GetUuid(), b.GetUuid())
		assert.NotEqual(t, a.GetUuid(), other.GetUuid())
	})
}

func TestDocumentVector(t *testing.T) {
	t.Run("float64 slice", func(t *testing.T) {
		vec, ok := documentVector(dataset.Document{"vector": []float64{0.5, -0.25}})
		require.True(t, ok)
		assert.Equal(t, []float32{0.5, -0.25}, vec)
	})

	t.Run("decoded json slice", func(t *testing.T) {
		vec, ok := documentVector(dataset.Document{"vector": []any{0.5, -0.25}})
		require.True(t, ok)
		assert.Equal(t, []float32{0.5, -0.25}, vec)
	})

	t.Run("missing vector", func(t *testing.T) {
		_, ok := documentVector(dataset.Document{"id": "x"})
		assert.False(t, ok)
	})

	t.Run("empty vector", func(t *testing.T) {
		_, ok := documentVector(dataset.Document{"vector": []float64{}})
		assert.False(t, ok)
	})
}
