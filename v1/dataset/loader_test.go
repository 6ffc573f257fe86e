package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentsJSONArray(t *testing.T) {
	input := `[
		{"id": "a1", "title": "first"},
		{"id": "a2", "title": "second"}
	]`

	docs, err := NewLoader(nil).Documents(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a1", docs[0].ID())
	assert.Equal(t, "second", docs[1]["title"])
}

func TestDocumentsNDJSON(t *testing.T) {
	input := `{"id": "a1", "title": "first"}
{"id": "a2", "title": "second"}

{"id": "a3", "title": "third"}`

	docs, err := NewLoader(nil).Documents(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "a3", docs[2].ID())
}

func TestDocumentsRejectsMalformedInput(t *testing.T) {
	_, err := NewLoader(nil).Documents(strings.NewReader(`[{"id": "a1"`))
	assert.Error(t, err)
}

func TestDocumentIDNormalizesNumbers(t *testing.T) {
	docs, err := NewLoader(nil).Documents(strings.NewReader(`[{"id": 7, "title": "numeric"}]`))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	// JSON numbers decode as float64; the identifier still reads "7".
	assert.Equal(t, "7", docs[0].ID())
}

func TestEmbeddingsSkipsInvalidLines(t *testing.T) {
	input := `{"id": "a1", "vector": [0.1, 0.2, 0.3]}
not json at all
{"vector": [0.4, 0.5, 0.6]}
{"id": "a2", "vector": [0.7, 0.8, 0.9]}`

	emb, err := NewLoader(nil).Embeddings(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, emb.Len())
	assert.Equal(t, 3, emb.Dimension())

	_, ok := emb.Vector("a1")
	assert.True(t, ok)
	_, ok = emb.Vector("a2")
	assert.True(t, ok)
}

func TestEmbeddingsDimensionFromFirstRecord(t *testing.T) {
	// Records disagree on dimension; the first valid one wins.
	input := `{"id": "a1", "vector": [0.1, 0.2]}
{"id": "a2", "vector": [0.1, 0.2, 0.3, 0.4]}`

	emb, err := NewLoader(nil).Embeddings(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, emb.Dimension())
}

func TestEmbeddingsFromFileMissing(t *testing.T) {
	emb, err := NewLoader(nil).EmbeddingsFromFile(filepath.Join(t.TempDir(), "nope.jsonl"))
	require.NoError(t, err)
	assert.True(t, emb.Empty())
	assert.Zero(t, emb.Dimension())
}

func TestMergeLeftJoin(t *testing.T) {
	loader := NewLoader(nil)

	docs := []Document{
		{"id": "a1", "title": "covered"},
		{"id": "a2", "title": "uncovered"},
	}
	emb, err := loader.Embeddings(strings.NewReader(`{"id": "a1", "vector": [0.1, 0.2]}`))
	require.NoError(t, err)

	merged := loader.Merge(docs, emb)
	require.Len(t, merged, 2)

	assert.Equal(t, []float64{0.1, 0.2}, merged[0][VectorField])
	assert.NotContains(t, merged[1], VectorField)

	// Inputs stay untouched.
	assert.NotContains(t, docs[0], VectorField)
}

func TestMergeRoundsVectors(t *testing.T) {
	loader := NewLoader(nil)

	docs := []Document{{"id": "a1"}}
	emb, err := loader.Embeddings(strings.NewReader(`{"id": "a1", "vector": [0.1234567890123456]}`))
	require.NoError(t, err)

	merged := loader.Merge(docs, emb)
	assert.Equal(t, []float64{0.123456789012}, merged[0][VectorField])
}

func TestRoundVector(t *testing.T) {
	rounded := RoundVector([]float64{1.23456, -1.23456}, 3)
	assert.Equal(t, []float64{1.235, -1.235}, rounded)
}

func TestWriteMerged(t *testing.T) {
	loader := NewLoader(nil)
	path := filepath.Join(t.TempDir(), "merged.json")

	docs := []Document{{"id": "a1", "title": "artifact"}}
	require.NoError(t, loader.WriteMerged(path, docs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id": "a1", "title": "artifact"}]`, string(data))

	// The artifact round-trips through the normal loader.
	reread, err := loader.DocumentsFromFile(path)
	require.NoError(t, err)
	require.Len(t, reread, 1)
	assert.Equal(t, "a1", reread[0].ID())
}
