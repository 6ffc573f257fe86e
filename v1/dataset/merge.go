package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// vectorPrecisionDigits is the number of decimals vectors are rounded to
// before indexing, so all engines receive byte-identical vector values.
const vectorPrecisionDigits = 12

// Merge left-joins embeddings onto documents by identifier.
//
// Documents with a matching embedding record get a VectorField entry holding
// the rounded vector; documents without a match are passed through unchanged.
// The input slice is never mutated.
func (l *Loader) Merge(docs []Document, emb *Embeddings) []Document {
	merged := make([]Document, 0, len(docs))
	for _, d := range docs {
		doc := d.Clone()
		id := doc.ID()
		if id == "" {
			l.log.Debug("document missing id", nil, nil)
		}

		if vector, ok := emb.Vector(id); ok {
			doc[VectorField] = RoundVector(vector, vectorPrecisionDigits)
		}
		merged = append(merged, doc)
	}
	return merged
}

// RoundVector rounds each value in the vector to the given number of decimals.
func RoundVector(vector []float64, digits int) []float64 {
	factor := math.Pow10(digits)
	out := make([]float64, len(vector))
	for i, x := range vector {
		out[i] = math.Round(x*factor) / factor
	}
	return out
}

// WriteMerged writes the merged dataset to path as a single JSON array.
// The file is kept purely as a debugging artifact mirroring what was sent to
// the engine; load failures here are surfaced but the caller may choose to
// continue without it.
func (l *Loader) WriteMerged(path string, docs []Document) error {
	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("merge: encode merged dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("merge: write %s: %w", path, err)
	}
	l.log.Info("wrote merged dataset", nil, map[string]interface{}{
		"path":      path,
		"documents": len(docs),
	})
	return nil
}
