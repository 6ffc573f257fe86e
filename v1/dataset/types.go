package dataset

import "fmt"

const (
	// IDField is the document field carrying the stable unique identifier.
	IDField = "id"

	// VectorField is the field name the merge step writes embeddings into.
	VectorField = "vector"
)

// Document is a single dataset record: a mapping of field name to value.
// Every document is expected to carry a stable identifier under IDField.
type Document map[string]any

// ID returns the document identifier as a string, or "" when absent.
// Identifiers may arrive as strings or JSON numbers depending on the dataset
// file, so everything is normalized through fmt.Sprint.
func (d Document) ID() string {
	v, ok := d[IDField]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Clone returns a shallow copy of the document. The merge step clones before
// attaching a vector so the caller's slice stays untouched.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Embeddings holds precomputed vectors keyed by document identifier.
// The dimension is taken from the first valid record, matching the contract
// that the registered vector field uses the first record's length.
type Embeddings struct {
	vectors map[string][]float64
	dim     int
}

// Vector returns the embedding for the given identifier.
func (e *Embeddings) Vector(id string) ([]float64, bool) {
	v, ok := e.vectors[id]
	return v, ok
}

// Len returns the number of loaded embedding records.
func (e *Embeddings) Len() int {
	return len(e.vectors)
}

// Dimension returns the vector dimension inferred from the first record,
// or 0 when no records were loaded.
func (e *Embeddings) Dimension() int {
	return e.dim
}

// Empty reports whether no embedding records were loaded.
func (e *Embeddings) Empty() bool {
	return len(e.vectors) == 0
}
