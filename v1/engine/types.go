package engine

import "fmt"

// ItemError describes a single failed document within a bulk load,
// for engines whose bulk response exposes per-item outcomes.
type ItemError struct {
	// ID is the identifier of the document that failed.
	ID string `json:"id"`

	// Reason is the engine's error description for this item.
	Reason string `json:"reason"`
}

// LoadReport summarizes the outcome of one bulk load.
type LoadReport struct {
	// Total is the number of documents submitted.
	Total int `json:"total"`

	// Indexed is the number of documents the engine accepted.
	Indexed int `json:"indexed"`

	// Failed is the number of documents the engine rejected. Engines
	// without per-item error reporting leave this at zero on success paths.
	Failed int `json:"failed"`

	// Batches is the number of write requests the load was split into.
	Batches int `json:"batches"`

	// Errors carries per-item failures where the protocol exposes them,
	// capped by the engine implementation to keep diagnostics bounded.
	Errors []ItemError `json:"errors,omitempty"`
}

// Partial reports whether some but not necessarily all documents failed.
func (r *LoadReport) Partial() bool {
	return r.Failed > 0
}

func (r *LoadReport) String() string {
	return fmt.Sprintf("indexed %d/%d documents (%d failed)", r.Indexed, r.Total, r.Failed)
}
