package elasticsearch

import (
	"bytes"
	"encoding/json"

	"github.com/relevancelab/searchinit/v1/dataset"
)

// bulkResponse is the subset of the _bulk reply needed for verification.
// Each item maps the action name ("index") to its result.
type bulkResponse struct {
	Errors bool                      `json:"errors"`
	Items  []map[string]bulkItemInfo `json:"items"`
}

type bulkItemInfo struct {
	ID     string         `json:"_id"`
	Status int            `json:"status"`
	Error  *bulkItemError `json:"error"`
}

type bulkItemError struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// encodeBulk renders a batch of documents as _bulk NDJSON. The identifier
// field moves into the action metadata and is stripped from the source.
func encodeBulk(batch []dataset.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	for _, doc := range batch {
		action := map[string]any{
			"index": map[string]any{"_id": doc.ID()},
		}
		if err := enc.Encode(action); err != nil {
			return nil, err
		}

		source := doc.Clone()
		delete(source, dataset.IDField)
		if err := enc.Encode(source); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}
