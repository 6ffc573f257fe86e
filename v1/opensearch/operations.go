package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/relevancelab/searchinit/v1/dataset"
	"github.com/relevancelab/searchinit/v1/engine"
)

var (
	_ engine.Engine    = (*Client)(nil)
	_ engine.Truncater = (*Client)(nil)
)

// IndexExists reports whether the configured index exists.
func (c *Client) IndexExists(ctx context.Context) (bool, error) {
	status, err := c.head(ctx, c.baseURL+"/"+c.cfg.Index)
	if err != nil {
		return false, fmt.Errorf("opensearch: index exists: %w", err)
	}
	switch status {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("opensearch: index exists: unexpected http %d", status)
	}
}

// CreateIndex creates the configured index. The k-NN plugin only serves
// vector queries on indices created with index.knn enabled, so the setting
// goes in up front even when no embeddings end up loaded.
func (c *Client) CreateIndex(ctx context.Context) error {
	body := map[string]any{
		"settings": map[string]any{
			"index": map[string]any{
				"number_of_shards":   c.cfg.Shards,
				"number_of_replicas": c.cfg.Replicas,
				"knn":                true,
			},
		},
	}

	if err := c.sendJSON(ctx, http.MethodPut, c.baseURL+"/"+c.cfg.Index, body, nil); err != nil {
		return fmt.Errorf("opensearch: create index %q: %w", c.cfg.Index, err)
	}

	c.log.Info("created index", nil, map[string]interface{}{
		"index":    c.cfg.Index,
		"shards":   c.cfg.Shards,
		"replicas": c.cfg.Replicas,
	})
	return nil
}

// Count returns the number of documents currently in the index.
func (c *Client) Count(ctx context.Context) (int64, error) {
	var parsed struct {
		Count int64 `json:"count"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/"+c.cfg.Index+"/_count", &parsed); err != nil {
		return 0, fmt.Errorf("opensearch: count: %w", err)
	}
	return parsed.Count, nil
}

// RegisterVectorField adds a knn_vector mapping backed by an HNSW graph with
// cosine similarity.
func (c *Client) RegisterVectorField(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("opensearch: vector dimension must be positive, got %d", dimension)
	}

	body := map[string]any{
		"properties": map[string]any{
			dataset.VectorField: map[string]any{
				"type":      "knn_vector",
				"dimension": dimension,
				"method": map[string]any{
					"name":       "hnsw",
					"space_type": "cosinesimil",
					"engine":     "lucene",
					"parameters": map[string]any{
						"ef_construction": c.cfg.EfConstruction,
						"m":               c.cfg.M,
					},
				},
			},
		},
	}
	if err := c.sendJSON(ctx, http.MethodPut, c.baseURL+"/"+c.cfg.Index+"/_mapping", body, nil); err != nil {
		return fmt.Errorf("opensearch: register vector field: %w", err)
	}

	c.log.Info("registered vector field", nil, map[string]interface{}{
		"index":     c.cfg.Index,
		"field":     dataset.VectorField,
		"dimension": dimension,
	})
	return nil
}

// DeleteAll removes every document while keeping the index in place.
func (c *Client) DeleteAll(ctx context.Context) error {
	body := map[string]any{"query": map[string]any{"match_all": map[string]any{}}}
	url := c.baseURL + "/" + c.cfg.Index + "/_delete_by_query?refresh=true&conflicts=proceed"
	if err := c.sendJSON(ctx, http.MethodPost, url, body, nil); err != nil {
		return fmt.Errorf("opensearch: delete all: %w", err)
	}

	c.log.Info("deleted all documents", nil, map[string]interface{}{"index": c.cfg.Index})
	return nil
}

// BulkLoad indexes the documents in batches over the _bulk API. The document
// identifier becomes the _id and is removed from the stored source. Only the
// final batch asks for a refresh.
//
// OpenSearch answers HTTP 200 even when items fail. With CheckBulkResponse
// unset the status code is trusted, which matches environments where the
// dataset is known good and response parsing is just overhead.
func (c *Client) BulkLoad(ctx context.Context, docs []dataset.Document) (*engine.LoadReport, error) {
	report := &engine.LoadReport{Total: len(docs)}
	if len(docs) == 0 {
		return report, nil
	}

	size := c.cfg.BulkBatchSize
	for start := 0; start < len(docs); start += size {
		end := start + size
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		payload, err := encodeBulk(batch)
		if err != nil {
			return report, fmt.Errorf("opensearch: encode bulk [%d:%d]: %w", start, end, err)
		}

		url := c.baseURL + "/" + c.cfg.Index + "/_bulk"
		if end == len(docs) {
			url += "?refresh=true"
		}

		var resp bulkResponse
		if err := c.doRequest(ctx, http.MethodPost, url, "application/x-ndjson", payload, &resp); err != nil {
			return report, fmt.Errorf("opensearch: bulk [%d:%d]: %w", start, end, err)
		}
		report.Batches++

		if c.cfg.CheckBulkResponse && resp.Errors {
			indexed, failed := resp.account(report)
			if failed == 0 {
				// The error flag is authoritative even when no per-item
				// failure could be parsed out of the response.
				return report, fmt.Errorf("opensearch: bulk [%d:%d]: response flagged errors but carried no accountable items", start, end)
			}
			report.Indexed += indexed
			report.Failed += failed
		} else {
			report.Indexed += len(batch)
		}
	}

	c.log.Info("bulk load finished", nil, map[string]interface{}{
		"index":   c.cfg.Index,
		"total":   report.Total,
		"indexed": report.Indexed,
		"failed":  report.Failed,
	})
	return report, nil
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

// account folds per-item results into the report and returns the split.
func (r *bulkResponse) account(report *engine.LoadReport) (indexed, failed int) {
	for _, item := range r.Items {
		for _, result := range item {
			if result.Error == nil {
				indexed++
				continue
			}
			failed++
			report.Errors = append(report.Errors, engine.ItemError{
				ID:     result.ID,
				Reason: fmt.Sprintf("%s: %s", result.Error.Type, result.Error.Reason),
			})
		}
	}
	return indexed, failed
}

// encodeBulk renders a batch of documents as _bulk NDJSON.
func encodeBulk(batch []dataset.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	for _, doc := range batch {
		if err := enc.Encode(map[string]any{"index": map[string]any{"_id": doc.ID()}}); err != nil {
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
