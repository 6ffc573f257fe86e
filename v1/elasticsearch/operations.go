package elasticsearch

import (
	"context"
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
		return false, fmt.Errorf("elasticsearch: index exists: %w", err)
	}
	switch status {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("elasticsearch: index exists: unexpected http %d", status)
	}
}

// CreateIndex creates the configured index with the configured shard and
// replica counts. With ExplicitMapping set, the document identifier is mapped
// as a keyword up front; everything else stays dynamically mapped either way.
func (c *Client) CreateIndex(ctx context.Context) error {
	body := map[string]any{
		"settings": map[string]any{
			"index": map[string]any{
				"number_of_shards":   c.cfg.Shards,
				"number_of_replicas": c.cfg.Replicas,
			},
		},
	}
	if c.cfg.ExplicitMapping {
		body["mappings"] = map[string]any{
			"properties": map[string]any{
				dataset.IDField: map[string]any{"type": "keyword"},
			},
		}
	}

	if err := c.putJSON(ctx, c.baseURL+"/"+c.cfg.Index, body, nil); err != nil {
		return fmt.Errorf("elasticsearch: create index %q: %w", c.cfg.Index, err)
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
		return 0, fmt.Errorf("elasticsearch: count: %w", err)
	}
	return parsed.Count, nil
}

// RegisterVectorField adds a dense_vector mapping for the vector field.
// Elasticsearch accepts the same mapping submission repeatedly as long as the
// dimension does not change, so the call is idempotent.
func (c *Client) RegisterVectorField(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("elasticsearch: vector dimension must be positive, got %d", dimension)
	}

	body := map[string]any{
		"properties": map[string]any{
			dataset.VectorField: map[string]any{
				"type":       "dense_vector",
				"dims":       dimension,
				"index":      true,
				"similarity": "cosine",
			},
		},
	}
	if err := c.putJSON(ctx, c.baseURL+"/"+c.cfg.Index+"/_mapping", body, nil); err != nil {
		return fmt.Errorf("elasticsearch: register vector field: %w", err)
	}

	c.log.Info("registered vector field", nil, map[string]interface{}{
		"index":     c.cfg.Index,
		"field":     dataset.VectorField,
		"dimension": dimension,
	})
	return nil
}

// DeleteAll removes every document from the index while keeping the index
// and its mapping in place.
func (c *Client) DeleteAll(ctx context.Context) error {
	body := map[string]any{"query": map[string]any{"match_all": map[string]any{}}}
	url := c.baseURL + "/" + c.cfg.Index + "/_delete_by_query?refresh=true&conflicts=proceed"
	if err := c.postJSON(ctx, url, body, nil); err != nil {
		return fmt.Errorf("elasticsearch: delete all: %w", err)
	}

	c.log.Info("deleted all documents", nil, map[string]interface{}{"index": c.cfg.Index})
	return nil
}

// BulkLoad indexes the documents in batches over the _bulk API. The document
// identifier becomes the Elasticsearch _id and is removed from the stored
// source. Only the final batch asks for a refresh, so the documents become
// searchable once the load completes.
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
		lastBatch := end == len(docs)

		payload, err := encodeBulk(batch)
		if err != nil {
			return report, fmt.Errorf("elasticsearch: encode bulk [%d:%d]: %w", start, end, err)
		}

		url := c.baseURL + "/" + c.cfg.Index + "/_bulk"
		if lastBatch {
			url += "?refresh=true"
		}

		var resp bulkResponse
		if err := c.postNDJSON(ctx, url, payload, &resp); err != nil {
			return report, fmt.Errorf("elasticsearch: bulk [%d:%d]: %w", start, end, err)
		}
		report.Batches++

		indexed, failed := c.accountBatch(len(batch), &resp, report)
		if c.cfg.CheckBulkResponse && resp.Errors && failed == 0 {
			// The error flag is authoritative. A response that sets it but
			// carries no accountable items must still fail the load.
			return report, fmt.Errorf("elasticsearch: bulk [%d:%d]: response flagged errors but carried no accountable items", start, end)
		}
		report.Indexed += indexed
		report.Failed += failed

		c.log.Debug("bulk batch indexed", nil, map[string]interface{}{
			"index":  c.cfg.Index,
			"from":   start,
			"to":     end,
			"failed": failed,
		})
	}

	c.log.Info("bulk load finished", nil, map[string]interface{}{
		"index":   c.cfg.Index,
		"total":   report.Total,
		"indexed": report.Indexed,
		"failed":  report.Failed,
	})
	return report, nil
}

// accountBatch translates one bulk response into indexed/failed counts.
// Without response checking every document in a 2xx batch counts as indexed.
func (c *Client) accountBatch(batchLen int, resp *bulkResponse, report *engine.LoadReport) (indexed, failed int) {
	if !c.cfg.CheckBulkResponse || !resp.Errors {
		return batchLen, 0
	}

	for _, item := range resp.Items {
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
