package solr

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/relevancelab/searchinit/v1/dataset"
	"github.com/relevancelab/searchinit/v1/engine"
)

var (
	_ engine.Engine    = (*Client)(nil)
	_ engine.Truncater = (*Client)(nil)
)

const vectorFieldType = "knn_vector"

// IndexExists reports whether the configured core is loaded. The core admin
// STATUS reply always contains a key per requested core; an empty object
// under that key means the core is unknown.
func (c *Client) IndexExists(ctx context.Context) (bool, error) {
	var parsed struct {
		Status map[string]struct {
			Name string `json:"name"`
		} `json:"status"`
	}

	statusURL := c.baseURL + "/admin/cores?action=STATUS&core=" + url.QueryEscape(c.cfg.Core) + "&wt=json"
	if err := c.getJSON(ctx, statusURL, &parsed); err != nil {
		return false, fmt.Errorf("solr: core status: %w", err)
	}

	return parsed.Status[c.cfg.Core].Name == c.cfg.Core, nil
}

// CreateIndex creates the configured core from the configured config set.
func (c *Client) CreateIndex(ctx context.Context) error {
	createURL := c.baseURL + "/admin/cores?action=CREATE&name=" + url.QueryEscape(c.cfg.Core) +
		"&configSet=" + url.QueryEscape(c.cfg.ConfigSet) + "&wt=json"
	if err := c.getJSON(ctx, createURL, nil); err != nil {
		return fmt.Errorf("solr: create core %q: %w", c.cfg.Core, err)
	}

	c.log.Info("created core", nil, map[string]interface{}{
		"core":       c.cfg.Core,
		"config_set": c.cfg.ConfigSet,
	})
	return nil
}

// Count returns the number of documents currently in the core.
func (c *Client) Count(ctx context.Context) (int64, error) {
	var parsed struct {
		Response struct {
			NumFound int64 `json:"numFound"`
		} `json:"response"`
	}
	if err := c.getJSON(ctx, c.coreURL()+"/select?q=*:*&rows=0&wt=json", &parsed); err != nil {
		return 0, fmt.Errorf("solr: count: %w", err)
	}
	return parsed.Response.NumFound, nil
}

// RegisterVectorField makes sure the schema carries a DenseVectorField type
// of the given dimension and a vector field using it. Both additions go
// through the schema API and are skipped when already present, so repeated
// runs against the same core succeed.
func (c *Client) RegisterVectorField(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("solr: vector dimension must be positive, got %d", dimension)
	}

	hasType, err := c.schemaHas(ctx, "fieldtypes", vectorFieldType)
	if err != nil {
		return fmt.Errorf("solr: check vector field type: %w", err)
	}
	if !hasType {
		body := map[string]any{
			"add-field-type": map[string]any{
				"name":               vectorFieldType,
				"class":              "solr.DenseVectorField",
				"vectorDimension":    strconv.Itoa(dimension),
				"similarityFunction": "cosine",
				"knnAlgorithm":       "hnsw",
			},
		}
		if err := c.postJSON(ctx, c.coreURL()+"/schema", body, nil); err != nil {
			return fmt.Errorf("solr: add vector field type: %w", err)
		}
	}

	hasField, err := c.schemaHas(ctx, "fields", dataset.VectorField)
	if err != nil {
		return fmt.Errorf("solr: check vector field: %w", err)
	}
	if !hasField {
		body := map[string]any{
			"add-field": map[string]any{
				"name":    dataset.VectorField,
				"type":    vectorFieldType,
				"indexed": true,
				"stored":  true,
			},
		}
		if err := c.postJSON(ctx, c.coreURL()+"/schema", body, nil); err != nil {
			return fmt.Errorf("solr: add vector field: %w", err)
		}
	}

	c.log.Info("registered vector field", nil, map[string]interface{}{
		"core":      c.cfg.Core,
		"field":     dataset.VectorField,
		"dimension": dimension,
	})
	return nil
}

// schemaHas checks whether a named schema object exists. The schema API
// answers 404 for unknown fields and field types.
func (c *Client) schemaHas(ctx context.Context, kind, name string) (bool, error) {
	err := c.getJSON(ctx, c.coreURL()+"/schema/"+kind+"/"+url.PathEscape(name)+"?wt=json", nil)
	if err == nil {
		return true, nil
	}
	if isHTTPStatus(err, 404) {
		return false, nil
	}
	return false, err
}

// DeleteAll removes every document from the core and commits immediately.
func (c *Client) DeleteAll(ctx context.Context) error {
	body := map[string]any{"delete": map[string]any{"query": "*:*"}}
	if err := c.postJSON(ctx, c.coreURL()+"/update?commit=true", body, nil); err != nil {
		return fmt.Errorf("solr: delete all: %w", err)
	}

	c.log.Info("deleted all documents", nil, map[string]interface{}{"core": c.cfg.Core})
	return nil
}

// BulkLoad sends the documents to the update handler in batches. Intermediate
// batches defer the commit; the final batch commits, making all documents
// visible at once.
func (c *Client) BulkLoad(ctx context.Context, docs []dataset.Document) (*engine.LoadReport, error) {
	report := &engine.LoadReport{Total: len(docs)}
	if len(docs) == 0 {
		return report, nil
	}

	size := c.cfg.BatchSize
	for start := 0; start < len(docs); start += size {
		end := start + size
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		commit := "false"
		if end == len(docs) {
			commit = "true"
		}

		updateURL := c.coreURL() + "/update?commit=" + commit
		if err := c.postJSON(ctx, updateURL, batch, nil); err != nil {
			return report, fmt.Errorf("solr: update [%d:%d]: %w", start, end, err)
		}
		report.Indexed += len(batch)
		report.Batches++

		c.log.Debug("update batch sent", nil, map[string]interface{}{
			"core":   c.cfg.Core,
			"from":   start,
			"to":     end,
			"commit": commit,
		})
	}

	c.log.Info("bulk load finished", nil, map[string]interface{}{
		"core":    c.cfg.Core,
		"total":   report.Total,
		"indexed": report.Indexed,
	})
	return report, nil
}
