package vespa

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/relevancelab/searchinit/v1/dataset"
	"github.com/relevancelab/searchinit/v1/engine"
)

var (
	_ engine.Engine    = (*Client)(nil)
	_ engine.Truncater = (*Client)(nil)
	_ engine.Deployer  = (*Client)(nil)
)

// IndexExists reports whether the document type is known to the container,
// which is the case once an application declaring it has been activated.
func (c *Client) IndexExists(ctx context.Context) (bool, error) {
	status, err := c.getStatus(ctx, c.documentURL("")+"?wantedDocumentCount=1")
	if err != nil {
		return false, fmt.Errorf("vespa: document type visit: %w", err)
	}
	switch status {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("vespa: document type visit: unexpected http %d", status)
	}
}

// CreateIndex is satisfied by deployment. Vespa has no runtime schema
// creation; the document type comes from the application package that
// Deploy activated, so reaching this point with no type is a deployment
// problem, not something a retry here could fix.
func (c *Client) CreateIndex(ctx context.Context) error {
	exists, err := c.IndexExists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("vespa: document type %q not present after deployment, check the application package", c.cfg.DocumentType)
	}
	return nil
}

// Count returns the total document count via a YQL query. A container that
// only just came up can answer queries with errors before the content nodes
// settle; that case reads as zero so the caller proceeds with the load
// rather than aborting a fresh deployment.
func (c *Client) Count(ctx context.Context) (int64, error) {
	q := url.Values{}
	q.Set("yql", "select * from sources * where true")
	q.Set("hits", "0")

	var parsed struct {
		Root struct {
			Fields struct {
				TotalCount int64 `json:"totalCount"`
			} `json:"fields"`
		} `json:"root"`
	}
	if err := c.doJSON(ctx, http.MethodGet, c.serveURL+"/search/?"+q.Encode(), nil, &parsed); err != nil {
		c.log.Warn("count query failed, treating as empty", err, nil)
		return 0, nil
	}
	return parsed.Root.Fields.TotalCount, nil
}

// RegisterVectorField is a no-op: tensor fields are declared in the schema
// inside the application package, not registered at runtime. The dimension
// is logged so a mismatch against the deployed schema is visible.
func (c *Client) RegisterVectorField(ctx context.Context, dimension int) error {
	c.log.Info("vector field comes from the deployed schema", nil, map[string]interface{}{
		"document_type": c.cfg.DocumentType,
		"dimension":     dimension,
	})
	return nil
}

// DeleteAll removes every document of the type via delete-by-selection.
func (c *Client) DeleteAll(ctx context.Context) error {
	q := url.Values{}
	q.Set("selection", "true")
	q.Set("cluster", c.cfg.Cluster)

	if err := c.doJSON(ctx, http.MethodDelete, c.documentURL("")+"?"+q.Encode(), nil, nil); err != nil {
		return fmt.Errorf("vespa: delete all: %w", err)
	}

	c.log.Info("deleted all documents", nil, map[string]interface{}{
		"document_type": c.cfg.DocumentType,
		"cluster":       c.cfg.Cluster,
	})
	return nil
}

// BulkLoad feeds the documents through the document API, one PUT per
// document, with FeedWorkers requests in flight. Individual failures are
// collected into the report instead of aborting the feed; only context
// cancellation stops it early.
func (c *Client) BulkLoad(ctx context.Context, docs []dataset.Document) (*engine.LoadReport, error) {
	report := &engine.LoadReport{Total: len(docs)}
	if len(docs) == 0 {
		return report, nil
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.FeedWorkers)

	for _, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			id := doc.ID()
			body := map[string]any{"fields": feedFields(doc)}
			err := c.doJSON(ctx, http.MethodPost, c.documentURL(url.PathEscape(id)), body, nil)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed++
				report.Errors = append(report.Errors, engine.ItemError{ID: id, Reason: err.Error()})
				return nil
			}
			report.Indexed++
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, fmt.Errorf("vespa: feed interrupted: %w", err)
	}
	// One write request per document; there is no batching in this API.
	report.Batches = report.Indexed + report.Failed

	c.log.Info("feed finished", nil, map[string]interface{}{
		"document_type": c.cfg.DocumentType,
		"total":         report.Total,
		"indexed":       report.Indexed,
		"failed":        report.Failed,
	})
	return report, nil
}

// feedFields shapes a document for the Vespa document API. The identifier
// moves into the URL, single-string authors become an array to satisfy the
// array<string> schema field, and the vector is wrapped in the dense tensor
// literal form.
func feedFields(doc dataset.Document) map[string]any {
	fields := doc.Clone()
	delete(fields, dataset.IDField)

	if s, ok := fields["authors"].(string); ok {
		fields["authors"] = []string{s}
	}
	if vec, ok := fields[dataset.VectorField]; ok {
		fields[dataset.VectorField] = map[string]any{"values": vec}
	}

	return map[string]any(fields)
}
