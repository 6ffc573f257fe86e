package pgvector

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	pgvec "github.com/pgvector/pgvector-go"

	"github.com/relevancelab/searchinit/v1/dataset"
	"github.com/relevancelab/searchinit/v1/engine"
)

var (
	_ engine.Engine    = (*Client)(nil)
	_ engine.Truncater = (*Client)(nil)
)

// IndexExists reports whether the configured table exists.
func (c *Client) IndexExists(ctx context.Context) (bool, error) {
	var regclass *string
	err := c.pool.QueryRow(ctx, "SELECT to_regclass($1)::text", c.cfg.Table).Scan(&regclass)
	if err != nil {
		return false, fmt.Errorf("pgvector: table exists: %w", err)
	}
	return regclass != nil, nil
}

// CreateIndex installs the vector extension and creates the document table.
// The embedding column is added later by RegisterVectorField, once the
// dimension is known. The pool is reset afterwards so that connections
// opened before the extension existed pick up the vector type binding.
func (c *Client) CreateIndex(ctx context.Context) error {
	ddl := []string{
		"CREATE EXTENSION IF NOT EXISTS vector",
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id   text PRIMARY KEY,
			doc  jsonb NOT NULL
		)`, c.tableIdent()),
	}
	for _, stmt := range ddl {
		if _, err := c.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("pgvector: create table %q: %w", c.cfg.Table, err)
		}
	}
	c.pool.Reset()

	c.log.Info("created table", nil, map[string]interface{}{"table": c.cfg.Table})
	return nil
}

// Count returns the number of rows in the table.
func (c *Client) Count(ctx context.Context) (int64, error) {
	var n int64
	err := c.pool.QueryRow(ctx, "SELECT count(*) FROM "+c.tableIdent()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("pgvector: count: %w", err)
	}
	return n, nil
}

// RegisterVectorField adds the embedding column with the detected dimension
// and an HNSW index using cosine distance. Both statements are idempotent,
// so repeated runs against the same table succeed.
func (c *Client) RegisterVectorField(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("pgvector: vector dimension must be positive, got %d", dimension)
	}

	alter := fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS embedding vector(%d)",
		c.tableIdent(), dimension)
	if _, err := c.pool.Exec(ctx, alter); err != nil {
		return fmt.Errorf("pgvector: add embedding column: %w", err)
	}

	index := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s USING hnsw (embedding vector_cosine_ops)",
		pgx.Identifier{c.cfg.Table + "_embedding_idx"}.Sanitize(), c.tableIdent())
	if _, err := c.pool.Exec(ctx, index); err != nil {
		return fmt.Errorf("pgvector: create hnsw index: %w", err)
	}

	c.log.Info("registered vector column", nil, map[string]interface{}{
		"table":     c.cfg.Table,
		"dimension": dimension,
	})
	return nil
}

// DeleteAll empties the table.
func (c *Client) DeleteAll(ctx context.Context) error {
	if _, err := c.pool.Exec(ctx, "TRUNCATE "+c.tableIdent()); err != nil {
		return fmt.Errorf("pgvector: truncate: %w", err)
	}

	c.log.Info("truncated table", nil, map[string]interface{}{"table": c.cfg.Table})
	return nil
}

// BulkLoad upserts the documents in pipelined batches. When the embedding
// column exists, each row carries its vector (NULL for documents the
// embedding merge did not cover); otherwise only id and jsonb body are
// written. Per-row failures are collected into the report.
func (c *Client) BulkLoad(ctx context.Context, docs []dataset.Document) (*engine.LoadReport, error) {
	report := &engine.LoadReport{Total: len(docs)}
	if len(docs) == 0 {
		return report, nil
	}

	withEmbedding, err := c.hasEmbeddingColumn(ctx)
	if err != nil {
		return report, err
	}

	size := c.cfg.BatchSize
	for start := 0; start < len(docs); start += size {
		end := start + size
		if end > len(docs) {
			end = len(docs)
		}

		if err := c.upsertBatch(ctx, docs[start:end], withEmbedding, report); err != nil {
			return report, fmt.Errorf("pgvector: batch [%d:%d]: %w", start, end, err)
		}
		report.Batches++
	}

	c.log.Info("bulk load finished", nil, map[string]interface{}{
		"table":   c.cfg.Table,
		"total":   report.Total,
		"indexed": report.Indexed,
		"failed":  report.Failed,
	})
	return report, nil
}

func (c *Client) upsertBatch(ctx context.Context, docs []dataset.Document, withEmbedding bool, report *engine.LoadReport) error {
	var sql string
	if withEmbedding {
		sql = fmt.Sprintf(`INSERT INTO %s (id, doc, embedding) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, embedding = EXCLUDED.embedding`, c.tableIdent())
	} else {
		sql = fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc`, c.tableIdent())
	}

	batch := &pgx.Batch{}
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		id := doc.ID()
		body := doc.Clone()
		delete(body, dataset.VectorField)

		payload, err := json.Marshal(body)
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, engine.ItemError{ID: id, Reason: err.Error()})
			continue
		}

		if withEmbedding {
			batch.Queue(sql, id, payload, embeddingValue(doc))
		} else {
			batch.Queue(sql, id, payload)
		}
		ids = append(ids, id)
	}

	results := c.pool.SendBatch(ctx, batch)
	defer results.Close()

	for _, id := range ids {
		if _, err := results.Exec(); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, engine.ItemError{ID: id, Reason: err.Error()})
			continue
		}
		report.Indexed++
	}
	return results.Close()
}

// hasEmbeddingColumn checks whether RegisterVectorField has added the
// embedding column to the table.
func (c *Client) hasEmbeddingColumn(ctx context.Context) (bool, error) {
	var exists bool
	err := c.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_name = $1 AND column_name = 'embedding'
		)`, c.cfg.Table).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("pgvector: inspect columns: %w", err)
	}
	return exists, nil
}

// embeddingValue extracts the document vector as a bindable value,
// NULL when the document has none.
func embeddingValue(doc dataset.Document) any {
	vec, ok := documentVector(doc)
	if !ok {
		return nil
	}
	return pgvec.NewVector(vec)
}

func documentVector(doc dataset.Document) ([]float32, bool) {
	switch v := doc[dataset.VectorField].(type) {
	case []float64:
		out := make([]float32, len(v))
		for i, f := range v {
			out[i] = float32(f)
		}
		return out, len(out) > 0
	case []any:
		out := make([]float32, 0, len(v))
		for _, e := range v {
			f, ok := e.(float64)
			if !ok {
				return nil, false
			}
			out = append(out, float32(f))
		}
		return out, len(out) > 0
	default:
		return nil, false
	}
}
