package qdrant

import (
	"context"
	"fmt"
	"slices"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/relevancelab/searchinit/v1/dataset"
	"github.com/relevancelab/searchinit/v1/engine"
)

var (
	_ engine.Engine    = (*Client)(nil)
	_ engine.Truncater = (*Client)(nil)
)

// IndexExists reports whether the configured collection exists.
func (c *Client) IndexExists(ctx context.Context) (bool, error) {
	collections, err := c.api.ListCollections(ctx)
	if err != nil {
		return false, fmt.Errorf("qdrant: list collections: %w", err)
	}
	return slices.Contains(collections, c.cfg.Collection), nil
}

// CreateIndex creates the collection with the configured default dimension
// and cosine distance. Qdrant needs the vector size at creation time; when
// the dataset carries embeddings of a different dimension,
// RegisterVectorField recreates the still-empty collection to match.
func (c *Client) CreateIndex(ctx context.Context) error {
	return c.createCollection(ctx, c.cfg.VectorSize)
}

func (c *Client) createCollection(ctx context.Context, dimension int) error {
	req := &qdrant.CreateCollection{
		CollectionName: c.cfg.Collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	}
	if err := c.api.CreateCollection(ctx, req); err != nil {
		return fmt.Errorf("qdrant: create collection %q: %w", c.cfg.Collection, err)
	}

	c.log.Info("created collection", nil, map[string]interface{}{
		"collection": c.cfg.Collection,
		"dimension":  dimension,
	})
	return nil
}

// Count returns the exact number of points in the collection.
func (c *Client) Count(ctx context.Context) (int64, error) {
	exact := true
	n, err := c.api.Count(ctx, &qdrant.CountPoints{
		CollectionName: c.cfg.Collection,
		Exact:          &exact,
	})
	if err != nil {
		return 0, fmt.Errorf("qdrant: count: %w", err)
	}
	return int64(n), nil
}

// RegisterVectorField aligns the collection with the embedding dimension
// detected from the dataset. A mismatched but empty collection is dropped
// and recreated; a mismatched collection holding points is an error, since
// recreating it would silently discard data.
func (c *Client) RegisterVectorField(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("qdrant: vector dimension must be positive, got %d", dimension)
	}

	info, err := c.api.GetCollectionInfo(ctx, c.cfg.Collection)
	if err != nil {
		return fmt.Errorf("qdrant: get collection %q: %w", c.cfg.Collection, err)
	}

	size := collectionVectorSize(info)
	if size == dimension {
		return nil
	}

	if points := derefUint64(info.PointsCount); points > 0 {
		return fmt.Errorf("qdrant: collection %q has dimension %d with %d points, cannot change to %d",
			c.cfg.Collection, size, points, dimension)
	}

	c.log.Warn("recreating empty collection with detected dimension", nil, map[string]interface{}{
		"collection": c.cfg.Collection,
		"old":        size,
		"new":        dimension,
	})

	if err := c.api.DeleteCollection(ctx, c.cfg.Collection); err != nil {
		return fmt.Errorf("qdrant: drop collection %q: %w", c.cfg.Collection, err)
	}
	return c.createCollection(ctx, dimension)
}

// DeleteAll removes every point from the collection. An empty filter
// selects everything.
func (c *Client) DeleteAll(ctx context.Context) error {
	wait := true
	_, err := c.api.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: c.cfg.Collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{Filter: &qdrant.Filter{}},
		},
		Wait: &wait,
	})
	if err != nil {
		return fmt.Errorf("qdrant: delete all: %w", err)
	}

	c.log.Info("deleted all points", nil, map[string]interface{}{"collection": c.cfg.Collection})
	return nil
}

// BulkLoad upserts the documents in batches with Wait set, so points are
// persisted before the call returns. Documents without a vector cannot
// become points and are reported as failures rather than aborting the load.
func (c *Client) BulkLoad(ctx context.Context, docs []dataset.Document) (*engine.LoadReport, error) {
	report := &engine.LoadReport{Total: len(docs)}
	if len(docs) == 0 {
		return report, nil
	}

	points := make([]*qdrant.PointStruct, 0, c.cfg.BatchSize)
	flush := func(from, to int) error {
		if len(points) == 0 {
			return nil
		}
		wait := true
		_, err := c.api.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: c.cfg.Collection,
			Points:         points,
			Wait:           &wait,
		})
		if err != nil {
			return fmt.Errorf("qdrant: upsert [%d:%d]: %w", from, to, err)
		}
		report.Indexed += len(points)
		report.Batches++
		points = points[:0]
		return nil
	}

	batchStart := 0
	for i, doc := range docs {
		vector, ok := documentVector(doc)
		if !ok {
			report.Failed++
			report.Errors = append(report.Errors, engine.ItemError{
				ID:     doc.ID(),
				Reason: "document has no vector",
			})
			continue
		}

		payload := doc.Clone()
		delete(payload, dataset.VectorField)

		points = append(points, &qdrant.PointStruct{
			Id:      pointID(doc.ID()),
			Vectors: qdrant.NewVectors(vector...),
			Payload: qdrant.NewValueMap(map[string]any(payload)),
		})

		if len(points) >= c.cfg.BatchSize {
			if err := flush(batchStart, i+1); err != nil {
				return report, err
			}
			batchStart = i + 1
		}
	}
	if err := flush(batchStart, len(docs)); err != nil {
		return report, err
	}

	c.log.Info("bulk load finished", nil, map[string]interface{}{
		"collection": c.cfg.Collection,
		"total":      report.Total,
		"indexed":    report.Indexed,
		"failed":     report.Failed,
	})
	return report, nil
}
