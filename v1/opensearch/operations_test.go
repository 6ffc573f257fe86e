package opensearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relevancelab/searchinit/v1/dataset"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &Config{
		Endpoint:       srv.URL,
		Index:          "documents",
		HTTPTimeoutS:   5,
		Shards:         1,
		EfConstruction: 512,
		M:              16,
		BulkBatchSize:  1000,
	}
	c, err := NewClient(cfg, nil)
	require.NoError(t, err)
	return c
}

func TestCreateIndexEnablesKNN(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/documents", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fmt.Fprint(w, `{"acknowledged":true}`)
	}))

	require.NoError(t, c.CreateIndex(context.Background()))

	index := body["settings"].(map[string]any)["index"].(map[string]any)
	assert.Equal(t, true, index["knn"])
	assert.Equal(t, float64(1), index["number_of_shards"])
}

func TestRegisterVectorFieldUsesKNNVector(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/documents/_mapping", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fmt.Fprint(w, `{"acknowledged":true}`)
	}))

	require.NoError(t, c.RegisterVectorField(context.Background(), 768))

	field := body["properties"].(map[string]any)["vector"].(map[string]any)
	assert.Equal(t, "knn_vector", field["type"])
	assert.Equal(t, float64(768), field["dimension"])

	method := field["method"].(map[string]any)
	assert.Equal(t, "hnsw", method["name"])
	assert.Equal(t, "cosinesimil", method["space_type"])
	assert.Equal(t, float64(512), method["parameters"].(map[string]any)["ef_construction"])
}

func TestBulkLoadTrustsStatusByDefault(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Per-item failure that a 2xx status hides.
		fmt.Fprint(w, `{"errors":true,"items":[{"index":{"_id":"a1","status":400,"error":{"type":"x","reason":"y"}}}]}`)
	}))

	report, err := c.BulkLoad(context.Background(), []dataset.Document{{"id": "a1"}})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Indexed)
	assert.Zero(t, report.Failed)
}

func TestBulkLoadVerifiesWhenEnabled(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"errors": true,
			"items": [
				{"index": {"_id": "a1", "status": 201}},
				{"index": {"_id": "a2", "status": 400, "error": {"type": "illegal_argument_exception", "reason": "dimension mismatch"}}}
			]
		}`)
	}))
	c.cfg.CheckBulkResponse = true

	report, err := c.BulkLoad(context.Background(), []dataset.Document{{"id": "a1"}, {"id": "a2"}})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Indexed)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "a2", report.Errors[0].ID)
}

func TestBulkLoadFailsOnUnaccountableErrorsFlag(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors":true,"items":[]}`)
	}))
	c.cfg.CheckBulkResponse = true

	_, err := c.BulkLoad(context.Background(), []dataset.Document{{"id": "a1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flagged errors")
}

func TestCount(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/documents/_count", r.URL.Path)
		fmt.Fprint(w, `{"count":7}`)
	}))

	n, err := c.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestIndexExists(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	exists, err := c.IndexExists(context.Background())
	require.NoError(t, err)
	assert.False(t, exists)
}
