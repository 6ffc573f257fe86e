package vespa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
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
		ConfigEndpoint:    srv.URL,
		Endpoint:          srv.URL,
		HTTPTimeoutS:      5,
		AppPackagePath:    t.TempDir(),
		Tenant:            "default",
		ConfigMaxAttempts: 3,
		Namespace:         "default",
		DocumentType:      "documents",
		Cluster:           "documents",
		FeedWorkers:       4,
	}
	c, err := NewClient(cfg, nil)
	require.NoError(t, err)
	return c
}

func TestCount(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/", r.URL.Path)
		assert.Equal(t, "select * from sources * where true", r.URL.Query().Get("yql"))
		assert.Equal(t, "0", r.URL.Query().Get("hits"))
		fmt.Fprint(w, `{"root":{"fields":{"totalCount":57}}}`)
	}))

	n, err := c.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(57), n)
}

func TestCountFallsBackToZero(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no content nodes up", http.StatusServiceUnavailable)
	}))

	n, err := c.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBulkLoadFeedsEachDocument(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies = map[string]map[string]any{}
	)
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		mu.Lock()
		bodies[r.URL.Path] = body
		mu.Unlock()

		fmt.Fprint(w, `{"id":"ok"}`)
	}))

	docs := []dataset.Document{
		{"id": "b1", "title": "one", "authors": "Solo Author"},
		{"id": "b2", "title": "two", "authors": []any{"A", "B"}, "vector": []float64{0.1, 0.2}},
	}
	report, err := c.BulkLoad(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Indexed)
	assert.Zero(t, report.Failed)

	first := bodies["/document/v1/default/documents/docid/b1"]
	require.NotNil(t, first)
	fields := first["fields"].(map[string]any)
	assert.NotContains(t, fields, "id")
	// Single-string authors are normalised to an array.
	assert.Equal(t, []any{"Solo Author"}, fields["authors"])

	second := bodies["/document/v1/default/documents/docid/b2"]
	require.NotNil(t, second)
	vector := second["fields"].(map[string]any)["vector"].(map[string]any)
	assert.Equal(t, []any{0.1, 0.2}, vector["values"])
}

func TestBulkLoadCollectsItemFailures(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/document/v1/default/documents/docid/bad" {
			http.Error(w, `{"message":"field mismatch"}`, http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `{"id":"ok"}`)
	}))

	docs := []dataset.Document{
		{"id": "good"},
		{"id": "bad"},
	}
	report, err := c.BulkLoad(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Indexed)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "bad", report.Errors[0].ID)
}

func TestBulkLoadBoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		defer inFlight.Add(-1)
		fmt.Fprint(w, `{"id":"ok"}`)
	}))
	c.cfg.FeedWorkers = 2

	docs := make([]dataset.Document, 20)
	for i := range docs {
		docs[i] = dataset.Document{"id": fmt.Sprintf("d%d", i)}
	}
	report, err := c.BulkLoad(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, 20, report.Indexed)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestDeleteAll(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/document/v1/default/documents/docid", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("selection"))
		assert.Equal(t, "documents", r.URL.Query().Get("cluster"))
		fmt.Fprint(w, `{"documentCount":3}`)
	}))

	require.NoError(t, c.DeleteAll(context.Background()))
}

func TestIndexExists(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/document/v1/default/documents/docid", r.URL.Path)
		fmt.Fprint(w, `{"documents":[]}`)
	}))

	exists, err := c.IndexExists(context.Background())
	require.NoError(t, err)
	assert.True(t, exists)
}
