package elasticsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relevancelab/searchinit/v1/dataset"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &Config{
		Endpoint:          srv.URL,
		Index:             "documents",
		HTTPTimeoutS:      5,
		Shards:            1,
		Replicas:          0,
		BulkBatchSize:     1000,
		CheckBulkResponse: true,
	}
	c, err := NewClient(cfg, nil)
	require.NoError(t, err)
	return c, srv
}

func TestPing(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_cluster/health", r.URL.Path)
		fmt.Fprint(w, `{"status":"yellow"}`)
	}))

	assert.NoError(t, c.Ping(context.Background()))
}

func TestPingUnavailable(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no master", http.StatusServiceUnavailable)
	}))

	err := c.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestIndexExists(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		want    bool
		wantErr bool
	}{
		{name: "present", status: http.StatusOK, want: true},
		{name: "absent", status: http.StatusNotFound, want: false},
		{name: "server error", status: http.StatusInternalServerError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodHead, r.Method)
				assert.Equal(t, "/documents", r.URL.Path)
				w.WriteHeader(tt.status)
			}))

			got, err := c.IndexExists(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateIndex(t *testing.T) {
	var body map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/documents", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fmt.Fprint(w, `{"acknowledged":true}`)
	}))

	require.NoError(t, c.CreateIndex(context.Background()))

	index := body["settings"].(map[string]any)["index"].(map[string]any)
	assert.Equal(t, float64(1), index["number_of_shards"])
	assert.Equal(t, float64(0), index["number_of_replicas"])
	assert.NotContains(t, body, "mappings")
}

func TestCreateIndexExplicitMapping(t *testing.T) {
	var body map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fmt.Fprint(w, `{"acknowledged":true}`)
	}))
	c.cfg.ExplicitMapping = true

	require.NoError(t, c.CreateIndex(context.Background()))

	props := body["mappings"].(map[string]any)["properties"].(map[string]any)
	assert.Equal(t, "keyword", props["id"].(map[string]any)["type"])
}

func TestCount(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/documents/_count", r.URL.Path)
		fmt.Fprint(w, `{"count":42}`)
	}))

	n, err := c.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
}

func TestRegisterVectorField(t *testing.T) {
	var body map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/documents/_mapping", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fmt.Fprint(w, `{"acknowledged":true}`)
	}))

	require.NoError(t, c.RegisterVectorField(context.Background(), 384))

	field := body["properties"].(map[string]any)["vector"].(map[string]any)
	assert.Equal(t, "dense_vector", field["type"])
	assert.Equal(t, float64(384), field["dims"])
	assert.Equal(t, true, field["index"])
	assert.Equal(t, "cosine", field["similarity"])
}

func TestRegisterVectorFieldRejectsBadDimension(t *testing.T) {
	c, _ := newTestClient(t, http.NotFoundHandler())

	err := c.RegisterVectorField(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension")
}

func TestBulkLoad(t *testing.T) {
	var (
		urls    []string
		payload string
	)
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urls = append(urls, r.URL.String())
		buf, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		payload = string(buf)
		fmt.Fprint(w, `{"errors":false,"items":[]}`)
	}))

	docs := []dataset.Document{
		{"id": "a1", "title": "first"},
		{"id": "a2", "title": "second"},
	}
	report, err := c.BulkLoad(context.Background(), docs)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Indexed)
	assert.Zero(t, report.Failed)
	assert.False(t, report.Partial())

	require.Len(t, urls, 1)
	assert.Equal(t, "/documents/_bulk?refresh=true", urls[0])

	lines := strings.Split(strings.TrimSpace(payload), "\n")
	require.Len(t, lines, 4)
	assert.JSONEq(t, `{"index":{"_id":"a1"}}`, lines[0])
	// The identifier lives in the action line only.
	assert.JSONEq(t, `{"title":"first"}`, lines[1])
	assert.JSONEq(t, `{"index":{"_id":"a2"}}`, lines[2])
}

func TestBulkLoadBatching(t *testing.T) {
	var urls []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urls = append(urls, r.URL.String())
		fmt.Fprint(w, `{"errors":false,"items":[]}`)
	}))
	c.cfg.BulkBatchSize = 2

	docs := make([]dataset.Document, 5)
	for i := range docs {
		docs[i] = dataset.Document{"id": fmt.Sprintf("d%d", i)}
	}
	report, err := c.BulkLoad(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Indexed)
	assert.Equal(t, 3, report.Batches)

	require.Len(t, urls, 3)
	assert.Equal(t, "/documents/_bulk", urls[0])
	assert.Equal(t, "/documents/_bulk", urls[1])
	// Only the last batch requests a refresh.
	assert.Equal(t, "/documents/_bulk?refresh=true", urls[2])
}

func TestBulkLoadReportsItemFailures(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"errors": true,
			"items": [
				{"index": {"_id": "a1", "status": 201}},
				{"index": {"_id": "a2", "status": 400, "error": {"type": "mapper_parsing_exception", "reason": "failed to parse field [vector]"}}}
			]
		}`)
	}))

	docs := []dataset.Document{
		{"id": "a1"},
		{"id": "a2"},
	}
	report, err := c.BulkLoad(context.Background(), docs)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Indexed)
	assert.Equal(t, 1, report.Failed)
	assert.True(t, report.Partial())
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "a2", report.Errors[0].ID)
	assert.Contains(t, report.Errors[0].Reason, "mapper_parsing_exception")
}

func TestBulkLoadFailsOnUnaccountableErrorsFlag(t *testing.T) {
	// The top-level flag must fail the load even when the items array gives
	// nothing to pin the failure on.
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors":true,"items":[]}`)
	}))

	_, err := c.BulkLoad(context.Background(), []dataset.Document{{"id": "a1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flagged errors")
}

func TestBulkLoadSkipsVerificationWhenDisabled(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors":true,"items":[{"index":{"_id":"a1","status":400,"error":{"type":"x","reason":"y"}}}]}`)
	}))
	c.cfg.CheckBulkResponse = false

	report, err := c.BulkLoad(context.Background(), []dataset.Document{{"id": "a1"}})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Indexed)
	assert.Zero(t, report.Failed)
}

func TestDeleteAll(t *testing.T) {
	var body map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/documents/_delete_by_query", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("refresh"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fmt.Fprint(w, `{"deleted":42}`)
	}))

	require.NoError(t, c.DeleteAll(context.Background()))
	assert.Contains(t, body["query"], "match_all")
}
