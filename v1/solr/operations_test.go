package solr

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
		Endpoint:     srv.URL + "/solr",
		Core:         "documents",
		HTTPTimeoutS: 5,
		ConfigSet:    "_default",
		BatchSize:    1000,
	}
	c, err := NewClient(cfg, nil)
	require.NoError(t, err)
	return c
}

func TestIndexExists(t *testing.T) {
	tests := []struct {
		name string
		resp string
		want bool
	}{
		{
			name: "core loaded",
			resp: `{"status":{"documents":{"name":"documents","uptime":12}}}`,
			want: true,
		},
		{
			name: "core unknown",
			resp: `{"status":{"documents":{}}}`,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/solr/admin/cores", r.URL.Path)
				assert.Equal(t, "STATUS", r.URL.Query().Get("action"))
				assert.Equal(t, "documents", r.URL.Query().Get("core"))
				fmt.Fprint(w, tt.resp)
			}))

			got, err := c.IndexExists(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateIndex(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/solr/admin/cores", r.URL.Path)
		assert.Equal(t, "CREATE", r.URL.Query().Get("action"))
		assert.Equal(t, "documents", r.URL.Query().Get("name"))
		assert.Equal(t, "_default", r.URL.Query().Get("configSet"))
		fmt.Fprint(w, `{"responseHeader":{"status":0}}`)
	}))

	require.NoError(t, c.CreateIndex(context.Background()))
}

func TestCount(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/solr/documents/select", r.URL.Path)
		assert.Equal(t, "*:*", r.URL.Query().Get("q"))
		assert.Equal(t, "0", r.URL.Query().Get("rows"))
		fmt.Fprint(w, `{"response":{"numFound":123,"docs":[]}}`)
	}))

	n, err := c.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(123), n)
}

func TestRegisterVectorField(t *testing.T) {
	var schemaPosts []map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			// Neither the type nor the field exists yet.
			http.Error(w, `{"error":{"msg":"not found"}}`, http.StatusNotFound)
		case r.Method == http.MethodPost:
			assert.Equal(t, "/solr/documents/schema", r.URL.Path)
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			schemaPosts = append(schemaPosts, body)
			fmt.Fprint(w, `{"responseHeader":{"status":0}}`)
		}
	}))

	require.NoError(t, c.RegisterVectorField(context.Background(), 384))

	require.Len(t, schemaPosts, 2)
	fieldType := schemaPosts[0]["add-field-type"].(map[string]any)
	assert.Equal(t, "knn_vector", fieldType["name"])
	assert.Equal(t, "solr.DenseVectorField", fieldType["class"])
	assert.Equal(t, "384", fieldType["vectorDimension"])
	assert.Equal(t, "cosine", fieldType["similarityFunction"])

	field := schemaPosts[1]["add-field"].(map[string]any)
	assert.Equal(t, "vector", field["name"])
	assert.Equal(t, "knn_vector", field["type"])
}

func TestRegisterVectorFieldIdempotent(t *testing.T) {
	var posts int
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			posts++
		}
		// Schema objects already present.
		fmt.Fprint(w, `{"responseHeader":{"status":0}}`)
	}))

	require.NoError(t, c.RegisterVectorField(context.Background(), 384))
	assert.Zero(t, posts)
}

func TestBulkLoadCommitsOnLastBatch(t *testing.T) {
	type call struct {
		commit string
		docs   int
	}
	var calls []call
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/solr/documents/update", r.URL.Path)
		var batch []dataset.Document
		require.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
		calls = append(calls, call{commit: r.URL.Query().Get("commit"), docs: len(batch)})
		fmt.Fprint(w, `{"responseHeader":{"status":0}}`)
	}))
	c.cfg.BatchSize = 2

	docs := make([]dataset.Document, 5)
	for i := range docs {
		docs[i] = dataset.Document{"id": fmt.Sprintf("d%d", i)}
	}
	report, err := c.BulkLoad(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Indexed)
	assert.False(t, report.Partial())

	require.Len(t, calls, 3)
	assert.Equal(t, call{commit: "false", docs: 2}, calls[0])
	assert.Equal(t, call{commit: "false", docs: 2}, calls[1])
	assert.Equal(t, call{commit: "true", docs: 1}, calls[2])
}

func TestDeleteAll(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/solr/documents/update", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("commit"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fmt.Fprint(w, `{"responseHeader":{"status":0}}`)
	}))

	require.NoError(t, c.DeleteAll(context.Background()))
	assert.Equal(t, "*:*", body["delete"].(map[string]any)["query"])
}

func TestPingFailsWhileStarting(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "loading", http.StatusServiceUnavailable)
	}))

	require.Error(t, c.Ping(context.Background()))
}
