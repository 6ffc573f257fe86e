package vespa

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZipAppPackage(t *testing.T) {
	fsys := fstest.MapFS{
		"services.xml":        {Data: []byte("<services/>")},
		"schemas/documents.sd": {Data: []byte("schema documents {}")},
	}

	data, err := zipAppPackage(fsys)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	names := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		names[f.Name] = string(content)
	}

	assert.Equal(t, "<services/>", names["services.xml"])
	assert.Equal(t, "schema documents {}", names["schemas/documents.sd"])
}

func TestDeploy(t *testing.T) {
	var deployed bool
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/state/v1/health":
			fmt.Fprint(w, `{"status":{"code":"up"}}`)
		case "/application/v2/tenant/default/prepareandactivate":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/zip", r.Header.Get("Content-Type"))

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			_, err = zip.NewReader(bytes.NewReader(body), int64(len(body)))
			assert.NoError(t, err, "payload must be a valid zip archive")

			deployed = true
			fmt.Fprint(w, `{"message":"Session activated"}`)
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))

	// Minimal application package on disk.
	require.NoError(t, os.WriteFile(filepath.Join(c.cfg.AppPackagePath, "services.xml"), []byte("<services/>"), 0o644))

	require.NoError(t, c.Deploy(context.Background()))
	assert.True(t, deployed)
}

func TestDeployGivesUpWhenConfigServerStaysDown(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":{"code":"initializing"}}`)
	}))
	c.cfg.ConfigMaxAttempts = 1

	err := c.Deploy(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config server not ready")
}
