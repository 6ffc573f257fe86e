package pgvector

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/relevancelab/searchinit/v1/dataset"
)

// setupPostgresContainer starts a PostgreSQL container with the pgvector
// extension available and returns a DSN for it.
func setupPostgresContainer(ctx context.Context, t *testing.T) string {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image: "pgvector/pgvector:pg16",
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "searchinit",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://postgres:postgres@%s:%d/searchinit", host, port.Int())
}

func TestPgvectorEngineIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	dsn := setupPostgresContainer(ctx, t)

	client, err := NewClient(&Config{DSN: dsn, Table: "documents", BatchSize: 2}, nil)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Ping(ctx))

	t.Run("CreateIndex", func(t *testing.T) {
		exists, err := client.IndexExists(ctx)
		require.NoError(t, err)
		require.False(t, exists)

		require.NoError(t, client.CreateIndex(ctx))

		exists, err = client.IndexExists(ctx)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("LoadWithoutEmbeddings", func(t *testing.T) {
		docs := []dataset.Document{
			{"id": "p1", "title": "plain one"},
			{"id": "p2", "title": "plain two"},
		}
		report, err := client.BulkLoad(ctx, docs)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Indexed)

		n, err := client.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("RegisterVectorFieldAndReload", func(t *testing.T) {
		require.NoError(t, client.RegisterVectorField(ctx, 3))
		// Idempotent.
		require.NoError(t, client.RegisterVectorField(ctx, 3))

		docs := []dataset.Document{
			{"id": "p1", "title": "with vector", "vector": []float64{0.1, 0.2, 0.3}},
			{"id": "p3", "title": "no vector"},
		}
		report, err := client.BulkLoad(ctx, docs)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Indexed)
		assert.Zero(t, report.Failed)

		// Upsert, not append: p1 was overwritten.
		n, err := client.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		var title string
		err = client.pool.QueryRow(ctx,
			"SELECT doc->>'title' FROM documents WHERE id = 'p1'").Scan(&title)
		require.NoError(t, err)
		assert.Equal(t, "with vector", title)

		var withEmbedding int64
		err = client.pool.QueryRow(ctx,
			"SELECT count(*) FROM documents WHERE embedding IS NOT NULL").Scan(&withEmbedding)
		require.NoError(t, err)
		assert.Equal(t, int64(1), withEmbedding)
	})

	t.Run("DeleteAll", func(t *testing.T) {
		require.NoError(t, client.DeleteAll(ctx))

		n, err := client.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
