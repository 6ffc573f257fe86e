// Package pgvector implements the engine.Engine contract on PostgreSQL with
// the pgvector extension.
//
// Documents are stored as jsonb rows keyed by the document identifier, with
// the embedding in a separate vector column. The column and its HNSW cosine
// index are only added once the dimension is known, which keeps a
// no-embeddings bootstrap working against a plain table. Loads are pipelined
// through pgx batches and upsert on the primary key, so reruns converge to
// the same rows.
//
// Configuration comes from the environment:
//
//	PGVECTOR_DSN         PostgreSQL connection string
//	PGVECTOR_TABLE       table name, default "documents"
//	PGVECTOR_BATCH_SIZE  rows per pipelined batch, default 500
package pgvector
