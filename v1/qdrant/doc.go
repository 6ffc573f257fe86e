// Package qdrant implements the engine.Engine contract on top of the
// official Qdrant Go client.
//
// Qdrant is vector-native, which shifts two things relative to the
// text-search engines. The collection must be created with a vector size
// before any point goes in, so CreateIndex uses the configured default
// dimension and RegisterVectorField recreates the collection if it is still
// empty but sized differently from the dataset's embeddings. And documents
// without a vector have no representation at all; BulkLoad reports them as
// failed items instead of feeding placeholder vectors.
//
// Point ids are derived from the document identifier: numeric ids and UUIDs
// pass through, anything else is hashed into a deterministic UUID with the
// original id preserved in the payload.
//
// Configuration comes from the environment:
//
//	QDRANT_ENDPOINT             host, default "localhost"
//	QDRANT_PORT                 gRPC port, default 6334
//	QDRANT_API_KEY              optional
//	QDRANT_COLLECTION           collection name, default "documents"
//	QDRANT_VECTOR_SIZE          dimension for pre-embedding creation, default 1536
//	QDRANT_BATCH_SIZE           points per upsert, default 200
//	QDRANT_CHECK_COMPATIBILITY  verify client/server versions, default false
package qdrant
