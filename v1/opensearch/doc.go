// Package opensearch implements the engine.Engine contract against the
// OpenSearch HTTP API.
//
// The surface mirrors the elasticsearch package where the two engines agree,
// and diverges where the k-NN plugin differs: indices are created with the
// index.knn setting, and the vector field maps as knn_vector with an HNSW
// method using cosine similarity. Bulk response verification defaults to
// off here; set OPENSEARCH_CHECK_BULK_RESPONSE=true to parse per-item
// results into the load report.
//
// Configuration comes from the environment:
//
//	OPENSEARCH_ENDPOINT              base URL, default http://localhost:9200
//	OPENSEARCH_INDEX                 index name, default "documents"
//	OPENSEARCH_SHARDS                primary shards, default 1
//	OPENSEARCH_REPLICAS              replicas, default 0
//	OPENSEARCH_KNN_EF_CONSTRUCTION   HNSW build parameter, default 512
//	OPENSEARCH_KNN_M                 HNSW graph degree, default 16
//	OPENSEARCH_BULK_BATCH_SIZE       documents per _bulk request, default 1000
//	OPENSEARCH_CHECK_BULK_RESPONSE   parse bulk responses, default false
//	OPENSEARCH_HTTP_TIMEOUT_SECONDS  default 30
package opensearch
