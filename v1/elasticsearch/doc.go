// Package elasticsearch implements the engine.Engine contract against the
// Elasticsearch HTTP API.
//
// The client covers exactly what a bootstrap run needs: a health probe,
// index existence and creation, a document count, a dense_vector mapping
// update, bulk indexing over NDJSON, and delete-by-query for forced reloads.
// It deliberately avoids the official SDK; the surface is five endpoints and
// a plain http.Client keeps the wire format visible and testable.
//
// Bulk verification is configurable. Elasticsearch returns HTTP 200 for a
// bulk request even when individual items fail, so by default the response
// body is parsed and per-item failures are reported through
// engine.LoadReport. Set ELASTICSEARCH_CHECK_BULK_RESPONSE=false to trust
// the status code alone.
//
// Configuration comes from the environment:
//
//	ELASTICSEARCH_ENDPOINT             base URL, default http://localhost:9200
//	ELASTICSEARCH_INDEX                index name, default "documents"
//	ELASTICSEARCH_SHARDS               primary shards, default 1
//	ELASTICSEARCH_REPLICAS             replicas, default 0
//	ELASTICSEARCH_EXPLICIT_MAPPING     map the id field as keyword at creation
//	ELASTICSEARCH_BULK_BATCH_SIZE      documents per _bulk request, default 1000
//	ELASTICSEARCH_CHECK_BULK_RESPONSE  parse bulk responses, default true
//	ELASTICSEARCH_HTTP_TIMEOUT_SECONDS default 30
package elasticsearch
