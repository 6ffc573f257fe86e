// Package solr implements the engine.Engine contract against the Solr
// HTTP API.
//
// A bootstrap run touches four handler families: the instance-level system
// handler for readiness, the core admin API for existence and creation, the
// schema API for the DenseVectorField registration, and the update handler
// for loading. Updates go out in batches with the commit deferred to the
// final batch, so a partially failed load never becomes searchable.
//
// Configuration comes from the environment:
//
//	SOLR_ENDPOINT              base URL including /solr, default http://localhost:8983/solr
//	SOLR_CORE                  core name, default "documents"
//	SOLR_CONFIG_SET            config set for created cores, default "_default"
//	SOLR_BATCH_SIZE            documents per update request, default 1000
//	SOLR_HTTP_TIMEOUT_SECONDS  default 30
package solr
