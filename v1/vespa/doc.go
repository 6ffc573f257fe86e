// Package vespa implements the engine.Engine contract against a Vespa
// deployment, including the deployment itself.
//
// Vespa differs from the other engines in that the schema is not created at
// runtime: it ships inside an application package that must be activated on
// the config server before the container serves anything. The client
// therefore also implements engine.Deployer. Deploy waits for the config
// server (which can take minutes on a cold start, hence its own attempt
// budget), zips the application package directory in memory and submits it
// to prepareandactivate. RegisterVectorField and CreateIndex reduce to
// verification because both are consequences of the deployed schema.
//
// Feeding goes through the document API one document at a time, with a
// bounded number of concurrent PUTs. Single-string author values are
// normalised to arrays to match the array<string> schema field.
//
// Configuration comes from the environment:
//
//	VESPA_CONFIG_ENDPOINT     config server URL, default http://localhost:19071
//	VESPA_ENDPOINT            container URL, default http://localhost:8080
//	VESPA_APP_PACKAGE         application package dir, default /opt/app/vespa-app
//	VESPA_TENANT              deployment tenant, default "default"
//	VESPA_CONFIG_MAX_ATTEMPTS config server readiness budget, default 300
//	VESPA_NAMESPACE           document namespace, default "default"
//	VESPA_DOCUMENT_TYPE       document type, default "documents"
//	VESPA_CLUSTER             content cluster for delete-by-selection, default "documents"
//	VESPA_FEED_WORKERS        concurrent feed requests, default 16
//	VESPA_HTTP_TIMEOUT_SECONDS default 30
package vespa
