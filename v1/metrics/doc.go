// Package metrics provides Prometheus metrics for the bootstrap tool.
//
// It maintains an isolated registry carrying the bootstrap metric set
// (readiness probe attempts, bulk batches, documents indexed, and per-stage
// durations), all labelled with the target engine, plus factories for
// registering additional collectors.
//
// A one-shot bootstrap run usually leaves Config.Address empty and relies on
// the registry alone (e.g. for assertions in tests). Setting an address starts
// a /metrics scrape server managed by the Fx lifecycle, which is useful when
// the tool runs as a long-lived init container that operators want to observe.
//
//	app := fx.New(
//		metrics.FXModule,
//		fx.Provide(metrics.NewConfig),
//	)
package metrics
