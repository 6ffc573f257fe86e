// Package bootstrap drives the one-shot environment initialisation of a
// search engine: wait until the engine answers health probes, make sure the
// target index or schema exists, and load the dataset exactly once.
//
// The sequence is engine agnostic. All wire-level work is delegated to an
// engine.Engine implementation; this package only owns the policy around it:
//
//  1. Deploy the application package first, when the engine implements
//     engine.Deployer (Vespa needs its schema activated before the
//     container answers anything).
//  2. Poll Ping at a fixed interval until it succeeds or the attempt
//     budget is spent.
//  3. Create the index when it does not exist yet.
//  4. Count existing documents. A non-zero count means a previous run
//     already loaded the data and the load is skipped, unless
//     FORCE_REINDEX is set.
//  5. When an embeddings file is present, merge the vectors into the
//     documents, register the vector field with the detected dimension,
//     and only then bulk load.
//
// Configuration comes from the environment:
//
//	DATASET                  path or object key of the dataset (JSON array or NDJSON)
//	EMBEDDINGS_FILE          path or object key of the embeddings JSONL, optional
//	TMP_FILE                 where to write the merged dataset artifact, optional
//	BOOTSTRAP_MAX_ATTEMPTS   readiness probe budget, default 30
//	BOOTSTRAP_PROBE_INTERVAL pause between probes, default 1s
//	FORCE_REINDEX            truncate and reload even when documents exist
//	COUNT_FALLBACK_ZERO      treat a failed count as zero instead of aborting
//
// Usage with Fx:
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,
//		tracer.FXModule,
//		bootstrap.FXModule,
//		elasticsearch.FXModule,
//		fx.Provide(func() dataset.Source { return dataset.FileSource{} }),
//		fx.Invoke(func(r *bootstrap.Runner, sd fx.Shutdowner) {
//			go func() {
//				err := r.Run(context.Background())
//				_ = sd.Shutdown(fx.ExitCode(exitCode(err)))
//			}()
//		}),
//	)
//
// Direct usage without Fx:
//
//	runner := bootstrap.NewRunner(cfg, eng, loader, dataset.FileSource{}, log, nil, nil)
//	if err := runner.Run(ctx); err != nil {
//		log.Fatal("bootstrap failed", err)
//	}
package bootstrap
