// Package tracking implements the experiment tracking store used by the
// training pipeline and the model manager.
//
// # Overview
//
// The store records experiments, runs, and artifacts. A run is one recorded
// pipeline execution with its parameters, metrics, and named artifacts. Runs
// are opened through a Scope, which is the only way to log into a run:
//
//	scope, err := store.StartRun(ctx, "talent-matching", "training")
//	if err != nil { ... }
//	defer scope.Close(err)
//
//	scope.LogParam("model_name", modelName)
//	scope.LogMetric("mae", mae)
//	scope.LogArtifact(ctx, "embedding_model", payload)
//
// Closing a scope finalizes the run; after Close the run is immutable.
// Nested scopes (Scope.StartNested) record child runs, used by the
// hyperparameter search loop to group trials under one study.
//
// # Implementations
//
// Two implementations of Store are provided:
//
//   - NewMemoryStore: in-process store for tests and local runs.
//   - NewPostgresStore: GORM-backed Postgres store with artifact payloads
//     in MinIO under "<run_id>/<artifact_name>".
//
// The model manager consumes only the read-only Reader subset; the store is
// never mutated on the serving path.
package tracking
