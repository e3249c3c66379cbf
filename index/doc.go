// Package index maintains the profile vector index in Qdrant.
//
// The training pipeline pushes freshly encoded profile vectors into a
// single collection after each run; the serving layer queries the same
// collection for candidate search. Point ids are derived deterministically
// from the profile login, so re-running the pipeline upserts in place
// instead of accumulating duplicates.
//
// The index is optional. When disabled through configuration the rest of
// the system runs without it; the pipeline simply skips vector publishing
// and candidate search is unavailable.
package index
