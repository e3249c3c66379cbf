// Package pipeline implements the four-stage training pipeline:
// Load, Preprocess, Train, Evaluate.
//
// Stages are plain functions with explicit inputs and outputs, composed
// strictly sequentially by Pipeline.Run. There is no caching between runs:
// every execution re-reads, re-aggregates, and re-encodes from scratch.
//
// Load reads the raw user and repository exports; a missing source is
// fatal. Preprocess aggregates repositories per owner, inner-joins them
// with users, and synthesizes the profile text each profile is embedded
// from. Train encodes all profile texts in fixed-size batches, preserving
// row order one-to-one, and logs the model descriptor artifact to the
// tracking store. Evaluate scores the run against the optional
// gold-standard table and always reports basic dataset metrics.
package pipeline
