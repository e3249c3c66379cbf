// Package metrics exposes Prometheus metrics for the talent matching
// service: prediction counters and latencies on the serving path, and run
// counters and stage durations for the training pipeline.
//
// Each process gets its own isolated registry wrapped with a constant
// service label, served on a dedicated /metrics HTTP endpoint.
//
// All recording methods are nil-receiver safe, so components can treat the
// metrics handle as optional.
package metrics
