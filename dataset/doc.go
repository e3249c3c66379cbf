// Package dataset reads and writes the tabular files the training pipeline
// consumes and produces: raw user and repository exports, the processed
// profile table, and the optional gold-standard relevance table.
//
// Readers are header-driven and tolerant of column order; missing cells
// become zero values. Missing files are a distinct, fatal condition
// (ErrMissingSource) for the raw sources, and a recoverable one for the
// gold standard.
package dataset
