package dataset

import "errors"

// ErrMissingSource marks a required raw input file that does not exist.
// The pipeline cannot proceed without it.
var ErrMissingSource = errors.New("dataset: required source file missing")
