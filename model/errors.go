package model

import "errors"

// ErrModelNotFound is returned when no run in the tracking store produced
// the requested model artifact, or a pinned version cannot be loaded.
var ErrModelNotFound = errors.New("model: no model version found")
