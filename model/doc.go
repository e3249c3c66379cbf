// Package model manages embedding model versions at serving time.
//
// The Resolver finds the newest run in the tracking store that produced a
// model artifact. The search walks experiments in store order, takes each
// experiment's most recent run, and stops at the first experiment whose
// latest run carries the artifact. That is a first-match policy, not a
// global most-recent policy; see DESIGN.md for why it is kept.
//
// The Manager holds the "current" encoder plus a version-keyed cache of
// previously loaded encoders. The cache is insertion-only and never
// evicted. Resolution and load failures on the latest/version paths are
// absorbed by falling back to the default policy; encode failures on an
// already-resolved encoder always propagate to the caller.
//
// The default policy is deliberately sharp-edged: "default" means whatever
// encoder is already loaded, or a freshly built baseline when nothing is.
// Callers that need a hard failure instead of a fallback (the version-load
// endpoint) use LoadVersionStrict.
package model
