// Package enrich scores candidate profiles against a search query.
//
// The agent search endpoint retrieves candidates from the vector index,
// then asks an Enricher to judge each one against the recruiter's query.
// The resulting agent scores are written back into the profile table, where
// the next pipeline run picks them up for evaluation against the gold
// standard.
//
// Two implementations exist: a Gemini-backed enricher for production use
// and a deterministic lexical one that needs no network access, used as
// the default and in tests.
package enrich
