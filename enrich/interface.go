package enrich

import "context"

// Score is one enrichment judgment. Value is in [0, 1].
type Score struct {
	Value     float64
	Rationale string
}

// Enricher judges candidate profiles against a free-text search query.
type Enricher interface {
	// ScoreCandidate rates how well the profile matches the query.
	ScoreCandidate(ctx context.Context, query, profileText string) (Score, error)

	// ExtractSkills lists the technical skills found in the profile.
	ExtractSkills(ctx context.Context, profileText string) ([]string, error)

	// Summarize produces a short recruiter-facing summary of the profile.
	Summarize(ctx context.Context, profileText string) (string, error)
}
