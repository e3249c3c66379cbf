package enrich

import (
	"context"
	"strings"
	"unicode"
)

// staticEnricher scores candidates by lexical overlap between the query and
// the profile text. It is deterministic and needs no network access.
type staticEnricher struct{}

// NewStaticEnricher returns the offline enricher.
func NewStaticEnricher() Enricher {
	return staticEnricher{}
}

func (staticEnricher) ScoreCandidate(_ context.Context, query, profileText string) (Score, error) {
	queryTokens := tokenSet(query)
	profileTokens := tokenSet(profileText)
	if len(queryTokens) == 0 || len(profileTokens) == 0 {
		return Score{Value: 0, Rationale: "no overlapping terms"}, nil
	}

	matched := 0
	for token := range queryTokens {
		if _, ok := profileTokens[token]; ok {
			matched++
		}
	}

	value := float64(matched) / float64(len(queryTokens))
	rationale := "no overlapping terms"
	if matched > 0 {
		rationale = "query terms found in profile"
	}
	return Score{Value: value, Rationale: rationale}, nil
}

func (staticEnricher) ExtractSkills(_ context.Context, profileText string) ([]string, error) {
	// The languages segment of the profile text is the only skill signal
	// available offline.
	const marker = "Languages: "
	for _, segment := range strings.Split(profileText, " . ") {
		rest, ok := strings.CutPrefix(segment, marker)
		if !ok {
			continue
		}
		var skills []string
		for _, skill := range strings.Split(rest, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				skills = append(skills, skill)
			}
		}
		return skills, nil
	}
	return nil, nil
}

func (staticEnricher) Summarize(_ context.Context, profileText string) (string, error) {
	// First sentence of the profile text, capped for display.
	const maxLen = 200
	summary := profileText
	if i := strings.Index(summary, " . "); i > 0 {
		summary = summary[:i]
	}
	if len(summary) > maxLen {
		summary = summary[:maxLen]
	}
	return strings.TrimSpace(summary), nil
}

func tokenSet(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
