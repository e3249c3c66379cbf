package enrich

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticScoreFractionOfQueryTerms(t *testing.T) {
	ctx := context.Background()
	e := NewStaticEnricher()

	score, err := e.ScoreCandidate(ctx, "golang backend engineer", "Alice . backend engineer at Acme . Languages: Go")
	require.NoError(t, err)
	// "backend" and "engineer" match, "golang" does not.
	assert.InDelta(t, 2.0/3.0, score.Value, 1e-9)
	assert.Equal(t, "query terms found in profile", score.Rationale)
}

func TestStaticScoreCaseAndPunctuationInsensitive(t *testing.T) {
	ctx := context.Background()
	e := NewStaticEnricher()

	score, err := e.ScoreCandidate(ctx, "RUST", "Projects: rust-analyzer, tools")
	require.NoError(t, err)
	assert.Equal(t, 1.0, score.Value)
}

func TestStaticScoreNoOverlap(t *testing.T) {
	ctx := context.Background()
	e := NewStaticEnricher()

	score, err := e.ScoreCandidate(ctx, "haskell", "python data scientist")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score.Value)
	assert.Equal(t, "no overlapping terms", score.Rationale)
}

func TestStaticScoreEmptyInputs(t *testing.T) {
	ctx := context.Background()
	e := NewStaticEnricher()

	score, err := e.ScoreCandidate(ctx, "", "some profile")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score.Value)

	score, err = e.ScoreCandidate(ctx, "query", "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score.Value)
}

func TestStaticExtractSkillsFromLanguagesSegment(t *testing.T) {
	ctx := context.Background()
	e := NewStaticEnricher()

	skills, err := e.ExtractSkills(ctx, "Alice . systems programmer . Languages: C, Go . Total stars: 12")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "Go"}, skills)
}

func TestStaticExtractSkillsWithoutLanguages(t *testing.T) {
	ctx := context.Background()
	e := NewStaticEnricher()

	skills, err := e.ExtractSkills(ctx, "Alice . systems programmer")
	require.NoError(t, err)
	assert.Empty(t, skills)
}

func TestStaticSummarizeFirstSegment(t *testing.T) {
	ctx := context.Background()
	e := NewStaticEnricher()

	summary, err := e.Summarize(ctx, "Alice . systems programmer . Location: Berlin")
	require.NoError(t, err)
	assert.Equal(t, "Alice", summary)
}

func TestStaticSummarizeCapsLength(t *testing.T) {
	ctx := context.Background()
	e := NewStaticEnricher()

	summary, err := e.Summarize(ctx, strings.Repeat("x", 500))
	require.NoError(t, err)
	assert.Len(t, summary, 200)
}

func TestNewEnricherDefaultsToStatic(t *testing.T) {
	e, err := NewEnricher(Config{Provider: ProviderStatic})
	require.NoError(t, err)
	assert.IsType(t, staticEnricher{}, e)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Provider: ProviderStatic}.Validate())
	assert.Error(t, Config{Provider: ProviderGemini}.Validate(), "gemini needs an api key")
	assert.NoError(t, Config{Provider: ProviderGemini, APIKey: "k", Model: "gemini-2.5-flash"}.Validate())
	assert.Error(t, Config{Provider: "bogus"}.Validate())
}

func TestParseScore(t *testing.T) {
	score, err := parseScore("0.8\nStrong overlap with the query.")
	require.NoError(t, err)
	assert.Equal(t, 0.8, score.Value)
	assert.Equal(t, "Strong overlap with the query.", score.Rationale)
}

func TestParseScoreClampsRange(t *testing.T) {
	score, err := parseScore("1.7")
	require.NoError(t, err)
	assert.Equal(t, 1.0, score.Value)
	assert.Empty(t, score.Rationale)

	score, err = parseScore("-0.2\nbelow range")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score.Value)
}

func TestParseScoreRejectsNonNumeric(t *testing.T) {
	_, err := parseScore("The score is 0.8")
	assert.Error(t, err)
}

func TestParseSkillsStripsBulletsAndBlanks(t *testing.T) {
	skills := parseSkills("- Go\n* Kubernetes\n\n  PostgreSQL  \n")
	assert.Equal(t, []string{"Go", "Kubernetes", "PostgreSQL"}, skills)
}

func TestParseSkillsCapsAtTen(t *testing.T) {
	skills := parseSkills(strings.Repeat("skill\n", 15))
	assert.Len(t, skills, 10)
}
