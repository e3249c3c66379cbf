package enrich

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/genai"
)

// geminiEnricher asks a Gemini model to judge candidates.
type geminiEnricher struct {
	client *genai.Client
	model  string
}

// NewGeminiEnricher connects to the Gemini API.
func NewGeminiEnricher(ctx context.Context, cfg Config) (Enricher, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("enrich: failed to create genai client: %w", err)
	}
	return &geminiEnricher{client: client, model: cfg.Model}, nil
}

const scorePrompt = `You are a technical recruiter evaluating a developer profile against a search query.

Query: %s

Profile: %s

Reply with the match score as a number between 0.0 and 1.0 on the first line, followed by a one-sentence rationale on the second line.`

func (g *geminiEnricher) ScoreCandidate(ctx context.Context, query, profileText string) (Score, error) {
	text, err := g.generate(ctx, fmt.Sprintf(scorePrompt, query, profileText))
	if err != nil {
		return Score{}, err
	}
	return parseScore(text)
}

const skillsPrompt = `List the technical skills of this developer profile, one per line, most relevant first. Reply with skill names only, at most 10 lines.

Profile: %s`

func (g *geminiEnricher) ExtractSkills(ctx context.Context, profileText string) ([]string, error) {
	text, err := g.generate(ctx, fmt.Sprintf(skillsPrompt, profileText))
	if err != nil {
		return nil, err
	}
	return parseSkills(text), nil
}

func (g *geminiEnricher) Summarize(ctx context.Context, profileText string) (string, error) {
	prompt := fmt.Sprintf("Summarize this developer profile in one sentence for a recruiter:\n\n%s", profileText)
	return g.generate(ctx, prompt)
}

func (g *geminiEnricher) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("enrich: generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(strings.TrimSpace(part.Text))
		}
	}

	out := strings.TrimSpace(builder.String())
	if out == "" {
		return "", fmt.Errorf("enrich: gemini returned an empty response")
	}
	return out, nil
}

// parseSkills splits a line-per-skill response, dropping list bullets the
// model sometimes adds despite the prompt.
func parseSkills(text string) []string {
	var skills []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*• \t"))
		if line == "" {
			continue
		}
		skills = append(skills, line)
		if len(skills) == 10 {
			break
		}
	}
	return skills
}

// parseScore reads the numeric first line and uses the rest as rationale.
func parseScore(text string) (Score, error) {
	lines := strings.SplitN(strings.TrimSpace(text), "\n", 2)

	value, err := strconv.ParseFloat(strings.TrimSpace(lines[0]), 64)
	if err != nil {
		return Score{}, fmt.Errorf("enrich: unparseable score %q: %w", lines[0], err)
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	score := Score{Value: value}
	if len(lines) == 2 {
		score.Rationale = strings.TrimSpace(lines[1])
	}
	return score, nil
}
