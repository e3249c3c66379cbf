package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"

	"github.com/talenthunt/talenthunt/dataset"
	"github.com/talenthunt/talenthunt/index"
)

// handleAgentSearch retrieves candidates from the vector index, scores each
// one with the enricher, and writes the agent scores back into the profile
// table so the next training run can evaluate them.
func (s *Server) handleAgentSearch(w http.ResponseWriter, r *http.Request) {
	if s.idx == nil {
		s.writeError(w, http.StatusServiceUnavailable, "search index is disabled")
		return
	}

	var req agentSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		s.writeError(w, http.StatusBadRequest, "query must not be empty")
		return
	}
	if req.TopK < 1 {
		req.TopK = s.cfg.SearchTopK
	}

	vector, _, err := s.manager.PredictEmbedding(r.Context(), req.Query, "")
	if err != nil {
		s.log.Error("query embedding failed", err, nil)
		s.writeError(w, http.StatusInternalServerError, "prediction failure")
		return
	}

	hits, err := s.idx.Search(r.Context(), vector, req.TopK, index.Filter{
		MinStars: req.MinStars,
		Language: req.Language,
	})
	if err != nil {
		s.log.Error("candidate search failed", err, nil)
		s.writeError(w, http.StatusInternalServerError, "search failure")
		return
	}

	candidates, err := s.scoreCandidates(r.Context(), req.Query, hits)
	if err != nil {
		s.log.Error("candidate scoring failed", err, nil)
		s.writeError(w, http.StatusInternalServerError, "enrichment failure")
		return
	}

	s.writeJSON(w, http.StatusOK, agentSearchResponse{Query: req.Query, Candidates: candidates})
}

// scoreCandidates enriches each hit with an agent score and persists the
// scores into the profile table.
func (s *Server) scoreCandidates(ctx context.Context, query string, hits []index.Hit) ([]agentSearchCandidate, error) {
	profiles, err := dataset.ReadProfiles(s.profiles)
	if err != nil {
		return nil, err
	}
	byLogin := make(map[string]int, len(profiles))
	for i := range profiles {
		byLogin[profiles[i].Login] = i
	}

	candidates := make([]agentSearchCandidate, 0, len(hits))
	for _, hit := range hits {
		profileText := hit.Name
		pos, known := byLogin[hit.Login]
		if known {
			profileText = profiles[pos].ProfileText
		}

		candidate := s.enrichCandidate(ctx, query, profileText, hit)
		if known {
			profiles[pos].AgentScore = candidate.AgentScore
		}
		candidates = append(candidates, candidate)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].AgentScore > candidates[j].AgentScore
	})

	if err := s.persistScores(profiles); err != nil {
		return nil, err
	}
	return candidates, nil
}

// enrichCandidate scores, summarizes, and extracts skills for one hit. AI
// failures degrade the single candidate to its similarity score instead of
// failing the whole search.
func (s *Server) enrichCandidate(ctx context.Context, query, profileText string, hit index.Hit) agentSearchCandidate {
	candidate := agentSearchCandidate{
		Login:      hit.Login,
		Name:       hit.Name,
		Location:   hit.Location,
		Similarity: hit.Score,
	}

	score, err := s.enricher.ScoreCandidate(ctx, query, profileText)
	if err == nil {
		candidate.Skills, err = s.enricher.ExtractSkills(ctx, profileText)
	}
	if err == nil {
		candidate.Summary, err = s.enricher.Summarize(ctx, profileText)
	}
	if err != nil {
		s.log.Warn("candidate enrichment failed", err, map[string]interface{}{"login": hit.Login})
		candidate.AgentScore = float64(hit.Score)
		candidate.Skills = nil
		candidate.Summary = "analysis unavailable"
		return candidate
	}

	candidate.AgentScore = score.Value
	candidate.Rationale = score.Rationale
	return candidate
}

// persistScores rewrites the profile table with scored profiles first,
// ordered by agent score.
func (s *Server) persistScores(profiles []dataset.Profile) error {
	sort.SliceStable(profiles, func(i, j int) bool {
		a, b := &profiles[i], &profiles[j]
		switch {
		case a.HasAgentScore() && !b.HasAgentScore():
			return true
		case !a.HasAgentScore() && b.HasAgentScore():
			return false
		default:
			return a.AgentScore > b.AgentScore
		}
	})
	return dataset.WriteProfiles(s.profiles, profiles)
}
