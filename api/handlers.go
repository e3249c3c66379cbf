package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/talenthunt/talenthunt/model"
)

func (s *Server) handleBanner(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, bannerResponse{
		Service: "talenthunt",
		Docs: []string{
			"GET /health",
			"POST /predict",
			"POST /predict/similarity",
			"GET /models/info",
			"POST /models/load/{version}",
			"POST /agent_search",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		API:      "healthy",
		Tracking: "healthy",
		Model:    "loaded:" + s.manager.ModelInfo().ModelVersion,
	}
	if err := s.manager.CheckTracking(r.Context()); err != nil {
		resp.Tracking = "unhealthy"
		s.log.Warn("tracking store health check failed", err, nil)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		s.writeError(w, http.StatusBadRequest, "text must not be empty")
		return
	}

	start := time.Now()
	vector, version, err := s.manager.PredictEmbedding(r.Context(), req.Text, req.ModelVersion)
	s.metrics.ObservePrediction("predict", time.Since(start).Seconds())
	if err != nil {
		s.metrics.IncPrediction("predict", "error")
		s.log.Error("embedding prediction failed", err, nil)
		s.writeError(w, http.StatusInternalServerError, "prediction failure")
		return
	}

	s.metrics.IncPrediction("predict", "success")
	s.writeJSON(w, http.StatusOK, predictResponse{
		Text:         req.Text,
		Embedding:    vector,
		EmbeddingDim: len(vector),
		ModelVersion: version,
		Status:       "success",
	})
}

func (s *Server) handleSimilarity(w http.ResponseWriter, r *http.Request) {
	var req similarityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text1 == "" || req.Text2 == "" {
		s.writeError(w, http.StatusBadRequest, "text1 and text2 must not be empty")
		return
	}

	start := time.Now()
	similarity, version, err := s.manager.PredictSimilarity(r.Context(), req.Text1, req.Text2, req.ModelVersion)
	s.metrics.ObservePrediction("similarity", time.Since(start).Seconds())
	if err != nil {
		s.metrics.IncPrediction("similarity", "error")
		s.log.Error("similarity prediction failed", err, nil)
		s.writeError(w, http.StatusInternalServerError, "prediction failure")
		return
	}

	s.metrics.IncPrediction("similarity", "success")
	s.writeJSON(w, http.StatusOK, similarityResponse{
		Text1:        req.Text1,
		Text2:        req.Text2,
		Similarity:   similarity,
		ModelVersion: version,
		Status:       "success",
	})
}

func (s *Server) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.manager.ModelInfo())
}

func (s *Server) handleLoadModel(w http.ResponseWriter, r *http.Request) {
	version := r.PathValue("version")

	if _, err := s.manager.LoadVersionStrict(r.Context(), version); err != nil {
		if errors.Is(err, model.ErrModelNotFound) {
			s.writeError(w, http.StatusNotFound, "model version not found: "+version)
			return
		}
		s.log.Error("model load failed", err, map[string]interface{}{"version": version})
		s.writeError(w, http.StatusInternalServerError, "failed to load model version")
		return
	}

	s.writeJSON(w, http.StatusOK, loadResponse{Status: "loaded", ModelVersion: version})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("failed to encode response", err, nil)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, errorResponse{Detail: detail})
}
