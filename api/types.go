package api

// predictRequest asks for the embedding of a single text. ModelVersion is
// optional; empty means the current model.
type predictRequest struct {
	Text         string `json:"text"`
	ModelVersion string `json:"model_version,omitempty"`
}

type predictResponse struct {
	Text         string    `json:"text"`
	Embedding    []float32 `json:"embedding"`
	EmbeddingDim int       `json:"embedding_dim"`
	ModelVersion string    `json:"model_version"`
	Status       string    `json:"status"`
}

// similarityRequest asks for the similarity of two texts under one model.
type similarityRequest struct {
	Text1        string `json:"text1"`
	Text2        string `json:"text2"`
	ModelVersion string `json:"model_version,omitempty"`
}

type similarityResponse struct {
	Text1        string  `json:"text1"`
	Text2        string  `json:"text2"`
	Similarity   float64 `json:"similarity"`
	ModelVersion string  `json:"model_version"`
	Status       string  `json:"status"`
}

type loadResponse struct {
	Status       string `json:"status"`
	ModelVersion string `json:"model_version"`
}

// agentSearchRequest drives the candidate search. MinStars and Language
// are optional filters; TopK falls back to the configured default.
type agentSearchRequest struct {
	Query    string `json:"query"`
	TopK     int    `json:"top_k,omitempty"`
	MinStars int    `json:"min_stars,omitempty"`
	Language string `json:"language,omitempty"`
}

type agentSearchCandidate struct {
	Login      string   `json:"login"`
	Name       string   `json:"name,omitempty"`
	Location   string   `json:"location,omitempty"`
	Similarity float32  `json:"similarity"`
	AgentScore float64  `json:"agent_score"`
	Rationale  string   `json:"rationale,omitempty"`
	Skills     []string `json:"ai_skills"`
	Summary    string   `json:"ai_summary"`
}

type agentSearchResponse struct {
	Query      string                 `json:"query"`
	Candidates []agentSearchCandidate `json:"candidates"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// healthResponse reports the API itself plus its two dependencies: the
// tracking store and the loaded model.
type healthResponse struct {
	API      string `json:"api"`
	Tracking string `json:"tracking"`
	Model    string `json:"model"`
}

type bannerResponse struct {
	Service string   `json:"service"`
	Docs    []string `json:"endpoints"`
}
