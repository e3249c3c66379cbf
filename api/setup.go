package api

import (
	"net/http"

	"github.com/talenthunt/talenthunt/enrich"
	"github.com/talenthunt/talenthunt/index"
	"github.com/talenthunt/talenthunt/logger"
	"github.com/talenthunt/talenthunt/metrics"
	"github.com/talenthunt/talenthunt/model"
	"github.com/talenthunt/talenthunt/pipeline"
)

// Server wires the HTTP handlers to the model manager, the vector index,
// and the enricher.
type Server struct {
	cfg      Config
	manager  *model.Manager
	idx      *index.Index
	enricher enrich.Enricher
	profiles string
	metrics  *metrics.Metrics
	log      *logger.Logger

	HTTP *http.Server
}

// NewServer builds the HTTP server. The index may be nil; agent search
// then answers 503.
func NewServer(
	cfg Config,
	manager *model.Manager,
	pipeCfg pipeline.Config,
	idx *index.Index,
	enricher enrich.Enricher,
	m *metrics.Metrics,
	log *logger.Logger,
) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		manager:  manager,
		idx:      idx,
		enricher: enricher,
		profiles: pipeCfg.ProfilesPath,
		metrics:  m,
		log:      log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleBanner)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /predict", s.handlePredict)
	mux.HandleFunc("POST /predict/similarity", s.handleSimilarity)
	mux.HandleFunc("GET /models/info", s.handleModelInfo)
	mux.HandleFunc("POST /models/load/{version}", s.handleLoadModel)
	mux.HandleFunc("POST /agent_search", s.handleAgentSearch)

	s.HTTP = &http.Server{
		Addr:         cfg.Address,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s, nil
}
