package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus registry, the /metrics HTTP server, and the
// service's built-in collectors.
type Metrics struct {
	Server   *http.Server
	Registry *prometheus.Registry

	predictionsTotal  *prometheus.CounterVec
	predictionLatency *prometheus.HistogramVec
	pipelineRunsTotal *prometheus.CounterVec
	stageDuration     *prometheus.HistogramVec
}

// NewMetrics builds an isolated registry, registers the service collectors
// wrapped with a constant service label, and prepares the /metrics server.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()
	wrapped := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
		predictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total number of prediction requests by status.",
		}, []string{"endpoint", "status"}),
		predictionLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "prediction_duration_seconds",
			Help:    "Latency of prediction requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		pipelineRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pipeline_runs_total",
			Help: "Total number of training pipeline runs by outcome.",
		}, []string{"status"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pipeline_stage_duration_seconds",
			Help:    "Duration of individual pipeline stages.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		}, []string{"stage"}),
	}

	wrapped.MustRegister(
		m.predictionsTotal,
		m.predictionLatency,
		m.pipelineRunsTotal,
		m.stageDuration,
	)

	if cfg.EnableDefaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.Server = &http.Server{
		Addr:              cfg.Address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return m
}

// IncPrediction counts one prediction request.
func (m *Metrics) IncPrediction(endpoint, status string) {
	if m == nil {
		return
	}
	m.predictionsTotal.WithLabelValues(endpoint, status).Inc()
}

// ObservePrediction records the latency of one prediction request.
func (m *Metrics) ObservePrediction(endpoint string, seconds float64) {
	if m == nil {
		return
	}
	m.predictionLatency.WithLabelValues(endpoint).Observe(seconds)
}

// IncPipelineRun counts one pipeline run by outcome.
func (m *Metrics) IncPipelineRun(status string) {
	if m == nil {
		return
	}
	m.pipelineRunsTotal.WithLabelValues(status).Inc()
}

// ObserveStage records the duration of one pipeline stage.
func (m *Metrics) ObserveStage(stage string, seconds float64) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(seconds)
}
