package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "brandintel"

// Metrics holds the collectors for one service instance. Each instance owns
// its registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	Generations       *prometheus.CounterVec
	SnapshotStrategy  *prometheus.CounterVec
	SnapshotFallbacks prometheus.Counter
	LLMDuration       *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Total number of brand generations by outcome",
			},
			[]string{"outcome"},
		),
		SnapshotStrategy: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshot_strategy_total",
				Help:      "Brand snapshot acquisition attempts by strategy and result",
			},
			[]string{"strategy", "result"},
		),
		SnapshotFallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshot_fallbacks_total",
				Help:      "Times the search-augmented snapshot failed and the plain strategy was used",
			},
		),
		LLMDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "llm_request_duration_seconds",
				Help:      "Duration of language model requests in seconds",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
			},
			[]string{"operation"},
		),
	}

	reg.MustRegister(
		m.Generations,
		m.SnapshotStrategy,
		m.SnapshotFallbacks,
		m.LLMDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveLLM records the duration of a model call that started at start.
// A nil receiver is a no-op so callers can run without metrics.
func (m *Metrics) ObserveLLM(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.LLMDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) RecordGeneration(outcome string) {
	if m == nil {
		return
	}
	m.Generations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordSnapshotStrategy(strategy, result string) {
	if m == nil {
		return
	}
	m.SnapshotStrategy.WithLabelValues(strategy, result).Inc()
}

func (m *Metrics) RecordFallback() {
	if m == nil {
		return
	}
	m.SnapshotFallbacks.Inc()
}
