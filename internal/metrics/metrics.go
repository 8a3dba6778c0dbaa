package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Quiz outcome labels
const (
	OutcomeQuestion  = "question"
	OutcomeExhausted = "exhausted"
)

// Metrics holds the collectors exported on /metrics
type Metrics struct {
	Registry        *prometheus.Registry
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	QuizOutcomes    *prometheus.CounterVec
}

// New creates the collectors on a dedicated registry, together with the Go and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trivia",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "trivia",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		QuizOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trivia",
			Subsystem: "quiz",
			Name:      "outcomes_total",
			Help:      "Quiz draws by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestDuration,
		m.QuizOutcomes,
	)
	return m
}

// RecordQuizOutcome counts one quiz draw. A nil receiver is a no-op.
func (m *Metrics) RecordQuizOutcome(exhausted bool) {
	if m == nil {
		return
	}
	outcome := OutcomeQuestion
	if exhausted {
		outcome = OutcomeExhausted
	}
	m.QuizOutcomes.WithLabelValues(outcome).Inc()
}
