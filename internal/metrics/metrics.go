// Package metrics defines the Prometheus collectors for grading.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gradekit"

// Metrics groups the grading collectors registered on one registry.
type Metrics struct {
	Registry *prometheus.Registry

	// answers counts validated answers.
	// Labels: type (question type), outcome (correct, incorrect, ungradable)
	answers *prometheus.CounterVec

	// submissionDuration measures Grade latency for a whole submission.
	submissionDuration prometheus.Histogram

	// submissionScore tracks the distribution of submission percentages.
	submissionScore prometheus.Histogram

	// recordFailures counts response events that could not be stored.
	recordFailures prometheus.Counter
}

// New registers the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		answers: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grading",
			Name:      "answers_total",
			Help:      "Validated answers by question type and outcome",
		}, []string{"type", "outcome"}),
		submissionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "grading",
			Name:      "submission_duration_seconds",
			Help:      "Time to grade one submission",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		}),
		submissionScore: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "grading",
			Name:      "submission_score_percent",
			Help:      "Percentage of gradable answers that were correct",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		recordFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "record_failures_total",
			Help:      "Response events that could not be stored",
		}),
	}
}

func (m *Metrics) ObserveAnswer(questionType, outcome string) {
	m.answers.WithLabelValues(questionType, outcome).Inc()
}

func (m *Metrics) ObserveSubmission(d time.Duration, percentage float64) {
	m.submissionDuration.Observe(d.Seconds())
	m.submissionScore.Observe(percentage)
}

func (m *Metrics) RecordFailed() {
	m.recordFailures.Inc()
}
