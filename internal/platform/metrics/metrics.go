// Package metrics holds all Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the counters and histograms the service exports.
type Metrics struct {
	SessionsStarted     prometheus.Counter
	SubmissionsAccepted prometheus.Counter
	SubmissionsRejected *prometheus.CounterVec
	SubmitDuration      prometheus.Histogram
	RequestDuration     *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		SessionsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prakan_sessions_started_total",
			Help: "Total number of wizard sessions created",
		}),
		SubmissionsAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prakan_submissions_accepted_total",
			Help: "Total number of feedback submissions persisted",
		}),
		SubmissionsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prakan_submissions_rejected_total",
			Help: "Total number of rejected feedback submissions by reason",
		}, []string{"reason"}),
		SubmitDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "prakan_submit_duration_seconds",
			Help:    "Latency of the full submission pipeline",
			Buckets: prometheus.DefBuckets,
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "prakan_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// ObserveSubmit records one submission round trip.
func (m *Metrics) ObserveSubmit(d time.Duration) {
	if m == nil {
		return
	}
	m.SubmitDuration.Observe(d.Seconds())
}

// IncAccepted increments the accepted-submission counter.
func (m *Metrics) IncAccepted() {
	if m == nil {
		return
	}
	m.SubmissionsAccepted.Inc()
}

// IncRejected increments the rejected-submission counter for a reason.
func (m *Metrics) IncRejected(reason string) {
	if m == nil {
		return
	}
	m.SubmissionsRejected.WithLabelValues(reason).Inc()
}

// IncSessionStarted increments the session counter.
func (m *Metrics) IncSessionStarted() {
	if m == nil {
		return
	}
	m.SessionsStarted.Inc()
}
