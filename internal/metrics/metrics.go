// Package metrics exposes Prometheus counters for contact submissions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcomes.
const (
	OutcomeAccepted   = "accepted"
	OutcomeBadRequest = "bad_request"
	OutcomeInvalid    = "invalid"
	OutcomeSpam       = "spam"
	OutcomeError      = "error"
)

// Metrics holds the collectors and the registry they are registered with.
type Metrics struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	stored      prometheus.Counter
}

// New creates a registry with Go/process collectors and the contact counters.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contact",
			Name:      "submissions_total",
			Help:      "Contact form submissions by outcome.",
		}, []string{"outcome", "field"}),
		stored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "contact",
			Name:      "messages_stored_total",
			Help:      "Contact messages appended to the store.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.submissions,
		m.stored,
	)
	return m
}

// ObserveSubmission counts one submission. field names the rejected field
// for invalid submissions and is empty otherwise. Safe on a nil receiver.
func (m *Metrics) ObserveSubmission(outcome, field string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome, field).Inc()
	if outcome == OutcomeAccepted {
		m.stored.Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
