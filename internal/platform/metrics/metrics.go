// Package metrics exposes prometheus collectors for the assessment core.
// Each process owns one Metrics value with its own registry so tests never
// trip over duplicate registration
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the collectors the services emit into
type Metrics struct {
	reg *prometheus.Registry

	// RouteAssessments counts finished assessments by tier
	RouteAssessments *prometheus.CounterVec
	// ModerationDecisions counts verdicts by outcome and deciding layer
	ModerationDecisions *prometheus.CounterVec
	// ClassifierUnavailable counts degraded classifier calls
	ClassifierUnavailable prometheus.Counter
	// IncidentSnapshotSize tracks active incidents in the published snapshot
	IncidentSnapshotSize prometheus.Gauge
	// ResourceSnapshotSize tracks resources in the published cache
	ResourceSnapshotSize prometheus.Gauge
}

// New builds a Metrics with go runtime and process collectors pre-registered
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		RouteAssessments: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_assessments_total",
			Help:      "Route assessments by resulting tier",
		}, []string{"tier"}),
		ModerationDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moderation_decisions_total",
			Help:      "Moderation verdicts by outcome and deciding layer",
		}, []string{"outcome", "layer"}),
		ClassifierUnavailable: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifier_unavailable_total",
			Help:      "Classifier calls that ended in the unavailable signal",
		}),
		IncidentSnapshotSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "incident_snapshot_size",
			Help:      "Active incidents in the current published snapshot",
		}),
		ResourceSnapshotSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "resource_snapshot_size",
			Help:      "Safety resources in the current published cache",
		}),
	}
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
