// Package metrics holds the prometheus collectors of the app. Everything is
// registered on a private registry so tests can build as many as they like.
package metrics

import (
	"net/http"

	"hms-system/internal/models"
	"hms-system/internal/risk"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hms"

type Metrics struct {
	Registry *prometheus.Registry

	RiskSaved         *prometheus.CounterVec
	IncidentsReported *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RiskSaved: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "risk_assessments_saved_total",
			Help:      "Risk assessments created or updated, by resulting risk level.",
		}, []string{"level"}),
		IncidentsReported: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "incidents_reported_total",
			Help:      "Incidents reported, by category.",
		}, []string{"category"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) RiskAssessmentSaved(level risk.Level) {
	m.RiskSaved.WithLabelValues(string(level)).Inc()
}

func (m *Metrics) IncidentReported(c models.IncidentCategory) {
	m.IncidentsReported.WithLabelValues(string(c)).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
