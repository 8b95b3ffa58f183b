// Package metrics registers the prometheus collectors published after each
// run, grounded on noah-isme-sma-adp-api's MetricsService: a private
// registry, one promhttp handler, gauges/counters updated from plain method
// calls rather than middleware.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/russross/classroom-scheduler/internal/scoring"
)

// Metrics holds every collector the orchestrator publishes to after a run.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	runsTotal       *prometheus.CounterVec
	runDuration     prometheus.Histogram
	allocationRate  prometheus.Gauge
	unassignedGauge prometheus.Gauge
	scoreComponent  *prometheus.GaugeVec
	scoreTotal      prometheus.Gauge
}

// New builds and registers the collector set.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_runs_total",
			Help: "Total scheduling runs, labeled by outcome",
		}, []string{"outcome"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "schedule_run_duration_seconds",
			Help:    "Wall-clock duration of a scheduling run",
			Buckets: prometheus.DefBuckets,
		}),
		allocationRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "schedule_allocation_rate",
			Help: "Fraction of courses assigned a room in the last run",
		}),
		unassignedGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "schedule_unassigned_courses",
			Help: "Number of unassigned courses in the last run",
		}),
		scoreComponent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "schedule_score_component",
			Help: "Per-component objective score of the last run",
		}, []string{"component"}),
		scoreTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "schedule_score_total",
			Help: "Total objective score of the last run",
		}),
	}

	registry.MustRegister(
		m.runsTotal, m.runDuration, m.allocationRate,
		m.unassignedGauge, m.scoreComponent, m.scoreTotal,
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler exposes the prometheus exposition endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveRun records a completed run's headline numbers.
func (m *Metrics) ObserveRun(success bool, duration float64, allocationRate float64, unassigned int, breakdown scoring.Breakdown) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.runsTotal.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(duration)
	m.allocationRate.Set(allocationRate)
	m.unassignedGauge.Set(float64(unassigned))

	var total float64
	for component, value := range breakdown {
		m.scoreComponent.WithLabelValues(component).Set(value)
		total += value
	}
	m.scoreTotal.Set(total)
}
