package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "pool_league"

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	registry          *prometheus.Registry
	lineupTransitions *prometheus.CounterVec
	scoresSubmitted   *prometheus.CounterVec
	bonusDegraded     prometheus.Counter
	feedSubscribers   prometheus.Gauge
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		lineupTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "lineup_transitions_total",
			Help:      "Lineup submit, lock and unlock operations that succeeded.",
		}, []string{"action"}),
		scoresSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "scores_submitted_total",
			Help:      "Accepted score submissions by resulting match status.",
		}, []string{"status"}),
		bonusDegraded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "team_bonus_degraded_total",
			Help:      "Team bonus computations that fell back to zero.",
		}),
		feedSubscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "feed_subscribers",
			Help:      "Open match change feed subscriptions.",
		}),
	}
}

func (m *Metrics) LineupTransition(action string) { m.lineupTransitions.WithLabelValues(action).Inc() }

func (m *Metrics) ScoreSubmitted(status string) { m.scoresSubmitted.WithLabelValues(status).Inc() }

func (m *Metrics) BonusDegraded() { m.bonusDegraded.Inc() }

func (m *Metrics) SubscriberJoined() { m.feedSubscribers.Inc() }

func (m *Metrics) SubscriberLeft() { m.feedSubscribers.Dec() }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
