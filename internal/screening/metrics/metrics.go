package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	QueriesTotal       *prometheus.CounterVec
	MatchesTotal       *prometheus.CounterVec
	StageDegradedTotal *prometheus.CounterVec
	AuditWriteFailures prometheus.Counter
	ScreenDuration     prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		QueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "watchlist_screening_queries_total",
			Help: "Total number of screened queries by verdict status",
		}, []string{"status"}),
		MatchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "watchlist_screening_matches_total",
			Help: "Total number of candidate matches produced by stage",
		}, []string{"stage"}),
		StageDegradedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "watchlist_screening_stage_degraded_total",
			Help: "Total number of stages degraded to zero candidates by store timeout or error",
		}, []string{"stage"}),
		AuditWriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "watchlist_screening_audit_write_failures_total",
			Help: "Total number of audit record writes that failed and were dropped",
		}),
		ScreenDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "watchlist_screening_duration_seconds",
			Help:    "Wall-clock duration of single-query screening",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
}

func (m *Metrics) ObserveScreen(status string, d time.Duration) {
	m.QueriesTotal.WithLabelValues(status).Inc()
	m.ScreenDuration.Observe(d.Seconds())
}

func (m *Metrics) IncrementMatches(stage string) {
	m.MatchesTotal.WithLabelValues(stage).Inc()
}

func (m *Metrics) IncrementStageDegraded(stage string) {
	m.StageDegradedTotal.WithLabelValues(stage).Inc()
}

func (m *Metrics) IncrementAuditWriteFailures() {
	m.AuditWriteFailures.Inc()
}
