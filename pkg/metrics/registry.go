package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the process-wide Prometheus gauges/counters that mirror
// the dashboard aggregates for scrape-based monitoring, alongside the
// on-demand Aggregator used by GET /v1/dashboard. Grounded on
// sawpanic-cryptorun's internal/interfaces/http/metrics.go
// MetricsRegistry pattern: a struct of pre-registered collectors plus
// Record* methods, rather than package-level globals.
type Registry struct {
	VerificationsTotal   *prometheus.CounterVec
	TrustScore           prometheus.Histogram
	CheckDuration        *prometheus.HistogramVec
	CheckFailuresTotal   *prometheus.CounterVec
	ShieldScansTotal     *prometheus.CounterVec
	ComplianceScoreGauge prometheus.Gauge
}

// NewRegistry builds and registers a Registry against reg. meerkatd passes
// prometheus.DefaultRegisterer, which is what the /metrics handler
// (promhttp.Handler) serves; tests can pass prometheus.NewRegistry() to
// stay isolated.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		VerificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meerkat_verifications_total",
				Help: "Total number of /v1/verify calls by status.",
			},
			[]string{"status"},
		),
		TrustScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "meerkat_trust_score",
				Help:    "Distribution of fused trust scores (0-100).",
				Buckets: []float64{10, 25, 45, 55, 65, 75, 85, 95, 100},
			},
		),
		CheckDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "meerkat_check_duration_ms",
				Help:    "Duration of each governance check in milliseconds.",
				Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000, 15000, 60000},
			},
			[]string{"check"},
		),
		CheckFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meerkat_check_failures_total",
				Help: "Total number of checks excluded from fusion, by check and reason.",
			},
			[]string{"check", "reason"},
		),
		ShieldScansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meerkat_shield_scans_total",
				Help: "Total number of /v1/shield scans by action.",
			},
			[]string{"action"},
		),
		ComplianceScoreGauge: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "meerkat_compliance_score",
				Help: "Most recently computed 7d compliance score.",
			},
		),
	}

	reg.MustRegister(
		r.VerificationsTotal,
		r.TrustScore,
		r.CheckDuration,
		r.CheckFailuresTotal,
		r.ShieldScansTotal,
		r.ComplianceScoreGauge,
	)
	return r
}

// RecordVerdict records one /v1/verify outcome: the fused trust score,
// its status, and every excluded (non-Included) check's failure reason.
func (r *Registry) RecordVerdict(status string, trustScore int, checkDurationsMs map[string]float64, excluded map[string]string) {
	r.VerificationsTotal.WithLabelValues(status).Inc()
	r.TrustScore.Observe(float64(trustScore))
	for check, ms := range checkDurationsMs {
		r.CheckDuration.WithLabelValues(check).Observe(ms)
	}
	for check, reason := range excluded {
		r.CheckFailuresTotal.WithLabelValues(check, reason).Inc()
	}
}

// RecordShieldScan records one /v1/shield outcome.
func (r *Registry) RecordShieldScan(action string) {
	r.ShieldScansTotal.WithLabelValues(action).Inc()
}

// SetComplianceScore updates the gauge mirror of the 7d compliance score;
// the /v1/dashboard handler sets it each time it computes a 7d dashboard.
func (r *Registry) SetComplianceScore(score float64) {
	r.ComplianceScoreGauge.Set(score)
}
