// Package metrics implements the metrics aggregator (C11): period
// summaries computed from real AuditStore records (totals, averages,
// approved/flagged/blocked counts, injection-block count, top-flag
// histogram, compliance score, trend). Grounded on
// original_source/api/routes/dashboard.py's trend thresholds and
// response shape, but computing real aggregates instead of that file's
// `_vary`-randomized baseline data (see SPEC_FULL.md §4 and DESIGN.md).
package metrics

import "github.com/codeready-toolchain/meerkat/pkg/config"

// Trend classifies the average trust score's recent trajectory, per
// spec.md §4.7.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// FlagCount is one entry in the top-flag histogram.
type FlagCount struct {
	Type  string
	Count int
}

// Dashboard is the C11 aggregation output (spec.md §4.7), scoped to one
// period.
type Dashboard struct {
	Period                   config.Period
	TotalVerifications       int
	AvgTrustScore            float64
	AutoApproved             int
	FlaggedForReview         int
	AutoBlocked              int
	InjectionAttemptsBlocked int
	TopFlags                 []FlagCount
	ComplianceScore          float64
	Trend                    Trend
}
