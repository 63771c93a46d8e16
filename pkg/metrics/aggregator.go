package metrics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/codeready-toolchain/meerkat/pkg/config"
	"github.com/codeready-toolchain/meerkat/pkg/store"
)

// topFlagsCap is the histogram row limit, per spec.md §4.7 "cap 6".
const topFlagsCap = 6

// Aggregator computes dashboard summaries from an AuditStore.
type Aggregator struct {
	auditStore store.AuditStore
}

// New wires an Aggregator against an AuditStore.
func New(auditStore store.AuditStore) *Aggregator {
	return &Aggregator{auditStore: auditStore}
}

// Aggregate computes the Dashboard for period, ending now. Every record
// whose Plugin is not store.ShieldPluginTag feeds totals/averages/
// compliance; shield scan records (store.ShieldPluginTag) feed
// injection_attempts_blocked only. Both kinds contribute to the top-flag histogram.
func (a *Aggregator) Aggregate(ctx context.Context, period config.Period) (Dashboard, error) {
	since := time.Now().UTC().AddDate(0, 0, -period.Days())
	records, err := a.auditStore.ListSince(ctx, since)
	if err != nil {
		return Dashboard{}, fmt.Errorf("metrics: list audit records: %w", err)
	}

	d := Dashboard{Period: period}
	flagCounts := make(map[string]int)

	var scoreSum float64
	for _, rec := range records {
		for _, flag := range rec.Flags {
			flagCounts[flag]++
		}

		if rec.Plugin == store.ShieldPluginTag {
			if rec.Status == config.StatusBlock {
				d.InjectionAttemptsBlocked++
			}
			continue
		}

		d.TotalVerifications++
		scoreSum += float64(rec.TrustScore)
		switch rec.Status {
		case config.StatusPass:
			d.AutoApproved++
		case config.StatusFlag:
			d.FlaggedForReview++
		case config.StatusBlock:
			d.AutoBlocked++
		}
	}

	if d.TotalVerifications > 0 {
		d.AvgTrustScore = roundTo1(scoreSum / float64(d.TotalVerifications))
		d.ComplianceScore = roundTo1(100 * float64(d.AutoApproved) / float64(d.TotalVerifications))
	}

	d.TopFlags = topFlags(flagCounts)
	d.Trend = classifyTrend(d.AvgTrustScore, d.TotalVerifications)
	return d, nil
}

// classifyTrend buckets the average trust score, per spec.md §4.7. An
// empty period (no verifications) is reported stable rather than
// declining — there is nothing to decline from.
func classifyTrend(avg float64, total int) Trend {
	if total == 0 {
		return TrendStable
	}
	switch {
	case avg >= 83:
		return TrendImproving
	case avg < 78:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// topFlags sorts flagCounts by count descending (ties broken
// alphabetically for determinism) and caps the result at topFlagsCap.
func topFlags(flagCounts map[string]int) []FlagCount {
	out := make([]FlagCount, 0, len(flagCounts))
	for flagType, count := range flagCounts {
		out = append(out, FlagCount{Type: flagType, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	if len(out) > topFlagsCap {
		out = out[:topFlagsCap]
	}
	return out
}

func roundTo1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
