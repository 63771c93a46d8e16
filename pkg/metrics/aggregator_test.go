package metrics

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/meerkat/pkg/config"
	"github.com/codeready-toolchain/meerkat/pkg/store"
)

var auditIDCounter int

func seedRecord(t *testing.T, s store.AuditStore, status config.VerdictStatus, score int, flags []string, plugin string) {
	t.Helper()
	checksRun := []config.GovernanceCheck{config.CheckEntailment}
	if plugin == store.ShieldPluginTag {
		checksRun = nil
	}
	auditIDCounter++
	err := s.Append(context.Background(), store.AuditRecord{
		AuditID:      "audit-" + strconv.Itoa(auditIDCounter),
		TimestampUTC: time.Now().UTC(),
		Domain:       config.DomainGeneral,
		TrustScore:   score,
		Status:       status,
		ChecksRun:    checksRun,
		Flags:        flags,
		FlagsCount:   len(flags),
		Plugin:       plugin,
	})
	require.NoError(t, err)
}

func TestAggregate_ComputesRealAverages(t *testing.T) {
	s := store.NewMemoryStore()
	seedRecord(t, s, config.StatusPass, 90, []string{"directional_lean"}, "")
	seedRecord(t, s, config.StatusPass, 80, nil, "")
	seedRecord(t, s, config.StatusFlag, 60, []string{"majority_unverified"}, "")
	seedRecord(t, s, config.StatusBlock, 20, []string{"contradicted_claims", "majority_unverified"}, "")

	agg := New(s)
	d, err := agg.Aggregate(context.Background(), config.Period7d)
	require.NoError(t, err)

	assert.Equal(t, 4, d.TotalVerifications)
	assert.Equal(t, 2, d.AutoApproved)
	assert.Equal(t, 1, d.FlaggedForReview)
	assert.Equal(t, 1, d.AutoBlocked)
	assert.InDelta(t, 62.5, d.AvgTrustScore, 0.01)
	assert.InDelta(t, 50.0, d.ComplianceScore, 0.01)
	require.NotEmpty(t, d.TopFlags)
	assert.Equal(t, "majority_unverified", d.TopFlags[0].Type)
	assert.Equal(t, 2, d.TopFlags[0].Count)
}

func TestAggregate_ShieldRecordsFeedInjectionCountNotTotals(t *testing.T) {
	s := store.NewMemoryStore()
	seedRecord(t, s, config.StatusPass, 90, nil, "")
	seedRecord(t, s, config.StatusBlock, 0, []string{"direct_injection"}, store.ShieldPluginTag)

	agg := New(s)
	d, err := agg.Aggregate(context.Background(), config.Period7d)
	require.NoError(t, err)

	assert.Equal(t, 1, d.TotalVerifications)
	assert.Equal(t, 1, d.InjectionAttemptsBlocked)
}

func TestClassifyTrend_Buckets(t *testing.T) {
	assert.Equal(t, TrendImproving, classifyTrend(90, 10))
	assert.Equal(t, TrendStable, classifyTrend(80, 10))
	assert.Equal(t, TrendDeclining, classifyTrend(70, 10))
	assert.Equal(t, TrendStable, classifyTrend(0, 0))
}

func TestTopFlags_CapsAtSix(t *testing.T) {
	counts := map[string]int{
		"a": 1, "b": 2, "c": 3, "d": 4, "e": 5, "f": 6, "g": 7,
	}
	out := topFlags(counts)
	assert.Len(t, out, 6)
	assert.Equal(t, "g", out[0].Type)
}
