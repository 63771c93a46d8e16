package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/meerkat/pkg/config"
)

func TestNewMemoryStore_SeedsDefaultConfig(t *testing.T) {
	s := NewMemoryStore()
	cfg, err := s.GetConfig(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.OrgID)
}

func TestMemoryStore_PutAndGetConfigRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	cfg := &config.GovernanceConfig{ConfigID: "cfg_acme_1", OrgID: "acme", Domain: config.DomainFinancial}
	require.NoError(t, s.Put(context.Background(), cfg))

	got, err := s.GetConfig(context.Background(), "cfg_acme_1")
	require.NoError(t, err)
	assert.Equal(t, "acme", got.OrgID)
}

func TestMemoryStore_GetConfig_UnknownIDReturnsErrNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.GetConfig(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_AppendAndGetAuditRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	rec := AuditRecord{AuditID: "aud_1", TimestampUTC: time.Now().UTC(), TrustScore: 90, Status: config.StatusPass}
	require.NoError(t, s.Append(context.Background(), rec))

	got, err := s.GetAudit(context.Background(), "aud_1")
	require.NoError(t, err)
	assert.Equal(t, 90, got.TrustScore)
}

func TestMemoryStore_GetAudit_UnknownIDReturnsErrNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.GetAudit(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ListSince_FiltersAndOrdersByTimestamp(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now().UTC()

	old := AuditRecord{AuditID: "old", TimestampUTC: now.Add(-48 * time.Hour)}
	mid := AuditRecord{AuditID: "mid", TimestampUTC: now.Add(-1 * time.Hour)}
	recent := AuditRecord{AuditID: "recent", TimestampUTC: now}

	require.NoError(t, s.Append(context.Background(), recent))
	require.NoError(t, s.Append(context.Background(), old))
	require.NoError(t, s.Append(context.Background(), mid))

	got, err := s.ListSince(context.Background(), now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "mid", got[0].AuditID)
	assert.Equal(t, "recent", got[1].AuditID)
}
