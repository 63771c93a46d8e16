// Package store defines the C10 config/audit persistence contract and two
// implementations: an in-memory default and a Redis-backed alternative.
// Grounded on original_source/api/store.py (demo in-memory dicts) and
// _examples/sawpanic-cryptorun's redis_cache.go for the go-redis/v9 idiom.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/codeready-toolchain/meerkat/pkg/config"
)

// ErrNotFound is returned when an audit or config record does not exist,
// mapped to HTTP 404 at the API boundary (spec.md §7's not_found).
var ErrNotFound = errors.New("store: record not found")

// ShieldPluginTag marks an AuditRecord as originating from a /v1/shield
// scan rather than a /v1/verify call (ChecksRun is empty for these). The
// metrics aggregator (C11) uses it to compute injection_attempts_blocked
// without mixing shield scans into total_verifications.
const ShieldPluginTag = "__shield__"

// AuditRecord is the immutable record appended after every /v1/verify
// call, per spec.md §3's AuditRecord shape. Flags supplements the named
// schema with the actual flag tags behind FlagsCount (spec.md §3 only
// names the count) — the metrics aggregator's top-flag histogram (§4.7)
// needs flag identities, not just a tally, to build its per-type counts.
type AuditRecord struct {
	AuditID        string
	TimestampUTC   time.Time
	Domain         config.DomainType
	User           string
	Model          string
	Plugin         string
	TrustScore     int
	Status         config.VerdictStatus
	ChecksRun      []config.GovernanceCheck
	Flags          []string
	FlagsCount     int
	ReviewRequired bool
	InputSummary   string
	OutputSummary  string
}

// ConfigStore persists per-organization GovernanceConfig records.
type ConfigStore interface {
	Put(ctx context.Context, cfg *config.GovernanceConfig) error
	GetConfig(ctx context.Context, configID string) (*config.GovernanceConfig, error)
}

// AuditStore appends audit records and retrieves or lists them for the
// metrics aggregator (C11). Audit storage is append-only: no Delete or
// Update method is exposed, per spec.md §5's "audit/config stores are
// append-only (audit)".
type AuditStore interface {
	Append(ctx context.Context, rec AuditRecord) error
	GetAudit(ctx context.Context, auditID string) (*AuditRecord, error)
	ListSince(ctx context.Context, since time.Time) ([]AuditRecord, error)
}
