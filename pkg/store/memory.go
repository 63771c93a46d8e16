package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/codeready-toolchain/meerkat/pkg/config"
)

// MemoryStore is the default in-process ConfigStore/AuditStore
// implementation: plain maps guarded by a mutex. Data is lost on restart,
// matching original_source/api/store.py's demo-mode dicts; fine for a
// single-process deployment or for tests, Redis-backed for anything that
// needs to survive a restart or be shared across replicas.
type MemoryStore struct {
	mu      sync.RWMutex
	configs map[string]*config.GovernanceConfig
	audits  map[string]AuditRecord
}

// NewMemoryStore returns an empty MemoryStore seeded with the default
// governance configuration under config_id "default".
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		configs: make(map[string]*config.GovernanceConfig),
		audits:  make(map[string]AuditRecord),
	}
	def := config.DefaultGovernanceConfig()
	s.configs[def.ConfigID] = def
	return s
}

// Put implements ConfigStore.
func (s *MemoryStore) Put(_ context.Context, cfg *config.GovernanceConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[cfg.ConfigID] = cfg
	return nil
}

// GetConfig implements ConfigStore.
func (s *MemoryStore) GetConfig(_ context.Context, configID string) (*config.GovernanceConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.configs[configID]
	if !ok {
		return nil, ErrNotFound
	}
	return cfg, nil
}

// Append implements AuditStore.
func (s *MemoryStore) Append(_ context.Context, rec AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audits[rec.AuditID] = rec
	return nil
}

// GetAudit implements AuditStore.
func (s *MemoryStore) GetAudit(_ context.Context, auditID string) (*AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.audits[auditID]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// ListSince implements AuditStore, returning records at or after since,
// ordered by timestamp ascending.
func (s *MemoryStore) ListSince(_ context.Context, since time.Time) ([]AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]AuditRecord, 0, len(s.audits))
	for _, rec := range s.audits {
		if !rec.TimestampUTC.Before(since) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TimestampUTC.Before(out[j].TimestampUTC) })
	return out, nil
}
