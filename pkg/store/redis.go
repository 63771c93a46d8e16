package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/codeready-toolchain/meerkat/pkg/config"
)

// RedisStore is the Redis-backed ConfigStore/AuditStore alternative, for
// deployments that need config and audit records to survive a restart or
// be shared across replicas. Configs are stored as plain keys; audit
// records are additionally indexed into a sorted set by timestamp so
// ListSince doesn't require a full keyspace scan.
type RedisStore struct {
	client *redis.Client
}

const (
	configKeyPrefix   = "meerkat:config:"
	auditKeyPrefix    = "meerkat:audit:"
	auditIndexZSetKey = "meerkat:audit:index"
)

// NewRedisStore wires a RedisStore against an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Put implements ConfigStore.
func (s *RedisStore) Put(ctx context.Context, cfg *config.GovernanceConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("store: marshal config: %w", err)
	}
	return s.client.Set(ctx, configKeyPrefix+cfg.ConfigID, data, 0).Err()
}

// GetConfig implements ConfigStore.
func (s *RedisStore) GetConfig(ctx context.Context, configID string) (*config.GovernanceConfig, error) {
	data, err := s.client.Get(ctx, configKeyPrefix+configID).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get config: %w", err)
	}
	var cfg config.GovernanceConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("store: unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Append implements AuditStore.
func (s *RedisStore) Append(ctx context.Context, rec AuditRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: marshal audit record: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, auditKeyPrefix+rec.AuditID, data, 0)
	pipe.ZAdd(ctx, auditIndexZSetKey, redis.Z{
		Score:  float64(rec.TimestampUTC.Unix()),
		Member: rec.AuditID,
	})
	_, err = pipe.Exec(ctx)
	return err
}

// GetAudit implements AuditStore.
func (s *RedisStore) GetAudit(ctx context.Context, auditID string) (*AuditRecord, error) {
	data, err := s.client.Get(ctx, auditKeyPrefix+auditID).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get audit record: %w", err)
	}
	var rec AuditRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("store: unmarshal audit record: %w", err)
	}
	return &rec, nil
}

// ListSince implements AuditStore using the timestamp-scored sorted set to
// avoid scanning every audit key.
func (s *RedisStore) ListSince(ctx context.Context, since time.Time) ([]AuditRecord, error) {
	ids, err := s.client.ZRangeByScore(ctx, auditIndexZSetKey, &redis.ZRangeBy{
		Min: fmt.Sprintf("%d", since.Unix()),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("store: list audit index: %w", err)
	}

	out := make([]AuditRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := s.GetAudit(ctx, id)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}
