package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/review-router/internal/config"
	"github.com/spec-kit/review-router/internal/domain"
)

// LatestCache mirrors the latest export record in Redis under a single key,
// so any instance can serve the download. A nil cache is a no-op.
type LatestCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewLatestCache returns nil when client is nil.
func NewLatestCache(client *redis.Client, cfg config.RedisConfig) *LatestCache {
	if client == nil {
		return nil
	}
	key := cfg.LatestKey
	if key == "" {
		key = "review-router:export:latest"
	}
	return &LatestCache{client: client, key: key, ttl: cfg.TTL()}
}

// Save overwrites the mirrored record.
func (c *LatestCache) Save(ctx context.Context, rec domain.ExportRecord) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal export record: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("save export record: %w", err)
	}
	return nil
}

// Load returns the mirrored record or ErrNoExport.
func (c *LatestCache) Load(ctx context.Context) (domain.ExportRecord, error) {
	if c == nil {
		return domain.ExportRecord{}, ErrNoExport
	}
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ExportRecord{}, ErrNoExport
	}
	if err != nil {
		return domain.ExportRecord{}, fmt.Errorf("load export record: %w", err)
	}
	var rec domain.ExportRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.ExportRecord{}, fmt.Errorf("decode export record: %w", err)
	}
	return rec, nil
}
