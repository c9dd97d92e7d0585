// Package cache provides the Redis-backed reference data cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stockadmin/internal/domain/reason"
	"stockadmin/pkg/logger"
)

const (
	keyPrefix        = "stockadmin:reference:"
	programsKey      = keyPrefix + "programs"
	facilityTypesKey = keyPrefix + "facility_types"
	reasonsKey       = keyPrefix + "reasons"
)

// ReferenceCache serves programs, facility types and reasons from Redis,
// loading them from the upstream source on a miss. Redis failures degrade
// to a direct upstream read.
type ReferenceCache struct {
	client   *redis.Client
	upstream reason.ReferenceSource
	ttl      time.Duration
}

var _ reason.ReferenceSource = (*ReferenceCache)(nil)

// NewReferenceCache creates a cache in front of upstream. A nil client
// disables caching.
func NewReferenceCache(client *redis.Client, upstream reason.ReferenceSource, ttl time.Duration) *ReferenceCache {
	return &ReferenceCache{client: client, upstream: upstream, ttl: ttl}
}

// Programs returns all programs.
func (c *ReferenceCache) Programs(ctx context.Context) ([]reason.Program, error) {
	return fetchJSON(ctx, c, programsKey, c.upstream.Programs)
}

// FacilityTypes returns all facility types.
func (c *ReferenceCache) FacilityTypes(ctx context.Context) ([]reason.FacilityType, error) {
	return fetchJSON(ctx, c, facilityTypesKey, c.upstream.FacilityTypes)
}

// Reasons returns all existing reasons.
func (c *ReferenceCache) Reasons(ctx context.Context) ([]reason.Reason, error) {
	return fetchJSON(ctx, c, reasonsKey, c.upstream.Reasons)
}

// InvalidateReasons drops the cached reason list.
func (c *ReferenceCache) InvalidateReasons(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, reasonsKey).Err()
}

// Invalidate drops every cached reference list.
func (c *ReferenceCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, programsKey, facilityTypesKey, reasonsKey).Err()
}

func fetchJSON[T any](ctx context.Context, c *ReferenceCache, key string, loader func(context.Context) ([]T, error)) ([]T, error) {
	if c.client == nil {
		return loader(ctx)
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []T
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
		logger.Warn(ctx, "discarding undecodable cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		logger.Warn(ctx, "reference cache read failed", "key", key, "error", err)
		return loader(ctx)
	}

	value, err := loader(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.Warn(ctx, "reference cache write failed", "key", key, "error", err)
	}
	return value, nil
}
