// Package redis caches resolved related product lists. A cache miss is
// reported as a not found error so the service layer can fall through to a
// fresh catalog search.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/refurbmart/storefront/internal/domain"
	apperrors "github.com/refurbmart/storefront/pkg/errors"
)

const keyPrefix = "related:"

// RelatedCache stores resolved related product lists in Redis.
type RelatedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRelatedCache creates a Redis-backed related products cache.
func NewRelatedCache(client *redis.Client, ttl time.Duration) *RelatedCache {
	return &RelatedCache{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the cached related list for an anchor product.
func (c *RelatedCache) Get(ctx context.Context, anchorID int64) (*domain.RelatedResult, error) {
	key := keyPrefix + strconv.FormatInt(anchorID, 10)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("related", strconv.FormatInt(anchorID, 10))
		}
		return nil, fmt.Errorf("redis get related: %w", err)
	}

	var cached domain.RelatedResult
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("unmarshal related: %w", err)
	}

	return &cached, nil
}

// Set stores the related list for an anchor product with the configured TTL.
func (c *RelatedCache) Set(ctx context.Context, anchorID int64, cached *domain.RelatedResult) error {
	key := keyPrefix + strconv.FormatInt(anchorID, 10)

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal related: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set related: %w", err)
	}

	return nil
}

// Invalidate drops the cached related list for an anchor product.
func (c *RelatedCache) Invalidate(ctx context.Context, anchorID int64) error {
	key := keyPrefix + strconv.FormatInt(anchorID, 10)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del related: %w", err)
	}

	return nil
}
