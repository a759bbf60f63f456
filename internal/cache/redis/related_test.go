package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refurbmart/storefront/internal/domain"
	apperrors "github.com/refurbmart/storefront/pkg/errors"
)

func setupTestCache(t *testing.T) (*RelatedCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cache := NewRelatedCache(client, 5*time.Minute)
	return cache, mr
}

func sampleResult() *domain.RelatedResult {
	return &domain.RelatedResult{
		Tier: "strict",
		Items: []domain.RelatedProduct{
			{Product: domain.Product{ID: 2, SKU: "DL-2", Brand: "Dell", Price: 48000, InStock: true}},
			{Product: domain.Product{ID: 3, SKU: "DL-3", Brand: "Dell", Price: 52000}},
		},
	}
}

func TestRelatedCache_GetSet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 1, sampleResult()))

	got, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "strict", got.Tier)
	require.Len(t, got.Items, 2)
	assert.Equal(t, int64(2), got.Items[0].ID)
}

func TestRelatedCache_Get_Miss(t *testing.T) {
	cache, _ := setupTestCache(t)

	_, err := cache.Get(context.Background(), 42)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestRelatedCache_Get_CorruptEntry(t *testing.T) {
	cache, mr := setupTestCache(t)

	require.NoError(t, mr.Set("related:1", "{not json"))

	_, err := cache.Get(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestRelatedCache_Set_AppliesTTL(t *testing.T) {
	cache, mr := setupTestCache(t)

	require.NoError(t, cache.Set(context.Background(), 1, sampleResult()))

	ttl := mr.TTL("related:1")
	assert.Equal(t, 5*time.Minute, ttl)

	// Entry expires after the TTL passes.
	mr.FastForward(6 * time.Minute)
	_, err := cache.Get(context.Background(), 1)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestRelatedCache_Invalidate(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	data, err := json.Marshal(sampleResult())
	require.NoError(t, err)
	require.NoError(t, mr.Set("related:1", string(data)))

	require.NoError(t, cache.Invalidate(ctx, 1))

	_, err = cache.Get(ctx, 1)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
