package repository

import (
	"context"
	"testing"
	"time"

	"rental-service/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupThumbnailCache(t *testing.T) (*miniredis.Miniredis, *RedisThumbnailCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, &RedisThumbnailCache{client: client}
}

func TestRedisThumbnailCache_SetAndGet(t *testing.T) {
	mr, cache := setupThumbnailCache(t)
	ctx := context.Background()

	thumbs := entity.Thumbnails{
		Small:  "https://cdn.example.com/42/s.jpg",
		Medium: "https://cdn.example.com/42/m.jpg",
		Large:  "https://cdn.example.com/42/l.jpg",
	}
	require.NoError(t, cache.Set(ctx, "42", thumbs, time.Hour))

	assert.Equal(t, thumbs.Medium, mr.HGet("property:thumbnails:42", "thumbnail_url_medium"))
	assert.Equal(t, time.Hour, mr.TTL("property:thumbnails:42"))

	got, err := cache.Get(ctx, []string{"42", "43"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, thumbs, got["42"])
	_, ok := got["43"]
	assert.False(t, ok)
}

func TestRedisThumbnailCache_Expires(t *testing.T) {
	mr, cache := setupThumbnailCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "7", entity.Thumbnails{Small: "s", Medium: "m", Large: "l"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, []string{"7"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisThumbnailCache_EmptyRequest(t *testing.T) {
	_, cache := setupThumbnailCache(t)

	got, err := cache.Get(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisThumbnailCache_ServerDown(t *testing.T) {
	mr, cache := setupThumbnailCache(t)
	mr.Close()

	_, err := cache.Get(context.Background(), []string{"1"})
	assert.Error(t, err)
}
