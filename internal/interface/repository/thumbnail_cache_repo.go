package repository

import (
	"context"
	"time"

	"rental-service/internal/domain/entity"
	"rental-service/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const thumbnailKeyPrefix = "property:thumbnails:"

// RedisThumbnailCache stores thumbnail URLs in one hash per property
type RedisThumbnailCache struct {
	client *redis.Client
}

// NewRedisThumbnailCache creates a new thumbnail cache
func NewRedisThumbnailCache(client *redis.Client) repository.ThumbnailCache {
	return &RedisThumbnailCache{client: client}
}

func thumbnailKey(propertyID string) string {
	return thumbnailKeyPrefix + propertyID
}

// Get returns the cached thumbnails for each id that has an entry
func (c *RedisThumbnailCache) Get(ctx context.Context, propertyIDs []string) (map[string]entity.Thumbnails, error) {
	result := make(map[string]entity.Thumbnails, len(propertyIDs))
	if len(propertyIDs) == 0 {
		return result, nil
	}

	pipe := c.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(propertyIDs))
	for i, id := range propertyIDs {
		cmds[i] = pipe.HGetAll(ctx, thumbnailKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, err
	}

	for i, cmd := range cmds {
		fields, err := cmd.Result()
		if err != nil || len(fields) == 0 {
			continue
		}
		result[propertyIDs[i]] = entity.Thumbnails{
			Small:  fields[entity.ThumbnailURLKey],
			Medium: fields[entity.ThumbnailURLMediumKey],
			Large:  fields[entity.ThumbnailURLLargeKey],
		}
	}

	return result, nil
}

// Set stores the thumbnails of one property and refreshes its expiry
func (c *RedisThumbnailCache) Set(ctx context.Context, propertyID string, thumbnails entity.Thumbnails, ttl time.Duration) error {
	key := thumbnailKey(propertyID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			entity.ThumbnailURLKey, thumbnails.Small,
			entity.ThumbnailURLMediumKey, thumbnails.Medium,
			entity.ThumbnailURLLargeKey, thumbnails.Large,
		)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	return err
}
