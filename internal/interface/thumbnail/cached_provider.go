package thumbnail

import (
	"context"
	"time"

	"rental-service/internal/domain/entity"
	"rental-service/internal/domain/repository"
	"rental-service/pkg/logger"
)

// CachedProvider serves complete thumbnail sets from the cache and forwards the rest
type CachedProvider struct {
	next   repository.ThumbnailProvider
	cache  repository.ThumbnailCache
	ttl    time.Duration
	logger logger.Logger
}

// NewCachedProvider wraps next with a read-through cache
func NewCachedProvider(next repository.ThumbnailProvider, cache repository.ThumbnailCache, ttl time.Duration, log logger.Logger) *CachedProvider {
	return &CachedProvider{next: next, cache: cache, ttl: ttl, logger: log}
}

// EnsureThumbnails implements repository.ThumbnailProvider. Cache failures are treated as misses.
func (p *CachedProvider) EnsureThumbnails(ctx context.Context, requests []repository.ThumbnailRequest) (map[string]entity.Thumbnails, error) {
	ids := make([]string, len(requests))
	for i, r := range requests {
		ids[i] = r.PropertyID
	}

	cached, err := p.cache.Get(ctx, ids)
	if err != nil {
		p.logger.Warn("Thumbnail cache read failed", "error", err)
		cached = nil
	}

	result := make(map[string]entity.Thumbnails, len(requests))
	var misses []repository.ThumbnailRequest
	for _, r := range requests {
		if t, ok := cached[r.PropertyID]; ok && t.Complete() {
			result[r.PropertyID] = t
			continue
		}
		misses = append(misses, r)
	}

	if len(misses) == 0 {
		return result, nil
	}

	fresh, err := p.next.EnsureThumbnails(ctx, misses)
	if err != nil {
		if len(result) > 0 {
			p.logger.Warn("Thumbnail provider failed, serving cached entries only", "error", err)
			return result, nil
		}
		return nil, err
	}

	for id, t := range fresh {
		result[id] = t
		if !t.Complete() {
			continue
		}
		if err := p.cache.Set(ctx, id, t, p.ttl); err != nil {
			p.logger.Warn("Thumbnail cache write failed", "propertyId", id, "error", err)
		}
	}

	return result, nil
}
