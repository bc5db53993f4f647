package repository

import (
	"context"
	"time"

	"rental-service/internal/domain/entity"
)

// ThumbnailRequest asks for the derived image URLs of one property
type ThumbnailRequest struct {
	PropertyID  string `json:"id"`
	SourceImage string `json:"imageUrl,omitempty"`
}

// ThumbnailProvider generates (or looks up) thumbnails for a batch of properties.
// The result is keyed by property id; ids it could not serve are absent.
type ThumbnailProvider interface {
	EnsureThumbnails(ctx context.Context, requests []ThumbnailRequest) (map[string]entity.Thumbnails, error)
}

// ThumbnailCache stores derived image URLs by property id
type ThumbnailCache interface {
	Get(ctx context.Context, propertyIDs []string) (map[string]entity.Thumbnails, error)
	Set(ctx context.Context, propertyID string, thumbnails entity.Thumbnails, ttl time.Duration) error
}
