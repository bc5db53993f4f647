package repository

import (
	"context"
	"time"

	"rental-service/internal/domain/entity"
)

// PropertyRepository defines the interface for locally stored property data
type PropertyRepository interface {
	FindByOwnerRezID(ctx context.Context, ownerRezID int64) (*entity.LocalProperty, error)
	UpsertByOwnerRezID(ctx context.Context, ownerRezID int64, input *entity.LocalPropertyInput) (*entity.LocalProperty, error)
	TouchSyncedAt(ctx context.Context, ownerRezID int64, syncedAt time.Time) error
}
