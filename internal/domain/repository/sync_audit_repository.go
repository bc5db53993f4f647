package repository

import (
	"context"

	"rental-service/internal/domain/entity"
)

// SyncAuditRepository defines the interface for the remote write audit trail
type SyncAuditRepository interface {
	Record(ctx context.Context, audit *entity.SyncAudit) error
	RecentFailures(ctx context.Context, limit int) ([]*entity.SyncAudit, error)
}
