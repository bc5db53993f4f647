package repository

import (
	"context"
	"time"

	"rental-service/internal/domain/apperror"
	"rental-service/internal/domain/entity"

	"gorm.io/gorm"
)

// GormSyncAuditRepository implements SyncAuditRepository on PostgreSQL
type GormSyncAuditRepository struct {
	db *gorm.DB
}

// NewGormSyncAuditRepository creates a new GORM audit repository
func NewGormSyncAuditRepository(db *gorm.DB) *GormSyncAuditRepository {
	return &GormSyncAuditRepository{
		db: db,
	}
}

// RemoteSyncAudit GORM model for database mapping
type RemoteSyncAudit struct {
	ID         uint      `gorm:"primaryKey"`
	Operation  string    `gorm:"column:operation;size:64;index"`
	ResourceID string    `gorm:"column:resource_id;size:64"`
	ActorID    string    `gorm:"column:actor_id;size:64"`
	Success    bool      `gorm:"column:success;index"`
	Error      string    `gorm:"column:error"`
	RequestID  string    `gorm:"column:request_id;size:64"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
}

// TableName overrides the default table name
func (RemoteSyncAudit) TableName() string {
	return "remote_sync_audits"
}

// Record inserts one audit entry
func (r *GormSyncAuditRepository) Record(ctx context.Context, audit *entity.SyncAudit) error {
	if audit.CreatedAt.IsZero() {
		audit.CreatedAt = time.Now().UTC()
	}

	model := RemoteSyncAudit{
		Operation:  audit.Operation,
		ResourceID: audit.ResourceID,
		ActorID:    audit.ActorID,
		Success:    audit.Success,
		Error:      audit.Error,
		RequestID:  audit.RequestID,
		CreatedAt:  audit.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return &apperror.PersistenceError{Op: "record sync audit", Err: err}
	}

	audit.ID = model.ID
	return nil
}

// RecentFailures returns the latest failed remote writes, newest first
func (r *GormSyncAuditRepository) RecentFailures(ctx context.Context, limit int) ([]*entity.SyncAudit, error) {
	var rows []RemoteSyncAudit
	err := r.db.WithContext(ctx).
		Where("success = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, &apperror.PersistenceError{Op: "list sync failures", Err: err}
	}

	// Convert GORM models to domain entities
	audits := make([]*entity.SyncAudit, 0, len(rows))
	for _, row := range rows {
		audits = append(audits, &entity.SyncAudit{
			ID:         row.ID,
			Operation:  row.Operation,
			ResourceID: row.ResourceID,
			ActorID:    row.ActorID,
			Success:    row.Success,
			Error:      row.Error,
			RequestID:  row.RequestID,
			CreatedAt:  row.CreatedAt,
		})
	}
	return audits, nil
}
