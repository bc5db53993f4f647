package repository

import (
	"context"
	"sync"
	"time"

	"rental-service/internal/domain/entity"
	"rental-service/pkg/logger"
)

const defaultFailureBacklog = 100

// LogSyncAuditRepository writes audit entries to the log and keeps the latest
// failures in memory. Used when no PostgreSQL DSN is configured.
type LogSyncAuditRepository struct {
	logger   logger.Logger
	mu       sync.Mutex
	failures []*entity.SyncAudit
	capacity int
	nextID   uint
}

// NewLogSyncAuditRepository creates a new log-backed audit repository
func NewLogSyncAuditRepository(log logger.Logger) *LogSyncAuditRepository {
	return &LogSyncAuditRepository{logger: log, capacity: defaultFailureBacklog}
}

// Record logs the entry; failures are also kept for RecentFailures
func (r *LogSyncAuditRepository) Record(ctx context.Context, audit *entity.SyncAudit) error {
	if audit.CreatedAt.IsZero() {
		audit.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	r.nextID++
	audit.ID = r.nextID
	if !audit.Success {
		entry := *audit
		r.failures = append(r.failures, &entry)
		if len(r.failures) > r.capacity {
			r.failures = r.failures[len(r.failures)-r.capacity:]
		}
	}
	r.mu.Unlock()

	r.logger.Info("Remote sync audit",
		"operation", audit.Operation,
		"resourceId", audit.ResourceID,
		"actorId", audit.ActorID,
		"success", audit.Success,
		"error", audit.Error,
		"requestId", audit.RequestID)
	return nil
}

// RecentFailures returns up to limit failures, newest first
func (r *LogSyncAuditRepository) RecentFailures(ctx context.Context, limit int) ([]*entity.SyncAudit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.SyncAudit, 0, len(r.failures))
	for i := len(r.failures) - 1; i >= 0 && len(out) < limit; i-- {
		entry := *r.failures[i]
		out = append(out, &entry)
	}
	return out, nil
}
