package entity

import "time"

// Remote write operations recorded in the audit trail
const (
	SyncOpGuestUpdate    = "guest.update"
	SyncOpPropertyUpdate = "property.update"
)

// SyncAudit records one write sent to OwnerRez
type SyncAudit struct {
	ID         uint      `json:"id"`
	Operation  string    `json:"operation"`
	ResourceID string    `json:"resourceId"`
	ActorID    string    `json:"actorId"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	RequestID  string    `json:"requestId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
