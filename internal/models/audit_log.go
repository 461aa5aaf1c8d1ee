package models

import "time"

// AuditLog is an append-only record of a state-changing action attributed to
// an actor. Entries are never updated or deleted.
type AuditLog struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"userId" db:"user_id"`
	Action     string    `json:"action" db:"action"`
	EntityType string    `json:"entityType" db:"entity_type"`
	EntityID   string    `json:"entityId" db:"entity_id"`
	IPAddress  string    `json:"ipAddress,omitempty" db:"ip_address"`
	Details    string    `json:"details,omitempty" db:"details"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
