package services

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// AuditWriter appends audit trail entries inside the caller's unit of work.
// A failed insert aborts the whole operation; the trail must never silently
// miss a state change.
type AuditWriter struct{}

func NewAuditWriter() *AuditWriter {
	return &AuditWriter{}
}

// Record inserts one audit entry within tx.
func (a *AuditWriter) Record(tx *sql.Tx, action, userID, entityType, entityID, ipAddress, details string) error {
	_, err := tx.Exec(`
		INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, ip_address, details, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NOW())`,
		uuid.New().String(), userID, action, entityType, entityID, ipAddress, details)
	if err != nil {
		return fmt.Errorf("audit write failed: %w", err)
	}

	log.Printf("[AUDIT] action=%s actor=%s entity=%s/%s details=%q", action, userID, entityType, entityID, details)
	return nil
}
