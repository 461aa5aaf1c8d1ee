package models

import "time"

// Notification is a message created for a player as a side effect of an
// engine operation.
type Notification struct {
	ID                string     `json:"id" db:"id"`
	UserID            string     `json:"userId" db:"user_id"`
	Type              string     `json:"type" db:"type"`
	Title             string     `json:"title" db:"title"`
	Message           string     `json:"message" db:"message"`
	IsRead            bool       `json:"isRead" db:"is_read"`
	ReadAt            *time.Time `json:"readAt,omitempty" db:"read_at"`
	RelatedEntityType string     `json:"relatedEntityType,omitempty" db:"related_entity_type"`
	RelatedEntityID   string     `json:"relatedEntityId,omitempty" db:"related_entity_id"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
}
