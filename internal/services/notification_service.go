package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// NotificationService creates and serves player notifications. Engine
// operations call insertTx so the notification commits (or rolls back) with
// the state change that produced it.
type NotificationService struct {
	db *sql.DB
}

func NewNotificationService(db *sql.DB) *NotificationService {
	return &NotificationService{db: db}
}

// insertTx writes one notification inside the caller's unit of work.
func (ns *NotificationService) insertTx(tx *sql.Tx, userID, notifType, title, message, relatedEntityID string) error {
	_, err := tx.Exec(`
		INSERT INTO notifications (id, user_id, type, title, message, is_read, related_entity_type, related_entity_id, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, 'Transaction', $6, NOW())`,
		uuid.New().String(), userID, notifType, title, message, relatedEntityID)
	if err != nil {
		return fmt.Errorf("storing notification: %w", err)
	}
	return nil
}

type notificationRow struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	Title           string `json:"title"`
	Message         string `json:"message"`
	IsRead          bool   `json:"isRead"`
	RelatedEntityID string `json:"relatedEntityId,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

// ListNotifications retrieves the authenticated user's notifications
// @Summary List my notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} object{notifications=[]notificationRow,unreadCount=int}
// @Router /notifications [get]
func (ns *NotificationService) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	rows, err := ns.db.QueryContext(r.Context(), `
		SELECT id, type, title, message, is_read, COALESCE(related_entity_id::text, ''), created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT 100`, userID)
	if err != nil {
		log.Printf("[NOTIFICATION] Failed to list notifications for %s: %v", userID, err)
		SendErrorResponse(w, "Failed to fetch notifications", http.StatusInternalServerError, nil)
		return
	}
	defer rows.Close()

	notifications := []notificationRow{}
	unread := 0
	for rows.Next() {
		var n notificationRow
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.RelatedEntityID, &n.CreatedAt); err != nil {
			SendErrorResponse(w, "Failed to fetch notifications", http.StatusInternalServerError, nil)
			return
		}
		if !n.IsRead {
			unread++
		}
		notifications = append(notifications, n)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

// MarkNotificationRead marks one notification as read
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param notificationId path string true "Notification ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} ErrorResponse
// @Router /notifications/{notificationId}/read [put]
func (ns *NotificationService) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}
	notificationID := chi.URLParam(r, "notificationId")

	result, err := ns.db.ExecContext(r.Context(), `
		UPDATE notifications SET is_read = TRUE, read_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_read = FALSE`,
		notificationID, userID)
	if err != nil {
		log.Printf("[NOTIFICATION] Failed to mark %s read: %v", notificationID, err)
		SendErrorResponse(w, "Failed to update notification", http.StatusInternalServerError, nil)
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		SendErrorResponse(w, "Notification not found", http.StatusNotFound, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Notification marked as read"})
}
