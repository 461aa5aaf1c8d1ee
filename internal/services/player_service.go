package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/playvault/backend/internal/models"
)

// PlayerService serves player profile and balance reads plus the
// self-service profile update.
type PlayerService struct {
	db        *sql.DB
	validator *ValidationHelper
	audit     *AuditWriter
}

// UpdateProfileRequest is the self-service profile update payload
// @Description Profile update request
type UpdateProfileRequest struct {
	FirstName   string `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName    string `json:"lastName" validate:"omitempty,min=1,max=50"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,e164"`
}

func NewPlayerService(db *sql.DB) *PlayerService {
	return &PlayerService{
		db:        db,
		validator: NewValidationHelper(),
		audit:     NewAuditWriter(),
	}
}

// GetByID loads a full player record.
func (ps *PlayerService) GetByID(ctx context.Context, playerID string) (*models.Player, error) {
	p := &models.Player{}
	var lastLogin sql.NullTime
	err := ps.db.QueryRowContext(ctx, `
		SELECT id, email, username, first_name, last_name, COALESCE(phone_number, ''), role, status,
		       balance, daily_deposit_limit, daily_withdrawal_limit, email_verified, kyc_verified,
		       last_login_at, created_at, updated_at
		FROM players WHERE id = $1`, playerID).
		Scan(&p.ID, &p.Email, &p.Username, &p.FirstName, &p.LastName, &p.PhoneNumber, &p.Role, &p.Status,
			&p.Balance, &p.DailyDepositLimit, &p.DailyWithdrawalLimit, &p.EmailVerified, &p.KycVerified,
			&lastLogin, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading player: %w", err)
	}
	if lastLogin.Valid {
		p.LastLoginAt = &lastLogin.Time
	}
	return p, nil
}

// GetMyProfile retrieves the authenticated player's profile
// @Summary Get my profile
// @Tags players
// @Produce json
// @Success 200 {object} models.Player
// @Failure 404 {object} ErrorResponse
// @Router /players/me [get]
func (ps *PlayerService) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	playerID, ok := r.Context().Value("userID").(string)
	if !ok || playerID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	player, err := ps.GetByID(r.Context(), playerID)
	if err != nil {
		WriteEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(player)
}

// UpdateMyProfile updates the authenticated player's profile fields
// @Summary Update my profile
// @Tags players
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} models.Player
// @Failure 400 {object} ErrorResponse
// @Router /players/me [put]
func (ps *PlayerService) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	playerID, ok := r.Context().Value("userID").(string)
	if !ok || playerID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req UpdateProfileRequest
	if err := dec.Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}
	if err := ps.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	tx, err := ps.db.BeginTx(r.Context(), nil)
	if err != nil {
		SendErrorResponse(w, "Failed to update profile", http.StatusInternalServerError, nil)
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE players
		SET first_name = COALESCE(NULLIF($1, ''), first_name),
		    last_name = COALESCE(NULLIF($2, ''), last_name),
		    phone_number = COALESCE(NULLIF($3, ''), phone_number),
		    updated_at = NOW()
		WHERE id = $4`,
		req.FirstName, req.LastName, req.PhoneNumber, playerID)
	if err != nil {
		log.Printf("[PLAYER] Profile update failed for %s: %v", playerID, err)
		SendErrorResponse(w, "Failed to update profile", http.StatusInternalServerError, nil)
		return
	}

	if err := ps.audit.Record(tx, "UpdateProfile", playerID, "Player", playerID, clientIP(r), "Profile fields updated"); err != nil {
		SendErrorResponse(w, "Failed to update profile", http.StatusInternalServerError, nil)
		return
	}

	if err := tx.Commit(); err != nil {
		SendErrorResponse(w, "Failed to update profile", http.StatusInternalServerError, nil)
		return
	}

	player, err := ps.GetByID(r.Context(), playerID)
	if err != nil {
		WriteEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(player)
}

// GetMyBalance retrieves the authenticated player's balance and limits
// @Summary Get my balance
// @Tags players
// @Produce json
// @Success 200 {object} object{balance=int,dailyDepositLimit=int,dailyWithdrawalLimit=int}
// @Router /players/me/balance [get]
func (ps *PlayerService) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	playerID, ok := r.Context().Value("userID").(string)
	if !ok || playerID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var balance, depositLimit, withdrawalLimit int64
	err := ps.db.QueryRowContext(r.Context(), `
		SELECT balance, daily_deposit_limit, daily_withdrawal_limit FROM players WHERE id = $1`, playerID).
		Scan(&balance, &depositLimit, &withdrawalLimit)
	if err == sql.ErrNoRows {
		SendErrorResponse(w, "Player not found", http.StatusNotFound, nil)
		return
	}
	if err != nil {
		SendErrorResponse(w, "Failed to fetch balance", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{
		"balance":              balance,
		"dailyDepositLimit":    depositLimit,
		"dailyWithdrawalLimit": withdrawalLimit,
	})
}
