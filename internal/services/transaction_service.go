package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/playvault/backend/internal/metrics"
	"github.com/playvault/backend/internal/models"
)

// TransactionService is the transaction processing engine. Every operation
// (deposit, withdrawal, approve, reject) runs as one database transaction:
// player row locked FOR UPDATE, all validations, the transaction insert or
// status transition, the optional balance mutation and the audit entry are
// committed together or not at all.
type TransactionService struct {
	db                *sql.DB
	validator         *ValidationHelper
	audit             *AuditWriter
	notifications     *NotificationService
	suspicion         SuspicionPolicy
	autoCompleteBelow int64
}

// CreateTransactionRequest is the payload for deposits and withdrawals
// @Description Deposit/withdrawal creation request
type CreateTransactionRequest struct {
	Amount          int64  `json:"amount" validate:"required,gt=0" example:"250"`
	PaymentMethodID string `json:"paymentMethodId" validate:"required,uuid4"`
	Description     string `json:"description" validate:"max=200" example:"Weekly deposit"`
}

// ApproveTransactionRequest carries optional operator notes
// @Description Operator approval request
type ApproveTransactionRequest struct {
	Notes string `json:"notes" validate:"max=200"`
}

// RejectTransactionRequest carries the mandatory rejection reason
// @Description Operator rejection request
type RejectTransactionRequest struct {
	Reason string `json:"reason" validate:"required,max=200"`
}

func NewTransactionService(db *sql.DB, notifications *NotificationService, policy SuspicionPolicy) *TransactionService {
	viper.SetDefault("engine.auto_complete_below", 100)

	if policy == nil {
		policy = DefaultSuspicionPolicy()
	}
	return &TransactionService{
		db:                db,
		validator:         NewValidationHelper(),
		audit:             NewAuditWriter(),
		notifications:     notifications,
		suspicion:         policy,
		autoCompleteBelow: viper.GetInt64("engine.auto_complete_below"),
	}
}

// playerRow is the locked ledger snapshot an engine operation works against.
type playerRow struct {
	ID                   string
	Status               string
	Balance              int64
	DailyDepositLimit    int64
	DailyWithdrawalLimit int64
	KycVerified          bool
	Version              int
}

// Deposit creates a deposit for the player. Deposits below the
// auto-completion threshold settle synchronously inside the same unit of
// work; larger ones stay PENDING for operator review.
func (ts *TransactionService) Deposit(ctx context.Context, playerID string, req CreateTransactionRequest, ipAddress string) (*models.Transaction, error) {
	tx, err := ts.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin deposit: %w", err)
	}
	defer tx.Rollback()

	player, err := ts.lockPlayer(tx, playerID)
	if err != nil {
		return nil, err
	}
	if player.Status != models.AccountActive {
		return nil, fmt.Errorf("%w: account status is %s, cannot deposit", ErrInvalidState, player.Status)
	}

	method, err := ts.getPaymentMethod(tx, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if req.Amount < method.MinAmount || req.Amount > method.MaxAmount {
		return nil, fmt.Errorf("%w: amount must be between %d and %d", ErrLimitExceeded, method.MinAmount, method.MaxAmount)
	}

	depositedToday, err := ts.sumSinceMidnight(tx, playerID, models.TypeDeposit)
	if err != nil {
		return nil, err
	}
	if depositedToday+req.Amount > player.DailyDepositLimit {
		return nil, fmt.Errorf("%w: daily deposit limit is %d, already deposited today: %d",
			ErrLimitExceeded, player.DailyDepositLimit, depositedToday)
	}

	now := time.Now().UTC()
	txn := &models.Transaction{
		ID:              uuid.New().String(),
		PlayerID:        playerID,
		Type:            models.TypeDeposit,
		Amount:          req.Amount,
		Status:          models.StatusPending,
		PaymentMethodID: method.ID,
		Description:     req.Description,
		IPAddress:       ipAddress,
		BalanceBefore:   player.Balance,
		BalanceAfter:    player.Balance + req.Amount, // projection until settled
		CreatedAt:       now,
	}

	if req.Amount < ts.autoCompleteBelow {
		txn.Status = models.StatusCompleted
		txn.CompletedAt = &now
		if err := ts.updatePlayerBalance(tx, player.ID, player.Balance+req.Amount, player.Version); err != nil {
			return nil, err
		}
		log.Printf("[TRANSACTION] Auto-completed deposit of %d for player %s", req.Amount, playerID)
	} else {
		log.Printf("[TRANSACTION] Deposit of %d for player %s pending approval", req.Amount, playerID)
	}

	if err := ts.insertTransaction(tx, txn); err != nil {
		return nil, err
	}

	details := fmt.Sprintf("Deposit of %d via %s", req.Amount, method.Name)
	if err := ts.audit.Record(tx, "CreateDeposit", playerID, "Transaction", txn.ID, ipAddress, details); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit deposit: %w", err)
	}

	metrics.TransactionsCreated.WithLabelValues(txn.Type, txn.Status).Inc()
	return txn, nil
}

// Withdraw creates a withdrawal for the player. Withdrawals always stay
// PENDING: the ledger is untouched until an operator approves. The
// suspicious-activity policy runs against the trailing 24h window and may
// mark the transaction for review without blocking it.
func (ts *TransactionService) Withdraw(ctx context.Context, playerID string, req CreateTransactionRequest, ipAddress string) (*models.Transaction, error) {
	tx, err := ts.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin withdrawal: %w", err)
	}
	defer tx.Rollback()

	player, err := ts.lockPlayer(tx, playerID)
	if err != nil {
		return nil, err
	}
	if player.Status != models.AccountActive {
		return nil, fmt.Errorf("%w: account status is %s, cannot withdraw", ErrInvalidState, player.Status)
	}
	if !player.KycVerified {
		return nil, fmt.Errorf("%w: KYC verification required for withdrawals", ErrInvalidState)
	}

	method, err := ts.getPaymentMethod(tx, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if req.Amount < method.MinAmount || req.Amount > method.MaxAmount {
		return nil, fmt.Errorf("%w: amount must be between %d and %d", ErrLimitExceeded, method.MinAmount, method.MaxAmount)
	}

	if player.Balance < req.Amount {
		return nil, fmt.Errorf("%w: insufficient balance, available: %d, requested: %d",
			ErrLimitExceeded, player.Balance, req.Amount)
	}

	withdrawnToday, err := ts.sumSinceMidnight(tx, playerID, models.TypeWithdrawal)
	if err != nil {
		return nil, err
	}
	if withdrawnToday+req.Amount > player.DailyWithdrawalLimit {
		return nil, fmt.Errorf("%w: daily withdrawal limit is %d, already withdrawn today: %d",
			ErrLimitExceeded, player.DailyWithdrawalLimit, withdrawnToday)
	}

	window, err := ts.recentWindow(tx, playerID, time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		ID:              uuid.New().String(),
		PlayerID:        playerID,
		Type:            models.TypeWithdrawal,
		Amount:          req.Amount,
		Status:          models.StatusPending,
		PaymentMethodID: method.ID,
		Description:     req.Description,
		IPAddress:       ipAddress,
		BalanceBefore:   player.Balance,
		BalanceAfter:    player.Balance - req.Amount, // projection, ledger untouched
		CreatedAt:       time.Now().UTC(),
	}

	if flagged, reason := ts.suspicion(window, req.Amount); flagged {
		txn.IsFlagged = true
		txn.FlagReason = reason
		log.Printf("[TRANSACTION] Suspicious withdrawal flagged for player %s: %d", playerID, req.Amount)
	}

	if err := ts.insertTransaction(tx, txn); err != nil {
		return nil, err
	}

	details := fmt.Sprintf("Withdrawal of %d via %s", req.Amount, method.Name)
	if err := ts.audit.Record(tx, "CreateWithdrawal", playerID, "Transaction", txn.ID, ipAddress, details); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit withdrawal: %w", err)
	}

	metrics.TransactionsCreated.WithLabelValues(txn.Type, txn.Status).Inc()
	if txn.IsFlagged {
		metrics.TransactionsFlagged.Inc()
	}
	log.Printf("[TRANSACTION] Withdrawal of %d for player %s pending approval", req.Amount, playerID)
	return txn, nil
}

// Approve finalizes a pending transaction. Deposits credit the player,
// withdrawals re-check sufficiency against the current balance (it may have
// drifted since creation) before debiting. BalanceAfter is overwritten with
// the settled balance.
func (ts *TransactionService) Approve(ctx context.Context, transactionID, operatorID, notes string) (*models.Transaction, error) {
	tx, err := ts.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin approval: %w", err)
	}
	defer tx.Rollback()

	txn, err := ts.lockTransaction(tx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: cannot approve transaction in status %s", ErrInvalidState, txn.Status)
	}

	player, err := ts.lockPlayer(tx, txn.PlayerID)
	if err != nil {
		return nil, err
	}

	var newBalance int64
	switch txn.Type {
	case models.TypeDeposit:
		newBalance = player.Balance + txn.Amount
	case models.TypeWithdrawal:
		if player.Balance < txn.Amount {
			return nil, fmt.Errorf("%w: insufficient balance, player balance may have changed", ErrLimitExceeded)
		}
		newBalance = player.Balance - txn.Amount
	default:
		return nil, fmt.Errorf("%w: unknown transaction type %s", ErrInvalidState, txn.Type)
	}

	if err := ts.updatePlayerBalance(tx, player.ID, newBalance, player.Version); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	description := txn.Description
	if notes != "" {
		description = strings.TrimSpace(description + " [Operator notes: " + notes + "]")
	}

	_, err = tx.Exec(`
		UPDATE transactions
		SET status = $1, completed_at = $2, approved_by = $3, approved_at = $4, balance_after = $5, description = $6
		WHERE id = $7`,
		models.StatusCompleted, now, operatorID, now, newBalance, description, txn.ID)
	if err != nil {
		return nil, fmt.Errorf("approving transaction: %w", err)
	}

	txn.Status = models.StatusCompleted
	txn.CompletedAt = &now
	txn.ApprovedByID = operatorID
	txn.ApprovedAt = &now
	txn.BalanceAfter = newBalance
	txn.Description = description

	if err := ts.audit.Record(tx, "ApproveTransaction", operatorID, "Transaction", txn.ID, "",
		fmt.Sprintf("Approved %s of %d", txn.Type, txn.Amount)); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your %s of %d has been approved.", strings.ToLower(txn.Type), txn.Amount)
	if err := ts.notifications.insertTx(tx, txn.PlayerID, "TransactionUpdate", "Transaction Approved", message, txn.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit approval: %w", err)
	}

	metrics.TransactionsApproved.WithLabelValues(txn.Type).Inc()
	log.Printf("[TRANSACTION] Transaction %s approved by operator %s", transactionID, operatorID)
	return txn, nil
}

// Reject declines a pending transaction. The ledger is never touched: the
// provisional balance projection is simply discarded.
func (ts *TransactionService) Reject(ctx context.Context, transactionID, operatorID, reason string) (*models.Transaction, error) {
	tx, err := ts.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin rejection: %w", err)
	}
	defer tx.Rollback()

	txn, err := ts.lockTransaction(tx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: cannot reject transaction in status %s", ErrInvalidState, txn.Status)
	}

	now := time.Now().UTC()
	_, err = tx.Exec(`
		UPDATE transactions
		SET status = $1, approved_by = $2, approved_at = $3, rejection_reason = $4
		WHERE id = $5`,
		models.StatusRejected, operatorID, now, reason, txn.ID)
	if err != nil {
		return nil, fmt.Errorf("rejecting transaction: %w", err)
	}

	txn.Status = models.StatusRejected
	txn.ApprovedByID = operatorID
	txn.ApprovedAt = &now
	txn.RejectionReason = reason

	if err := ts.audit.Record(tx, "RejectTransaction", operatorID, "Transaction", txn.ID, "",
		fmt.Sprintf("Rejected %s of %d: %s", txn.Type, txn.Amount, reason)); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your %s of %d was rejected. Reason: %s", strings.ToLower(txn.Type), txn.Amount, reason)
	if err := ts.notifications.insertTx(tx, txn.PlayerID, "TransactionUpdate", "Transaction Rejected", message, txn.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit rejection: %w", err)
	}

	metrics.TransactionsRejected.Inc()
	log.Printf("[TRANSACTION] Transaction %s rejected by operator %s", transactionID, operatorID)
	return txn, nil
}

// Unit-of-work helpers

func (ts *TransactionService) lockPlayer(tx *sql.Tx, playerID string) (*playerRow, error) {
	p := &playerRow{}
	err := tx.QueryRow(`
		SELECT id, status, balance, daily_deposit_limit, daily_withdrawal_limit, kyc_verified, version
		FROM players WHERE id = $1 FOR UPDATE`, playerID).
		Scan(&p.ID, &p.Status, &p.Balance, &p.DailyDepositLimit, &p.DailyWithdrawalLimit, &p.KycVerified, &p.Version)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading player: %w", err)
	}
	return p, nil
}

func (ts *TransactionService) getPaymentMethod(tx *sql.Tx, methodID string) (*models.PaymentMethod, error) {
	m := &models.PaymentMethod{}
	err := tx.QueryRow(`
		SELECT id, name, is_active, min_amount, max_amount
		FROM payment_methods WHERE id = $1`, methodID).
		Scan(&m.ID, &m.Name, &m.IsActive, &m.MinAmount, &m.MaxAmount)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: payment method %s", ErrNotFound, methodID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading payment method: %w", err)
	}
	if !m.IsActive {
		return nil, fmt.Errorf("%w: payment method %s is not active", ErrInvalidState, m.Name)
	}
	return m, nil
}

// sumSinceMidnight totals the player's PENDING and COMPLETED transactions of
// one type created since UTC midnight. Rejected transactions do not consume
// the daily limit.
func (ts *TransactionService) sumSinceMidnight(tx *sql.Tx, playerID, txType string) (int64, error) {
	midnight := time.Now().UTC().Truncate(24 * time.Hour)

	var total int64
	err := tx.QueryRow(`
		SELECT COALESCE(SUM(amount), 0) FROM transactions
		WHERE player_id = $1 AND type = $2 AND status IN ('PENDING', 'COMPLETED') AND created_at >= $3`,
		playerID, txType, midnight).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing daily transactions: %w", err)
	}
	return total, nil
}

func (ts *TransactionService) recentWindow(tx *sql.Tx, playerID string, since time.Time) ([]models.Transaction, error) {
	rows, err := tx.Query(`
		SELECT type, amount, created_at FROM transactions
		WHERE player_id = $1 AND created_at >= $2`, playerID, since)
	if err != nil {
		return nil, fmt.Errorf("loading transaction window: %w", err)
	}
	defer rows.Close()

	window := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.Type, &t.Amount, &t.CreatedAt); err != nil {
			return nil, err
		}
		window = append(window, t)
	}
	return window, rows.Err()
}

func (ts *TransactionService) insertTransaction(tx *sql.Tx, txn *models.Transaction) error {
	_, err := tx.Exec(`
		INSERT INTO transactions
		(id, player_id, type, amount, status, payment_method_id, description, ip_address, is_flagged, flag_reason, balance_before, balance_after, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, NULLIF($10, ''), $11, $12, $13, $14)`,
		txn.ID, txn.PlayerID, txn.Type, txn.Amount, txn.Status, txn.PaymentMethodID,
		txn.Description, txn.IPAddress, txn.IsFlagged, txn.FlagReason,
		txn.BalanceBefore, txn.BalanceAfter, txn.CompletedAt, txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("storing transaction: %w", err)
	}
	return nil
}

func (ts *TransactionService) updatePlayerBalance(tx *sql.Tx, playerID string, newBalance int64, version int) error {
	result, err := tx.Exec(`
		UPDATE players SET balance = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND version = $3`,
		newBalance, playerID, version)
	if err != nil {
		return fmt.Errorf("updating balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("optimistic lock failed for player %s", playerID)
	}
	return nil
}

func (ts *TransactionService) lockTransaction(tx *sql.Tx, transactionID string) (*models.Transaction, error) {
	txn := &models.Transaction{}
	err := tx.QueryRow(`
		SELECT id, player_id, type, amount, status, COALESCE(payment_method_id::text, ''), COALESCE(description, ''), is_flagged, COALESCE(flag_reason, ''), balance_before, balance_after, created_at
		FROM transactions WHERE id = $1 FOR UPDATE`, transactionID).
		Scan(&txn.ID, &txn.PlayerID, &txn.Type, &txn.Amount, &txn.Status, &txn.PaymentMethodID,
			&txn.Description, &txn.IsFlagged, &txn.FlagReason, &txn.BalanceBefore, &txn.BalanceAfter, &txn.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: transaction %s", ErrNotFound, transactionID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading transaction: %w", err)
	}
	return txn, nil
}

// Read paths

const transactionColumns = `id, player_id, type, amount, status, COALESCE(payment_method_id::text, ''), COALESCE(description, ''), is_flagged, COALESCE(flag_reason, ''), balance_before, balance_after, COALESCE(approved_by::text, ''), approved_at, COALESCE(rejection_reason, ''), completed_at, created_at`

func scanTransaction(row interface{ Scan(...any) error }) (*models.Transaction, error) {
	txn := &models.Transaction{}
	var approvedAt, completedAt sql.NullTime
	err := row.Scan(&txn.ID, &txn.PlayerID, &txn.Type, &txn.Amount, &txn.Status,
		&txn.PaymentMethodID, &txn.Description, &txn.IsFlagged, &txn.FlagReason,
		&txn.BalanceBefore, &txn.BalanceAfter, &txn.ApprovedByID,
		&approvedAt, &txn.RejectionReason, &completedAt, &txn.CreatedAt)
	if err != nil {
		return nil, err
	}
	if approvedAt.Valid {
		txn.ApprovedAt = &approvedAt.Time
	}
	if completedAt.Valid {
		txn.CompletedAt = &completedAt.Time
	}
	return txn, nil
}

// GetByID fetches a single transaction.
func (ts *TransactionService) GetByID(ctx context.Context, transactionID string) (*models.Transaction, error) {
	row := ts.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, transactionID)
	txn, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: transaction %s", ErrNotFound, transactionID)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching transaction: %w", err)
	}
	return txn, nil
}

// ListByPlayer returns the player's transactions, most recent first.
func (ts *TransactionService) ListByPlayer(ctx context.Context, playerID string, limit int) ([]models.Transaction, error) {
	return ts.list(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE player_id = $1 ORDER BY created_at DESC LIMIT $2`,
		playerID, limit)
}

// ListPending returns all pending transactions, oldest first, for the
// operator queue.
func (ts *TransactionService) ListPending(ctx context.Context) ([]models.Transaction, error) {
	return ts.list(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE status = $1 ORDER BY created_at ASC`,
		models.StatusPending)
}

// ListFlagged returns transactions flagged for review, most recent first.
func (ts *TransactionService) ListFlagged(ctx context.Context) ([]models.Transaction, error) {
	return ts.list(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE is_flagged = TRUE ORDER BY created_at DESC`)
}

func (ts *TransactionService) list(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	rows, err := ts.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}
	return transactions, rows.Err()
}

// HTTP handlers

// CreateDeposit handles deposit creation
// @Summary Create a deposit
// @Description Create a deposit for the authenticated player; deposits below the auto-completion threshold settle immediately
// @Tags transactions
// @Accept json
// @Produce json
// @Param deposit body CreateTransactionRequest true "Deposit data"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /transactions/deposit [post]
func (ts *TransactionService) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	playerID, ok := r.Context().Value("userID").(string)
	if !ok || playerID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	req, ok := ts.decodeCreateRequest(w, r)
	if !ok {
		return
	}

	txn, err := ts.Deposit(r.Context(), playerID, *req, clientIP(r))
	if err != nil {
		log.Printf("[TRANSACTION] Deposit failed for player %s: %v", playerID, err)
		WriteEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(txn)
}

// CreateWithdrawal handles withdrawal creation
// @Summary Create a withdrawal
// @Description Create a withdrawal request for the authenticated player; always requires operator approval
// @Tags transactions
// @Accept json
// @Produce json
// @Param withdrawal body CreateTransactionRequest true "Withdrawal data"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /transactions/withdraw [post]
func (ts *TransactionService) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	playerID, ok := r.Context().Value("userID").(string)
	if !ok || playerID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	req, ok := ts.decodeCreateRequest(w, r)
	if !ok {
		return
	}

	txn, err := ts.Withdraw(r.Context(), playerID, *req, clientIP(r))
	if err != nil {
		log.Printf("[TRANSACTION] Withdrawal failed for player %s: %v", playerID, err)
		WriteEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(txn)
}

// ApproveTransaction handles operator approval
// @Summary Approve a pending transaction
// @Description Approve a pending transaction, applying its balance change
// @Tags transactions
// @Accept json
// @Produce json
// @Param txId path string true "Transaction ID"
// @Param approval body ApproveTransactionRequest false "Optional operator notes"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /transactions/{txId}/approve [post]
func (ts *TransactionService) ApproveTransaction(w http.ResponseWriter, r *http.Request) {
	operatorID, ok := r.Context().Value("userID").(string)
	if !ok || operatorID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}
	transactionID := chi.URLParam(r, "txId")

	var req ApproveTransactionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
			return
		}
		if err := ts.validator.ValidateStruct(&req); err != nil {
			SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
			return
		}
	}

	txn, err := ts.Approve(r.Context(), transactionID, operatorID, req.Notes)
	if err != nil {
		log.Printf("[TRANSACTION] Approval of %s failed: %v", transactionID, err)
		WriteEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(txn)
}

// RejectTransaction handles operator rejection
// @Summary Reject a pending transaction
// @Description Reject a pending transaction with a mandatory reason; the ledger is never touched
// @Tags transactions
// @Accept json
// @Produce json
// @Param txId path string true "Transaction ID"
// @Param rejection body RejectTransactionRequest true "Rejection reason"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /transactions/{txId}/reject [post]
func (ts *TransactionService) RejectTransaction(w http.ResponseWriter, r *http.Request) {
	operatorID, ok := r.Context().Value("userID").(string)
	if !ok || operatorID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}
	transactionID := chi.URLParam(r, "txId")

	var req RejectTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}
	if err := ts.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	txn, err := ts.Reject(r.Context(), transactionID, operatorID, req.Reason)
	if err != nil {
		log.Printf("[TRANSACTION] Rejection of %s failed: %v", transactionID, err)
		WriteEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(txn)
}

// GetTransaction retrieves a specific transaction
// @Summary Get transaction by ID
// @Tags transactions
// @Produce json
// @Param txId path string true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{txId} [get]
func (ts *TransactionService) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "txId")

	txn, err := ts.GetByID(r.Context(), transactionID)
	if err != nil {
		WriteEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(txn)
}

// ListMyTransactions retrieves the authenticated player's transactions
// @Summary List my transactions
// @Tags transactions
// @Produce json
// @Param limit query int false "Number of transactions to return (default: 50, max: 100)"
// @Success 200 {object} object{transactions=[]models.Transaction,count=int}
// @Router /transactions/my [get]
func (ts *TransactionService) ListMyTransactions(w http.ResponseWriter, r *http.Request) {
	playerID, ok := r.Context().Value("userID").(string)
	if !ok || playerID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if _, err := fmt.Sscanf(limitStr, "%d", &limit); err != nil || limit < 1 || limit > 100 {
			SendErrorResponse(w, "Invalid limit", http.StatusBadRequest, nil)
			return
		}
	}

	transactions, err := ts.ListByPlayer(r.Context(), playerID, limit)
	if err != nil {
		SendErrorResponse(w, "Failed to fetch transactions", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// ListPendingTransactions retrieves the operator approval queue
// @Summary List pending transactions
// @Description Pending transactions oldest-first for the operator queue
// @Tags transactions
// @Produce json
// @Success 200 {object} object{transactions=[]models.Transaction,count=int}
// @Router /transactions/pending [get]
func (ts *TransactionService) ListPendingTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := ts.ListPending(r.Context())
	if err != nil {
		SendErrorResponse(w, "Failed to fetch transactions", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// ListFlaggedTransactions retrieves transactions flagged for review
// @Summary List flagged transactions
// @Tags transactions
// @Produce json
// @Success 200 {object} object{transactions=[]models.Transaction,count=int}
// @Router /transactions/flagged [get]
func (ts *TransactionService) ListFlaggedTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := ts.ListFlagged(r.Context())
	if err != nil {
		SendErrorResponse(w, "Failed to fetch transactions", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

func (ts *TransactionService) decodeCreateRequest(w http.ResponseWriter, r *http.Request) (*CreateTransactionRequest, bool) {
	maxBytes := 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req CreateTransactionRequest
	if err := dec.Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return nil, false
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return nil, false
	}

	if err := ts.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return nil, false
	}

	return &req, true
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
