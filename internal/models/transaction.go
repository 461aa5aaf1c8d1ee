package models

import "time"

// Transaction types
const (
	TypeDeposit    = "DEPOSIT"
	TypeWithdrawal = "WITHDRAWAL"
)

// Transaction status lifecycle. The engine only ever moves a transaction
// PENDING -> COMPLETED or PENDING -> REJECTED; the remaining states exist for
// records imported from external processors.
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
	StatusCancelled  = "CANCELLED"
	StatusRejected   = "REJECTED"
)

// Transaction represents a deposit or withdrawal against a player account.
// BalanceAfter holds the projected balance while the transaction is PENDING
// and is overwritten with the settled balance at completion.
type Transaction struct {
	ID              string     `json:"id" db:"id"`
	PlayerID        string     `json:"playerId" db:"player_id"`
	Type            string     `json:"type" db:"type"`
	Amount          int64      `json:"amount" db:"amount"`
	Status          string     `json:"status" db:"status"`
	PaymentMethodID string     `json:"paymentMethodId" db:"payment_method_id"`
	Description     string     `json:"description,omitempty" db:"description"`
	IPAddress       string     `json:"-" db:"ip_address"`
	IsFlagged       bool       `json:"isFlagged" db:"is_flagged"`
	FlagReason      string     `json:"flagReason,omitempty" db:"flag_reason"`
	BalanceBefore   int64      `json:"balanceBefore" db:"balance_before"`
	BalanceAfter    int64      `json:"balanceAfter" db:"balance_after"`
	ApprovedByID    string     `json:"approvedById,omitempty" db:"approved_by"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty" db:"approved_at"`
	RejectionReason string     `json:"rejectionReason,omitempty" db:"rejection_reason"`
	CompletedAt     *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
}
