package models

import "time"

// Account status values
const (
	AccountActive              = "ACTIVE"
	AccountSuspended           = "SUSPENDED"
	AccountClosed              = "CLOSED"
	AccountPendingVerification = "PENDING_VERIFICATION"
)

// User roles
const (
	RolePlayer            = "PLAYER"
	RoleOperator          = "OPERATOR"
	RoleAdministrator     = "ADMINISTRATOR"
	RoleComplianceOfficer = "COMPLIANCE_OFFICER"
)

// Player represents a player account and its ledger (balance + daily limits).
// Amounts are whole currency units stored as int64.
type Player struct {
	ID                   string     `json:"id" db:"id"`
	Email                string     `json:"email" db:"email"`
	Username             string     `json:"username" db:"username"`
	PasswordHash         string     `json:"-" db:"password_hash"`
	FirstName            string     `json:"firstName" db:"first_name"`
	LastName             string     `json:"lastName" db:"last_name"`
	PhoneNumber          string     `json:"phoneNumber,omitempty" db:"phone_number"`
	Role                 string     `json:"role" db:"role"`
	Status               string     `json:"status" db:"status"`
	Balance              int64      `json:"balance" db:"balance"`
	DailyDepositLimit    int64      `json:"dailyDepositLimit" db:"daily_deposit_limit"`
	DailyWithdrawalLimit int64      `json:"dailyWithdrawalLimit" db:"daily_withdrawal_limit"`
	EmailVerified        bool       `json:"emailVerified" db:"email_verified"`
	KycVerified          bool       `json:"kycVerified" db:"kyc_verified"`
	Version              int        `json:"-" db:"version"` // for optimistic locking
	LastLoginAt          *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt            time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time  `json:"updatedAt" db:"updated_at"`
}
