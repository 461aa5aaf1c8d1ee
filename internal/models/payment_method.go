package models

import "time"

// Payment method types
const (
	MethodCreditCard   = "CREDIT_CARD"
	MethodBankTransfer = "BANK_TRANSFER"
	MethodPayPal       = "PAYPAL"
	MethodSkrill       = "SKRILL"
	MethodNeteller     = "NETELLER"
	MethodCrypto       = "CRYPTOCURRENCY"
)

// PaymentMethod is static reference data consulted during transaction
// validation. Min/Max bounds are inclusive.
type PaymentMethod struct {
	ID                    string    `json:"id" db:"id"`
	Name                  string    `json:"name" db:"name"`
	Type                  string    `json:"type" db:"type"`
	IsActive              bool      `json:"isActive" db:"is_active"`
	MinAmount             int64     `json:"minAmount" db:"min_amount"`
	MaxAmount             int64     `json:"maxAmount" db:"max_amount"`
	FeePercentage         float64   `json:"feePercentage" db:"fee_percentage"`
	FixedFee              int64     `json:"fixedFee" db:"fixed_fee"`
	ProcessingTimeMinutes int       `json:"processingTimeMinutes" db:"processing_time_minutes"`
	CreatedAt             time.Time `json:"createdAt" db:"created_at"`
}
