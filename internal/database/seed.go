package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/playvault/backend/internal/models"
)

type seedMethod struct {
	name                  string
	methodType            string
	minAmount             int64
	maxAmount             int64
	feePercentage         float64
	fixedFee              int64
	processingTimeMinutes int
}

var seedMethods = []seedMethod{
	{"Visa/Mastercard", models.MethodCreditCard, 10, 50000, 2.5, 0, 0},
	{"Bank Transfer", models.MethodBankTransfer, 50, 100000, 0, 5, 1440},
	{"PayPal", models.MethodPayPal, 10, 10000, 3.0, 0, 0},
	{"Skrill", models.MethodSkrill, 10, 10000, 1.9, 0, 0},
	{"Neteller", models.MethodNeteller, 10, 10000, 2.0, 0, 0},
}

// Seed inserts the payment method catalog and an initial operator account.
// It is a no-op when the catalog is already populated.
func Seed(db *sql.DB, operatorPasswordHash string) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM payment_methods`).Scan(&count); err != nil {
		return fmt.Errorf("seed check failed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, m := range seedMethods {
		_, err := tx.Exec(`
			INSERT INTO payment_methods
			(id, name, type, is_active, min_amount, max_amount, fee_percentage, fixed_fee, processing_time_minutes, created_at)
			VALUES ($1, $2, $3, TRUE, $4, $5, $6, $7, $8, NOW())`,
			uuid.New().String(), m.name, m.methodType, m.minAmount, m.maxAmount,
			m.feePercentage, m.fixedFee, m.processingTimeMinutes)
		if err != nil {
			return fmt.Errorf("seeding payment method %q: %w", m.name, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO players
		(id, email, username, password_hash, first_name, last_name, role, status, balance, email_verified, kyc_verified, version, created_at, updated_at)
		VALUES ($1, 'operator@playvault.io', 'operator', $2, 'Initial', 'Operator', $3, $4, 0, TRUE, TRUE, 1, NOW(), NOW())`,
		uuid.New().String(), operatorPasswordHash, models.RoleOperator, models.AccountActive)
	if err != nil {
		return fmt.Errorf("seeding operator account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Println("Database seeded with payment methods and operator account")
	return nil
}
