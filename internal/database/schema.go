package database

import (
	"database/sql"
	"fmt"
	"log"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		phone_number TEXT,
		role TEXT NOT NULL DEFAULT 'PLAYER',
		status TEXT NOT NULL DEFAULT 'PENDING_VERIFICATION',
		balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
		daily_deposit_limit BIGINT NOT NULL DEFAULT 10000,
		daily_withdrawal_limit BIGINT NOT NULL DEFAULT 5000,
		email_verified BOOLEAN NOT NULL DEFAULT FALSE,
		kyc_verified BOOLEAN NOT NULL DEFAULT FALSE,
		version INTEGER NOT NULL DEFAULT 1,
		last_login_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS payment_methods (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		min_amount BIGINT NOT NULL DEFAULT 10,
		max_amount BIGINT NOT NULL DEFAULT 100000,
		fee_percentage DOUBLE PRECISION NOT NULL DEFAULT 0,
		fixed_fee BIGINT NOT NULL DEFAULT 0,
		processing_time_minutes INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY,
		player_id UUID NOT NULL REFERENCES players(id),
		type TEXT NOT NULL,
		amount BIGINT NOT NULL CHECK (amount > 0),
		status TEXT NOT NULL DEFAULT 'PENDING',
		payment_method_id UUID REFERENCES payment_methods(id),
		description TEXT,
		ip_address TEXT,
		is_flagged BOOLEAN NOT NULL DEFAULT FALSE,
		flag_reason TEXT,
		balance_before BIGINT NOT NULL,
		balance_after BIGINT NOT NULL,
		approved_by UUID REFERENCES players(id),
		approved_at TIMESTAMPTZ,
		rejection_reason TEXT,
		completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_player_created
		ON transactions (player_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_status
		ON transactions (status) WHERE status = 'PENDING'`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id UUID PRIMARY KEY,
		user_id UUID,
		action TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id UUID,
		ip_address TEXT,
		details TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES players(id),
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		read_at TIMESTAMPTZ,
		related_entity_type TEXT,
		related_entity_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates all tables and indexes if they do not exist yet.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}
	log.Println("Database schema ensured")
	return nil
}
