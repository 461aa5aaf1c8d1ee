package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/playvault/backend/internal/models"
)

const (
	testPlayerID = "11111111-1111-4111-8111-111111111111"
	testMethodID = "22222222-2222-4222-8222-222222222222"
	testTxnID    = "33333333-3333-4333-8333-333333333333"
	testOpID     = "44444444-4444-4444-8444-444444444444"
)

func newTestService(t *testing.T) (*TransactionService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	service := NewTransactionService(db, NewNotificationService(db), DefaultSuspicionPolicy())
	return service, mock, func() { db.Close() }
}

func expectPlayerLock(mock sqlmock.Sqlmock, balance int64, status string, kyc bool) {
	mock.ExpectQuery("SELECT id, status, balance, daily_deposit_limit, daily_withdrawal_limit, kyc_verified, version").
		WithArgs(testPlayerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "balance", "daily_deposit_limit", "daily_withdrawal_limit", "kyc_verified", "version"}).
			AddRow(testPlayerID, status, balance, 10000, 5000, kyc, 1))
}

func expectPaymentMethod(mock sqlmock.Sqlmock, active bool, min, max int64) {
	mock.ExpectQuery("SELECT id, name, is_active, min_amount, max_amount").
		WithArgs(testMethodID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active", "min_amount", "max_amount"}).
			AddRow(testMethodID, "Visa/Mastercard", active, min, max))
}

func expectDailySum(mock sqlmock.Sqlmock, txType string, total int64) {
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM transactions").
		WithArgs(testPlayerID, txType, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(total))
}

func expectEmptyWindow(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT type, amount, created_at FROM transactions").
		WithArgs(testPlayerID, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"type", "amount", "created_at"}))
}

func TestTransactionService_Deposit(t *testing.T) {
	service, mock, closeDB := newTestService(t)
	defer closeDB()

	req := CreateTransactionRequest{Amount: 50, PaymentMethodID: testMethodID}

	t.Run("small deposit auto-completes and credits balance", func(t *testing.T) {
		mock.ExpectBegin()
		expectPlayerLock(mock, 1000, models.AccountActive, false)
		expectPaymentMethod(mock, true, 10, 50000)
		expectDailySum(mock, models.TypeDeposit, 0)
		mock.ExpectExec("UPDATE players SET balance").
			WithArgs(int64(1050), testPlayerID, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO transactions").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO audit_logs").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		txn, err := service.Deposit(context.Background(), testPlayerID, req, "10.0.0.1")
		assert.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, txn.Status)
		assert.Equal(t, int64(1000), txn.BalanceBefore)
		assert.Equal(t, int64(1050), txn.BalanceAfter)
		assert.NotNil(t, txn.CompletedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("large deposit stays pending with unchanged balance", func(t *testing.T) {
		mock.ExpectBegin()
		expectPlayerLock(mock, 1000, models.AccountActive, false)
		expectPaymentMethod(mock, true, 10, 50000)
		expectDailySum(mock, models.TypeDeposit, 0)
		mock.ExpectExec("INSERT INTO transactions").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO audit_logs").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		txn, err := service.Deposit(context.Background(), testPlayerID,
			CreateTransactionRequest{Amount: 500, PaymentMethodID: testMethodID}, "10.0.0.1")
		assert.NoError(t, err)
		assert.Equal(t, models.StatusPending, txn.Status)
		assert.Nil(t, txn.CompletedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("suspended account refused", func(t *testing.T) {
		mock.ExpectBegin()
		expectPlayerLock(mock, 1000, models.AccountSuspended, false)
		mock.ExpectRollback()

		_, err := service.Deposit(context.Background(), testPlayerID, req, "10.0.0.1")
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inactive payment method refused", func(t *testing.T) {
		mock.ExpectBegin()
		expectPlayerLock(mock, 1000, models.AccountActive, false)
		expectPaymentMethod(mock, false, 10, 50000)
		mock.ExpectRollback()

		_, err := service.Deposit(context.Background(), testPlayerID, req, "10.0.0.1")
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("amount outside method bounds refused", func(t *testing.T) {
		mock.ExpectBegin()
		expectPlayerLock(mock, 1000, models.AccountActive, false)
		expectPaymentMethod(mock, true, 100, 50000)
		mock.ExpectRollback()

		_, err := service.Deposit(context.Background(), testPlayerID, req, "10.0.0.1")
		assert.ErrorIs(t, err, ErrLimitExceeded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("daily deposit limit enforced over prior transactions", func(t *testing.T) {
		mock.ExpectBegin()
		expectPlayerLock(mock, 1000, models.AccountActive, false)
		expectPaymentMethod(mock, true, 10, 50000)
		expectDailySum(mock, models.TypeDeposit, 9960)
		mock.ExpectRollback()

		_, err := service.Deposit(context.Background(), testPlayerID, req, "10.0.0.1")
		assert.ErrorIs(t, err, ErrLimitExceeded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown player", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, status, balance, daily_deposit_limit, daily_withdrawal_limit, kyc_verified, version").
			WithArgs(testPlayerID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := service.Deposit(context.Background(), testPlayerID, req, "10.0.0.1")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionService_Withdraw(t *testing.T) {
	service, mock, closeDB := newTestService(t)
	defer closeDB()

	req := CreateTransactionRequest{Amount: 200, PaymentMethodID: testMethodID}

	t.Run("withdrawal stays pending and never touches the ledger", func(t *testing.T) {
		mock.ExpectBegin()
		expectPlayerLock(mock, 1000, models.AccountActive, true)
		expectPaymentMethod(mock, true, 10, 50000)
		expectDailySum(mock, models.TypeWithdrawal, 0)
		expectEmptyWindow(mock)
		mock.ExpectExec("INSERT INTO transactions").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO audit_logs").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		txn, err := service.Withdraw(context.Background(), testPlayerID, req, "10.0.0.1")
		assert.NoError(t, err)
		assert.Equal(t, models.StatusPending, txn.Status)
		assert.False(t, txn.IsFlagged)
		assert.Equal(t, int64(1000), txn.BalanceBefore)
		assert.Equal(t, int64(800), txn.BalanceAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("kyc required", func(t *testing.T) {
		mock.ExpectBegin()
		expectPlayerLock(mock, 1000, models.AccountActive, false)
		mock.ExpectRollback()

		_, err := service.Withdraw(context.Background(), testPlayerID, req, "10.0.0.1")
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Contains(t, err.Error(), "KYC")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insufficient balance", func(t *testing.T) {
		mock.ExpectBegin()
		expectPlayerLock(mock, 100, models.AccountActive, true)
		expectPaymentMethod(mock, true, 10, 50000)
		mock.ExpectRollback()

		_, err := service.Withdraw(context.Background(), testPlayerID, req, "10.0.0.1")
		assert.ErrorIs(t, err, ErrLimitExceeded)
		assert.Contains(t, err.Error(), "insufficient balance")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("daily withdrawal limit enforced", func(t *testing.T) {
		mock.ExpectBegin()
		expectPlayerLock(mock, 10000, models.AccountActive, true)
		expectPaymentMethod(mock, true, 10, 50000)
		expectDailySum(mock, models.TypeWithdrawal, 4900)
		mock.ExpectRollback()

		_, err := service.Withdraw(context.Background(), testPlayerID, req, "10.0.0.1")
		assert.ErrorIs(t, err, ErrLimitExceeded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("busy window flags but does not block", func(t *testing.T) {
		mock.ExpectBegin()
		expectPlayerLock(mock, 1000, models.AccountActive, true)
		expectPaymentMethod(mock, true, 10, 50000)
		expectDailySum(mock, models.TypeWithdrawal, 0)

		rows := sqlmock.NewRows([]string{"type", "amount", "created_at"})
		for i := 0; i < 5; i++ {
			rows.AddRow(models.TypeDeposit, 20, time.Now().Add(-time.Hour))
		}
		mock.ExpectQuery("SELECT type, amount, created_at FROM transactions").
			WithArgs(testPlayerID, sqlmock.AnyArg()).
			WillReturnRows(rows)

		mock.ExpectExec("INSERT INTO transactions").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO audit_logs").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		txn, err := service.Withdraw(context.Background(), testPlayerID, req, "10.0.0.1")
		assert.NoError(t, err)
		assert.True(t, txn.IsFlagged)
		assert.Equal(t, FlagReasonUnusualPattern, txn.FlagReason)
		assert.Equal(t, models.StatusPending, txn.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func expectTransactionLock(mock sqlmock.Sqlmock, txType, status string, amount int64, description string) {
	mock.ExpectQuery("FROM transactions WHERE id = \\$1 FOR UPDATE").
		WithArgs(testTxnID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "player_id", "type", "amount", "status", "payment_method_id", "description", "is_flagged", "flag_reason", "balance_before", "balance_after", "created_at"}).
			AddRow(testTxnID, testPlayerID, txType, amount, status, testMethodID, description, false, "", 1000, 1000+amount, time.Now()))
}

func TestTransactionService_Approve(t *testing.T) {
	service, mock, closeDB := newTestService(t)
	defer closeDB()

	t.Run("approving a deposit credits the player", func(t *testing.T) {
		mock.ExpectBegin()
		expectTransactionLock(mock, models.TypeDeposit, models.StatusPending, 500, "")
		expectPlayerLock(mock, 1000, models.AccountActive, true)
		mock.ExpectExec("UPDATE players SET balance").
			WithArgs(int64(1500), testPlayerID, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE transactions").
			WithArgs(models.StatusCompleted, sqlmock.AnyArg(), testOpID, sqlmock.AnyArg(), int64(1500), "", testTxnID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO audit_logs").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO notifications").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		txn, err := service.Approve(context.Background(), testTxnID, testOpID, "")
		assert.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, txn.Status)
		assert.Equal(t, int64(1500), txn.BalanceAfter)
		assert.Equal(t, testOpID, txn.ApprovedByID)
		assert.NotNil(t, txn.CompletedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("approving a withdrawal debits the player", func(t *testing.T) {
		mock.ExpectBegin()
		expectTransactionLock(mock, models.TypeWithdrawal, models.StatusPending, 300, "")
		expectPlayerLock(mock, 1000, models.AccountActive, true)
		mock.ExpectExec("UPDATE players SET balance").
			WithArgs(int64(700), testPlayerID, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE transactions").
			WithArgs(models.StatusCompleted, sqlmock.AnyArg(), testOpID, sqlmock.AnyArg(), int64(700), "", testTxnID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO audit_logs").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO notifications").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		txn, err := service.Approve(context.Background(), testTxnID, testOpID, "")
		assert.NoError(t, err)
		assert.Equal(t, int64(700), txn.BalanceAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("withdrawal approval fails when balance drifted below amount", func(t *testing.T) {
		mock.ExpectBegin()
		expectTransactionLock(mock, models.TypeWithdrawal, models.StatusPending, 300, "")
		expectPlayerLock(mock, 100, models.AccountActive, true)
		mock.ExpectRollback()

		_, err := service.Approve(context.Background(), testTxnID, testOpID, "")
		assert.ErrorIs(t, err, ErrLimitExceeded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("operator notes are appended to the description", func(t *testing.T) {
		mock.ExpectBegin()
		expectTransactionLock(mock, models.TypeDeposit, models.StatusPending, 500, "Initial note")
		expectPlayerLock(mock, 1000, models.AccountActive, true)
		mock.ExpectExec("UPDATE players SET balance").
			WithArgs(int64(1500), testPlayerID, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE transactions").
			WithArgs(models.StatusCompleted, sqlmock.AnyArg(), testOpID, sqlmock.AnyArg(), int64(1500),
				"Initial note [Operator notes: looks fine]", testTxnID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO audit_logs").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO notifications").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		txn, err := service.Approve(context.Background(), testTxnID, testOpID, "looks fine")
		assert.NoError(t, err)
		assert.Equal(t, "Initial note [Operator notes: looks fine]", txn.Description)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("completed transaction cannot be approved again", func(t *testing.T) {
		mock.ExpectBegin()
		expectTransactionLock(mock, models.TypeDeposit, models.StatusCompleted, 500, "")
		mock.ExpectRollback()

		_, err := service.Approve(context.Background(), testTxnID, testOpID, "")
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("FROM transactions WHERE id = \\$1 FOR UPDATE").
			WithArgs(testTxnID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := service.Approve(context.Background(), testTxnID, testOpID, "")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionService_Reject(t *testing.T) {
	service, mock, closeDB := newTestService(t)
	defer closeDB()

	t.Run("rejection records reason and never touches the ledger", func(t *testing.T) {
		mock.ExpectBegin()
		expectTransactionLock(mock, models.TypeWithdrawal, models.StatusPending, 300, "")
		mock.ExpectExec("UPDATE transactions").
			WithArgs(models.StatusRejected, testOpID, sqlmock.AnyArg(), "Document mismatch", testTxnID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO audit_logs").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO notifications").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		txn, err := service.Reject(context.Background(), testTxnID, testOpID, "Document mismatch")
		assert.NoError(t, err)
		assert.Equal(t, models.StatusRejected, txn.Status)
		assert.Equal(t, "Document mismatch", txn.RejectionReason)
		assert.Equal(t, testOpID, txn.ApprovedByID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejected transaction cannot be rejected again", func(t *testing.T) {
		mock.ExpectBegin()
		expectTransactionLock(mock, models.TypeWithdrawal, models.StatusRejected, 300, "")
		mock.ExpectRollback()

		_, err := service.Reject(context.Background(), testTxnID, testOpID, "again")
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionService_updatePlayerBalance(t *testing.T) {
	service, mock, closeDB := newTestService(t)
	defer closeDB()

	t.Run("optimistic lock failure", func(t *testing.T) {
		mock.ExpectBegin()
		tx, _ := service.db.Begin()

		mock.ExpectExec("UPDATE players SET balance").
			WithArgs(int64(900), testPlayerID, 1).
			WillReturnResult(sqlmock.NewResult(0, 0)) // concurrent writer won

		err := service.updatePlayerBalance(tx, testPlayerID, 900, 1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "optimistic lock failed")
	})
}
