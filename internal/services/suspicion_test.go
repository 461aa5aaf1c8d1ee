package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/playvault/backend/internal/models"
)

func windowOf(entries ...models.Transaction) []models.Transaction {
	return entries
}

func txnOf(txType string, amount int64) models.Transaction {
	return models.Transaction{Type: txType, Amount: amount, CreatedAt: time.Now().Add(-time.Hour)}
}

func TestDefaultSuspicionPolicy(t *testing.T) {
	policy := DefaultSuspicionPolicy()

	t.Run("quiet history passes", func(t *testing.T) {
		flagged, reason := policy(windowOf(txnOf(models.TypeDeposit, 100)), 500)
		assert.False(t, flagged)
		assert.Empty(t, reason)
	})

	t.Run("five or more recent transactions flags", func(t *testing.T) {
		window := windowOf(
			txnOf(models.TypeDeposit, 10),
			txnOf(models.TypeDeposit, 10),
			txnOf(models.TypeWithdrawal, 10),
			txnOf(models.TypeDeposit, 10),
			txnOf(models.TypeWithdrawal, 10),
		)
		flagged, reason := policy(window, 50)
		assert.True(t, flagged)
		assert.Equal(t, FlagReasonUnusualPattern, reason)
	})

	t.Run("four recent transactions does not flag on count", func(t *testing.T) {
		window := windowOf(
			txnOf(models.TypeDeposit, 10),
			txnOf(models.TypeDeposit, 10),
			txnOf(models.TypeWithdrawal, 10),
			txnOf(models.TypeDeposit, 10),
		)
		flagged, _ := policy(window, 50)
		assert.False(t, flagged)
	})

	t.Run("single large amount flags", func(t *testing.T) {
		flagged, reason := policy(windowOf(), 10001)
		assert.True(t, flagged)
		assert.Equal(t, FlagReasonUnusualPattern, reason)
	})

	t.Run("amount exactly at the single threshold passes", func(t *testing.T) {
		flagged, _ := policy(windowOf(), 10000)
		assert.False(t, flagged)
	})

	t.Run("cumulative withdrawals over the window total flags", func(t *testing.T) {
		window := windowOf(
			txnOf(models.TypeWithdrawal, 9000),
			txnOf(models.TypeWithdrawal, 9000),
		)
		flagged, reason := policy(window, 3000)
		assert.True(t, flagged)
		assert.Equal(t, FlagReasonUnusualPattern, reason)
	})

	t.Run("deposits do not count toward the withdrawal total", func(t *testing.T) {
		window := windowOf(
			txnOf(models.TypeDeposit, 9000),
			txnOf(models.TypeDeposit, 9000),
		)
		flagged, _ := policy(window, 3000)
		assert.False(t, flagged)
	})
}
