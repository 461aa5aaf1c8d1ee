package services

import (
	"github.com/spf13/viper"

	"github.com/playvault/backend/internal/models"
)

// FlagReasonUnusualPattern is the fixed reason attached to flagged withdrawals.
const FlagReasonUnusualPattern = "Unusual withdrawal pattern detected. Manual review required."

// SuspicionPolicy evaluates a candidate withdrawal against the player's
// transaction history from the trailing 24-hour window. A flagged result is
// advisory: it marks the transaction for operator attention and never blocks
// creation. The policy runs once, at creation time.
type SuspicionPolicy func(window []models.Transaction, amount int64) (flagged bool, reason string)

// DefaultSuspicionPolicy returns the stock heuristic:
//   - the window already holds windowCount or more transactions of any type
//   - the candidate amount alone exceeds singleAmount
//   - withdrawals in the window plus the candidate exceed windowTotal
func DefaultSuspicionPolicy() SuspicionPolicy {
	viper.SetDefault("engine.flag_window_count", 5)
	viper.SetDefault("engine.flag_single_amount", 10000)
	viper.SetDefault("engine.flag_window_total", 20000)

	windowCount := viper.GetInt("engine.flag_window_count")
	singleAmount := viper.GetInt64("engine.flag_single_amount")
	windowTotal := viper.GetInt64("engine.flag_window_total")

	return func(window []models.Transaction, amount int64) (bool, string) {
		if len(window) >= windowCount {
			return true, FlagReasonUnusualPattern
		}

		if amount > singleAmount {
			return true, FlagReasonUnusualPattern
		}

		var withdrawn int64
		for _, t := range window {
			if t.Type == models.TypeWithdrawal {
				withdrawn += t.Amount
			}
		}
		if withdrawn+amount > windowTotal {
			return true, FlagReasonUnusualPattern
		}

		return false, ""
	}
}
