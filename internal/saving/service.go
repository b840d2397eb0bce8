package saving

import (
	"errors"
	"time"

	"lifetrack-backend/internal/models"
)

var ErrInsufficientBalance = errors.New("insufficient balance")
var ErrInvalidAmount = errors.New("amount must be positive")

// BuildLedgerEntry derives the ledger row for a transaction against the
// account's current balance. Deposits and interest add, withdrawals
// subtract; a withdrawal past the balance is rejected. The returned row
// carries the before/after snapshot that gets persisted with it.
func BuildLedgerEntry(s *models.Saving, txType models.SavingTransactionType, amount float64, date time.Time, description string) (*models.SavingTransaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	before := s.CurrentBalance
	var after float64
	switch txType {
	case models.SavingTxDeposit, models.SavingTxInterest:
		after = before + amount
	case models.SavingTxWithdrawal:
		if amount > before {
			return nil, ErrInsufficientBalance
		}
		after = before - amount
	default:
		return nil, errors.New("transaction type must be deposit, withdrawal or interest")
	}

	return &models.SavingTransaction{
		SavingID:        s.ID,
		TransactionType: txType,
		Amount:          amount,
		TransactionDate: date,
		BalanceBefore:   before,
		BalanceAfter:    after,
		Description:     description,
	}, nil
}

// ReverseEffect is the balance delta that undoes a ledger row.
func ReverseEffect(tx *models.SavingTransaction) float64 {
	if tx.TransactionType == models.SavingTxWithdrawal {
		return tx.Amount
	}
	return -tx.Amount
}

// GoalProgress measures the balance against the account's target.
func GoalProgress(s *models.Saving) float64 {
	if s.TargetAmount == nil || *s.TargetAmount <= 0 {
		return 0
	}
	pct := s.CurrentBalance / *s.TargetAmount * 100
	if pct > 100 {
		return 100
	}
	return pct
}
