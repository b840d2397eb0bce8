package saving

import (
	"testing"
	"time"

	"lifetrack-backend/internal/models"
)

func TestBuildLedgerEntry(t *testing.T) {
	day := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		balance   float64
		txType    models.SavingTransactionType
		amount    float64
		wantAfter float64
		wantErr   error
	}{
		{"deposit adds", 100, models.SavingTxDeposit, 50, 150, nil},
		{"interest adds", 100, models.SavingTxInterest, 2.5, 102.5, nil},
		{"withdrawal subtracts", 100, models.SavingTxWithdrawal, 40, 60, nil},
		{"withdrawal of full balance", 100, models.SavingTxWithdrawal, 100, 0, nil},
		{"withdrawal past balance", 100, models.SavingTxWithdrawal, 100.01, 0, ErrInsufficientBalance},
		{"zero amount", 100, models.SavingTxDeposit, 0, 0, ErrInvalidAmount},
		{"negative amount", 100, models.SavingTxWithdrawal, -5, 0, ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &models.Saving{ID: 7, CurrentBalance: tt.balance}
			entry, err := BuildLedgerEntry(s, tt.txType, tt.amount, day, "test")

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if entry.BalanceBefore != tt.balance {
				t.Errorf("BalanceBefore = %v, want %v", entry.BalanceBefore, tt.balance)
			}
			if entry.BalanceAfter != tt.wantAfter {
				t.Errorf("BalanceAfter = %v, want %v", entry.BalanceAfter, tt.wantAfter)
			}
			if entry.SavingID != 7 {
				t.Errorf("SavingID = %v, want 7", entry.SavingID)
			}
		})
	}

	t.Run("unknown type rejected", func(t *testing.T) {
		s := &models.Saving{CurrentBalance: 100}
		if _, err := BuildLedgerEntry(s, "transfer", 10, day, ""); err == nil {
			t.Fatal("expected error for unknown transaction type")
		}
	})
}

func TestReverseEffect(t *testing.T) {
	tests := []struct {
		txType models.SavingTransactionType
		amount float64
		want   float64
	}{
		{models.SavingTxDeposit, 50, -50},
		{models.SavingTxInterest, 2.5, -2.5},
		{models.SavingTxWithdrawal, 40, 40},
	}
	for _, tt := range tests {
		tx := &models.SavingTransaction{TransactionType: tt.txType, Amount: tt.amount}
		if got := ReverseEffect(tx); got != tt.want {
			t.Errorf("ReverseEffect(%s, %v) = %v, want %v", tt.txType, tt.amount, got, tt.want)
		}
	}
}

func TestGoalProgress(t *testing.T) {
	target := 1000.0
	tests := []struct {
		name   string
		saving models.Saving
		want   float64
	}{
		{"no target", models.Saving{CurrentBalance: 500}, 0},
		{"halfway", models.Saving{CurrentBalance: 500, TargetAmount: &target}, 50},
		{"past target clamps", models.Saving{CurrentBalance: 1500, TargetAmount: &target}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GoalProgress(&tt.saving); got != tt.want {
				t.Errorf("GoalProgress = %v, want %v", got, tt.want)
			}
		})
	}
}
