package models

import "time"

type SavingTransactionType string

const (
	SavingTxDeposit    SavingTransactionType = "deposit"
	SavingTxWithdrawal SavingTransactionType = "withdrawal"
	SavingTxInterest   SavingTransactionType = "interest"
)

type Saving struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PersonID uint   `gorm:"index;not null" json:"person_id"`
	Person   Person `json:"-"`

	AccountName string `gorm:"size:200;not null" json:"account_name"`
	AccountType string `gorm:"size:50;index" json:"account_type"` // bank, cash, deposit, investment

	InitialAmount  float64  `gorm:"default:0" json:"initial_amount"`
	CurrentBalance float64  `gorm:"default:0" json:"current_balance"`
	TargetAmount   *float64 `json:"target_amount"`
	InterestRate   *float64 `json:"interest_rate"`
	Currency       string   `gorm:"size:10;default:UZS" json:"currency"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Transactions []SavingTransaction `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// SavingTransaction is an append-only ledger row. balance_before/after are
// snapshotted at write time and never recomputed from the ledger.
type SavingTransaction struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	SavingID uint   `gorm:"index;not null" json:"saving_id"`
	Saving   Saving `json:"-"`

	TransactionType SavingTransactionType `gorm:"size:20;not null" json:"transaction_type"`
	Amount          float64               `gorm:"not null" json:"amount"`
	TransactionDate time.Time             `gorm:"type:date;index;not null" json:"transaction_date"`

	BalanceBefore float64 `gorm:"not null" json:"balance_before"`
	BalanceAfter  float64 `gorm:"not null" json:"balance_after"`

	Description string `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}
