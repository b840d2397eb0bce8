package models

import "time"

type BudgetPeriodType string

const (
	BudgetPeriodMonthly BudgetPeriodType = "monthly"
	BudgetPeriodWeekly  BudgetPeriodType = "weekly"
)

type Budget struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PersonID uint   `gorm:"uniqueIndex:idx_budgets_person_period_category;not null" json:"person_id"`
	Person   Person `json:"-"`

	Period     string           `gorm:"size:10;uniqueIndex:idx_budgets_person_period_category;not null" json:"period"` // "YYYY-MM" or "YYYY-WW"
	PeriodType BudgetPeriodType `gorm:"size:10;default:monthly" json:"period_type"`
	Category   string           `gorm:"size:50;uniqueIndex:idx_budgets_person_period_category;not null" json:"category"`

	AllocatedAmount float64 `gorm:"not null" json:"allocated_amount"`

	// derived: remaining_amount = allocated_amount - spent_amount
	SpentAmount     float64 `gorm:"default:0" json:"spent_amount"`
	RemainingAmount float64 `gorm:"default:0" json:"remaining_amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
