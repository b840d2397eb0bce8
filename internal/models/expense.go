package models

import "time"

type Expense struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PersonID uint   `gorm:"index;not null" json:"person_id"`
	Person   Person `json:"-"`

	// optional link; any mutation of a linked expense re-sums its SalaryMonth
	SalaryMonthID *uint        `gorm:"index" json:"salary_month_id"`
	SalaryMonth   *SalaryMonth `json:"-"`

	Name        string    `gorm:"size:200;not null" json:"name"`
	Category    string    `gorm:"size:50;index" json:"category"`
	Date        time.Time `gorm:"type:date;index;not null" json:"date"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Description string    `gorm:"size:255" json:"description"`

	IsRecurring bool `gorm:"default:false" json:"is_recurring"`
	IsEssential bool `gorm:"default:false" json:"is_essential"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
