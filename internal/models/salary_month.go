package models

import "time"

// SalaryMonth is one calendar month's salary instance for a Job.
// The (job_id, month) unique index is what makes concurrent generation
// safe; application-level existence checks alone are not enough.
type SalaryMonth struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	JobID    uint `gorm:"uniqueIndex:idx_salary_months_job_month;not null" json:"job_id"`
	Job      Job  `json:"-"`
	PersonID uint `gorm:"index;not null" json:"person_id"` // denormalized from Job

	Month string `gorm:"size:7;uniqueIndex:idx_salary_months_job_month;not null" json:"month"` // "YYYY-MM"

	SalaryAmount float64 `gorm:"default:0" json:"salary_amount"` // gross
	Deductions   float64 `gorm:"default:0" json:"deductions"`
	NetAmount    float64 `gorm:"default:0" json:"net_amount"`

	// derived: remaining_amount = net_amount - total_spent
	TotalSpent      float64 `gorm:"default:0" json:"total_spent"`
	RemainingAmount float64 `gorm:"default:0" json:"remaining_amount"`

	ReceivedDate *time.Time `gorm:"type:date" json:"received_date"`
	Notes        string     `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
