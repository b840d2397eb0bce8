package models

import "time"

type Job struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PersonID uint   `gorm:"index;not null" json:"person_id"`
	Person   Person `json:"-"`

	CompanyName string `gorm:"size:200;not null" json:"company_name"`
	Position    string `gorm:"size:200" json:"position"`

	// fixed gross salary per calendar month
	Salary   float64 `gorm:"not null" json:"salary"`
	Currency string  `gorm:"size:10;default:UZS" json:"currency"`

	StartDate time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`

	Active  bool `gorm:"default:true" json:"active"`
	Deleted bool `gorm:"index;default:false" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SalaryMonths []SalaryMonth `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
