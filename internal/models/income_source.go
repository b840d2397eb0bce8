package models

import "time"

type IncomeSource struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PersonID uint   `gorm:"index;not null" json:"person_id"`
	Person   Person `json:"-"`

	Name         string    `gorm:"size:200;not null" json:"name"`
	SourceType   string    `gorm:"size:50;index" json:"source_type"` // freelance, gift, bonus, ...
	Amount       float64   `gorm:"not null" json:"amount"`
	ReceivedDate time.Time `gorm:"type:date;index;not null" json:"received_date"`
	Frequency    string    `gorm:"size:20" json:"frequency"` // one-time, monthly, yearly
	Description  string    `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
