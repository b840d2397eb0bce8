package models

import "time"

type ProgressLog struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	GoalID uint `gorm:"index;not null" json:"goal_id"`
	Goal   Goal `json:"-"`

	LogDate     time.Time `gorm:"type:date;not null" json:"log_date"`
	ValueLogged *float64  `json:"value_logged"`
	Notes       string    `gorm:"type:text" json:"notes"`
	Mood        string    `gorm:"size:20" json:"mood"` // great, good, okay, struggling
	EnergyLevel *int      `json:"energy_level"`        // 1-10

	CreatedAt time.Time `json:"created_at"`
}

type ProgressLogTask struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	TaskID uint `gorm:"index;not null" json:"task_id"`
	Task   Task `json:"-"`

	LogDate     time.Time `gorm:"type:date;not null" json:"log_date"`
	ValueLogged *float64  `json:"value_logged"`
	Notes       string    `gorm:"type:text" json:"notes"`
	Mood        string    `gorm:"size:20" json:"mood"`
	EnergyLevel *int      `json:"energy_level"`

	CreatedAt time.Time `json:"created_at"`
}
