package models

import "time"

type Task struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	GoalID uint `gorm:"index;not null" json:"goal_id"`
	Goal   Goal `json:"-"`

	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	TaskType string     `gorm:"size:20;default:daily" json:"task_type"` // daily, weekly, one-time
	DueDate  *time.Time `gorm:"type:date" json:"due_date"`

	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`

	Priority          string `gorm:"size:20;default:medium" json:"priority"`
	EstimatedDuration *int   `json:"estimated_duration"` // minutes

	Deleted bool `gorm:"index;default:false" json:"-"`

	CreatedAt time.Time `json:"created_at"`

	SubTasks []SubTask `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
