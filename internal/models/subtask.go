package models

import "time"

type SubTask struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	TaskID uint `gorm:"index;not null" json:"task_id"`
	Task   Task `json:"-"`

	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`

	Priority          string `gorm:"size:20;default:medium" json:"priority"`
	EstimatedDuration *int   `json:"estimated_duration"` // minutes

	// dense zero-based position among non-deleted siblings, recompacted on delete
	Order int `gorm:"column:sort_order;default:0" json:"order"`

	Deleted bool `gorm:"index;default:false" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
