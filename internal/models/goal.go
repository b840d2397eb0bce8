package models

import "time"

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
)

type Goal struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PersonID uint   `gorm:"index;not null" json:"person_id"`
	Person   Person `json:"-"`

	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:50" json:"category"` // Learning, Health, Career, Finance, Personal

	TargetValue  *float64 `json:"target_value"`
	CurrentValue float64  `gorm:"default:0" json:"current_value"`
	Unit         string   `gorm:"size:20" json:"unit"` // "score", "%", "days"

	StartDate  *time.Time `gorm:"type:date" json:"start_date"`
	TargetDate *time.Time `gorm:"type:date" json:"target_date"`

	Status   GoalStatus `gorm:"size:20;default:active" json:"status"`
	Priority string     `gorm:"size:20;default:medium" json:"priority"` // high, medium, low

	// stored derived completion measure, always in [0, 100]
	Percentage float64 `gorm:"default:0" json:"percentage"`

	Deleted bool `gorm:"index;default:false" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tasks        []Task        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ProgressLogs []ProgressLog `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
