package models

import "time"

type Milestone struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	GoalID uint `gorm:"index;not null" json:"goal_id"`
	Goal   Goal `json:"-"`

	Name        string     `gorm:"size:200;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	TargetValue *float64   `json:"target_value"`
	TargetDate  *time.Time `gorm:"type:date" json:"target_date"`
	OrderIndex  int        `gorm:"default:0" json:"order_index"`

	Achieved   bool       `gorm:"default:false" json:"achieved"`
	AchievedAt *time.Time `json:"achieved_at"`

	CreatedAt time.Time `json:"created_at"`
}
