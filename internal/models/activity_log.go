package models

import "time"

type ActivityAction string

const (
	ActivityActionCreate ActivityAction = "create"
	ActivityActionUpdate ActivityAction = "update"
	ActivityActionDelete ActivityAction = "delete"
)

// ActivityLog records mutations of financial and goal entities.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	PersonID uint `gorm:"index;not null" json:"person_id"`

	// e.g. "goal", "salary_month", "saving_transaction", "expense"
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint   `gorm:"index" json:"entity_id"`

	Action      ActivityAction `gorm:"size:20" json:"action"`
	Description string         `gorm:"size:255" json:"description"`
}
