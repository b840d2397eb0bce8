package activity

import (
	"log"

	"lifetrack-backend/internal/database"
	"lifetrack-backend/internal/models"
)

// Record writes one activity log row. Failures are logged and swallowed so a
// broken log never fails the mutation it describes.
func Record(personID uint, entityType string, entityID uint, action models.ActivityAction, description string) {
	entry := models.ActivityLog{
		PersonID:    personID,
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Description: description,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("activity log write failed: %v", err)
	}
}
