package activity

import (
	"lifetrack-backend/internal/auth"
	"lifetrack-backend/internal/database"
	"lifetrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/activity-logs?entity_type=&limit=&offset=
func ListActivityLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		limit := c.QueryInt("limit", 100)
		if limit < 1 || limit > 1000 {
			limit = 100
		}
		offset := c.QueryInt("offset", 0)
		if offset < 0 {
			offset = 0
		}

		query := database.DB.Where("person_id = ?", person.ID)
		if entityType := c.Query("entity_type"); entityType != "" {
			query = query.Where("entity_type = ?", entityType)
		}

		var logs []models.ActivityLog
		if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list activity logs")
		}
		return c.JSON(logs)
	}
}
