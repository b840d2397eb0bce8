package milestone

import (
	"time"

	"lifetrack-backend/internal/auth"
	"lifetrack-backend/internal/database"
	"lifetrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateMilestoneRequest struct {
	GoalID      uint     `json:"goal_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TargetValue *float64 `json:"target_value"`
	TargetDate  *string  `json:"target_date"`
	OrderIndex  int      `json:"order_index"`
}

type UpdateMilestoneRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	TargetValue *float64 `json:"target_value"`
	TargetDate  *string  `json:"target_date"`
	OrderIndex  *int     `json:"order_index"`
}

// findOwnedMilestone loads a milestone whose goal belongs to person.
func findOwnedMilestone(personID uint, id string) (*models.Milestone, error) {
	var m models.Milestone
	err := database.DB.
		Joins("JOIN goals ON goals.id = milestones.goal_id").
		Where("milestones.id = ? AND goals.person_id = ? AND goals.deleted = ?", id, personID, false).
		First(&m).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Milestone not found")
	}
	return &m, nil
}

func ownedGoal(personID uint, goalID uint) error {
	var count int64
	if err := database.DB.Model(&models.Goal{}).
		Where("id = ? AND person_id = ? AND deleted = ?", goalID, personID, false).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not verify goal")
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Goal not found")
	}
	return nil
}

// POST /api/milestones
func CreateMilestoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var body CreateMilestoneRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}
		if err := ownedGoal(person.ID, body.GoalID); err != nil {
			return err
		}

		var targetDate *time.Time
		if body.TargetDate != nil && *body.TargetDate != "" {
			d, err := time.Parse("2006-01-02", *body.TargetDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "target_date must be YYYY-MM-DD")
			}
			targetDate = &d
		}

		m := models.Milestone{
			GoalID:      body.GoalID,
			Name:        body.Name,
			Description: body.Description,
			TargetValue: body.TargetValue,
			TargetDate:  targetDate,
			OrderIndex:  body.OrderIndex,
		}
		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create milestone")
		}
		return c.Status(fiber.StatusCreated).JSON(m)
	}
}

// GET /api/milestones: every milestone of the person's goals
func ListMilestonesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var milestones []models.Milestone
		if err := database.DB.
			Joins("JOIN goals ON goals.id = milestones.goal_id").
			Where("goals.person_id = ? AND goals.deleted = ?", person.ID, false).
			Order("milestones.goal_id asc, milestones.order_index asc").
			Find(&milestones).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list milestones")
		}
		return c.JSON(milestones)
	}
}

// GET /api/milestones/goal/:goalId
func ListGoalMilestonesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		goalID, err := c.ParamsInt("goalId")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid goal id")
		}
		if err := ownedGoal(person.ID, uint(goalID)); err != nil {
			return err
		}

		var milestones []models.Milestone
		if err := database.DB.
			Where("goal_id = ?", goalID).
			Order("order_index asc").
			Find(&milestones).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list milestones")
		}
		return c.JSON(milestones)
	}
}

// GET /api/milestones/:id
func GetMilestoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		m, err := findOwnedMilestone(person.ID, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(m)
	}
}

// PUT /api/milestones/:id
func UpdateMilestoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		m, err := findOwnedMilestone(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		var body UpdateMilestoneRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			m.Name = *body.Name
		}
		if body.Description != nil {
			m.Description = *body.Description
		}
		if body.TargetValue != nil {
			m.TargetValue = body.TargetValue
		}
		if body.TargetDate != nil {
			if *body.TargetDate == "" {
				m.TargetDate = nil
			} else {
				d, err := time.Parse("2006-01-02", *body.TargetDate)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "target_date must be YYYY-MM-DD")
				}
				m.TargetDate = &d
			}
		}
		if body.OrderIndex != nil {
			m.OrderIndex = *body.OrderIndex
		}

		if err := database.DB.Save(m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update milestone")
		}
		return c.JSON(m)
	}
}

// DELETE /api/milestones/:id
func DeleteMilestoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		m, err := findOwnedMilestone(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		if err := database.DB.Delete(m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete milestone")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/milestones/:id/mark: toggles achieved; achieved_at moves
// in lockstep with the flag.
func MarkMilestoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		m, err := findOwnedMilestone(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		m.Achieved = !m.Achieved
		if m.Achieved {
			now := time.Now()
			m.AchievedAt = &now
		} else {
			m.AchievedAt = nil
		}

		if err := database.DB.Save(m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update milestone")
		}
		return c.JSON(m)
	}
}
