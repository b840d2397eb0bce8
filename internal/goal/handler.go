package goal

import (
	"time"

	"lifetrack-backend/internal/activity"
	"lifetrack-backend/internal/auth"
	"lifetrack-backend/internal/database"
	"lifetrack-backend/internal/models"
	"lifetrack-backend/internal/progress"

	"github.com/gofiber/fiber/v2"
)

type CreateGoalRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	TargetValue  *float64 `json:"target_value"`
	CurrentValue float64  `json:"current_value"`
	Unit         string   `json:"unit"`
	StartDate    *string  `json:"start_date"`  // "2026-01-01"
	TargetDate   *string  `json:"target_date"` // "2026-03-31"
	Priority     string   `json:"priority"`
}

type UpdateGoalRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category"`
	TargetValue  *float64 `json:"target_value"`
	CurrentValue *float64 `json:"current_value"`
	Unit         *string  `json:"unit"`
	Status       *string  `json:"status"`
	Priority     *string  `json:"priority"`
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// findOwnedGoal loads a non-deleted goal belonging to person, or 404s.
func findOwnedGoal(personID uint, id string) (*models.Goal, error) {
	var g models.Goal
	if err := database.DB.First(&g, "id = ? AND person_id = ? AND deleted = ?", id, personID, false).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Goal not found")
	}
	return &g, nil
}

// POST /api/goals
func CreateGoalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var body CreateGoalRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}

		startDate, err := parseDate(body.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "start_date must be YYYY-MM-DD")
		}
		targetDate, err := parseDate(body.TargetDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "target_date must be YYYY-MM-DD")
		}

		g := models.Goal{
			PersonID:     person.ID,
			Name:         body.Name,
			Description:  body.Description,
			Category:     body.Category,
			TargetValue:  body.TargetValue,
			CurrentValue: body.CurrentValue,
			Unit:         body.Unit,
			StartDate:    startDate,
			TargetDate:   targetDate,
			Status:       models.GoalStatusActive,
			Priority:     body.Priority,
		}
		if g.Priority == "" {
			g.Priority = "medium"
		}

		if err := database.DB.Create(&g).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create goal")
		}

		activity.Record(person.ID, "goal", g.ID, models.ActivityActionCreate, "Goal created: "+g.Name)
		return c.Status(fiber.StatusCreated).JSON(g)
	}
}

// GET /api/goals?status_filter=&category_filter=
func ListGoalsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		query := database.DB.Where("person_id = ? AND deleted = ?", person.ID, false)
		if status := c.Query("status_filter"); status != "" {
			query = query.Where("status = ?", status)
		}
		if category := c.Query("category_filter"); category != "" {
			query = query.Where("category = ?", category)
		}

		var goals []models.Goal
		if err := query.Order("created_at desc").Find(&goals).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list goals")
		}
		return c.JSON(goals)
	}
}

// GET /api/goals/:id
func GetGoalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		g, err := findOwnedGoal(person.ID, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(g)
	}
}

// PUT /api/goals/:id: a current_value change recomputes the stored
// percentage with the hybrid method.
func UpdateGoalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		g, err := findOwnedGoal(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		var body UpdateGoalRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		currentValueChanged := false
		if body.Name != nil {
			g.Name = *body.Name
		}
		if body.Description != nil {
			g.Description = *body.Description
		}
		if body.Category != nil {
			g.Category = *body.Category
		}
		if body.TargetValue != nil {
			g.TargetValue = body.TargetValue
		}
		if body.CurrentValue != nil && *body.CurrentValue != g.CurrentValue {
			g.CurrentValue = *body.CurrentValue
			currentValueChanged = true
		}
		if body.Unit != nil {
			g.Unit = *body.Unit
		}
		if body.Status != nil {
			switch models.GoalStatus(*body.Status) {
			case models.GoalStatusActive, models.GoalStatusCompleted, models.GoalStatusPaused:
				g.Status = models.GoalStatus(*body.Status)
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Status must be active, completed or paused")
			}
		}
		if body.Priority != nil {
			g.Priority = *body.Priority
		}

		if err := database.DB.Save(g).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update goal")
		}

		if currentValueChanged {
			if pct, err := progress.UpdateGoalPercentage(database.DB, g.ID, progress.MethodHybrid); err == nil {
				g.Percentage = pct
			}
		}
		return c.JSON(g)
	}
}

// DELETE /api/goals/:id: soft delete
func DeleteGoalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		g, err := findOwnedGoal(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		g.Deleted = true
		if err := database.DB.Save(g).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete goal")
		}

		activity.Record(person.ID, "goal", g.ID, models.ActivityActionDelete, "Goal deleted: "+g.Name)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/goals/:id/recalculate-progress?method=
func RecalculateProgressHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		g, err := findOwnedGoal(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		method := progress.MethodHybrid
		if m := c.Query("method"); m != "" {
			method = progress.ParseMethod(m)
		}

		pct, err := progress.UpdateGoalPercentage(database.DB, g.ID, method)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not recalculate progress")
		}

		return c.JSON(fiber.Map{
			"goal_id":    g.ID,
			"method":     method,
			"percentage": pct,
		})
	}
}

// POST /api/goals/:id/complete bypasses calculation. Forces 100 and snaps
// current_value to target_value when one is set.
func CompleteGoalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		g, err := findOwnedGoal(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		g.Status = models.GoalStatusCompleted
		g.Percentage = 100
		if g.TargetValue != nil && *g.TargetValue > 0 {
			g.CurrentValue = *g.TargetValue
		}

		if err := database.DB.Save(g).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not complete goal")
		}

		activity.Record(person.ID, "goal", g.ID, models.ActivityActionUpdate, "Goal completed: "+g.Name)
		return c.JSON(g)
	}
}

// GET /api/goals/:id/progress-details
func ProgressDetailsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		g, err := findOwnedGoal(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		details, err := progress.GoalProgressDetails(database.DB, g.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute progress details")
		}
		return c.JSON(details)
	}
}
