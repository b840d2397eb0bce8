package task

import (
	"time"

	"lifetrack-backend/internal/auth"
	"lifetrack-backend/internal/database"
	"lifetrack-backend/internal/models"
	"lifetrack-backend/internal/progress"

	"github.com/gofiber/fiber/v2"
)

type CreateTaskRequest struct {
	GoalID            uint    `json:"goal_id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	TaskType          string  `json:"task_type"`
	DueDate           *string `json:"due_date"` // "2026-02-15"
	Priority          string  `json:"priority"`
	EstimatedDuration *int    `json:"estimated_duration"`
}

type UpdateTaskRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	TaskType          *string `json:"task_type"`
	DueDate           *string `json:"due_date"`
	Completed         *bool   `json:"completed"`
	Priority          *string `json:"priority"`
	EstimatedDuration *int    `json:"estimated_duration"`
}

// findOwnedTask loads a non-deleted task whose goal belongs to person.
func findOwnedTask(personID uint, id string) (*models.Task, error) {
	var t models.Task
	err := database.DB.
		Joins("JOIN goals ON goals.id = tasks.goal_id").
		Where("tasks.id = ? AND tasks.deleted = ? AND goals.person_id = ? AND goals.deleted = ?", id, false, personID, false).
		First(&t).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Task not found")
	}
	return &t, nil
}

func ownedGoal(personID, goalID uint) (*models.Goal, error) {
	var g models.Goal
	if err := database.DB.First(&g, "id = ? AND person_id = ? AND deleted = ?", goalID, personID, false).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Goal not found")
	}
	return &g, nil
}

// POST /api/tasks
func CreateTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var body CreateTaskRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}
		if _, err := ownedGoal(person.ID, body.GoalID); err != nil {
			return err
		}

		var dueDate *time.Time
		if body.DueDate != nil && *body.DueDate != "" {
			d, err := time.Parse("2006-01-02", *body.DueDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "due_date must be YYYY-MM-DD")
			}
			dueDate = &d
		}

		t := models.Task{
			GoalID:            body.GoalID,
			Name:              body.Name,
			Description:       body.Description,
			TaskType:          body.TaskType,
			DueDate:           dueDate,
			Priority:          body.Priority,
			EstimatedDuration: body.EstimatedDuration,
		}
		if t.TaskType == "" {
			t.TaskType = "daily"
		}
		if t.Priority == "" {
			t.Priority = "medium"
		}

		if err := database.DB.Create(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create task")
		}

		progress.UpdateGoalPercentage(database.DB, t.GoalID, progress.MethodHybrid)
		return c.Status(fiber.StatusCreated).JSON(t)
	}
}

// GET /api/tasks/goal/:goalId
func ListTasksForGoalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		goalID, err := c.ParamsInt("goalId")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid goal id")
		}
		if _, err := ownedGoal(person.ID, uint(goalID)); err != nil {
			return err
		}

		var tasks []models.Task
		if err := database.DB.
			Where("goal_id = ? AND deleted = ?", goalID, false).
			Order("created_at asc").
			Find(&tasks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list tasks")
		}
		return c.JSON(tasks)
	}
}

// GET /api/tasks/:id
func GetTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		t, err := findOwnedTask(person.ID, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(t)
	}
}

// PUT /api/tasks/:id: completed and completed_at move in lockstep; a
// completion change recomputes the goal's stored percentage.
func UpdateTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		t, err := findOwnedTask(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		var body UpdateTaskRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		completionChanged := false
		if body.Name != nil {
			t.Name = *body.Name
		}
		if body.Description != nil {
			t.Description = *body.Description
		}
		if body.TaskType != nil {
			t.TaskType = *body.TaskType
		}
		if body.DueDate != nil {
			if *body.DueDate == "" {
				t.DueDate = nil
			} else {
				d, err := time.Parse("2006-01-02", *body.DueDate)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "due_date must be YYYY-MM-DD")
				}
				t.DueDate = &d
			}
		}
		if body.Completed != nil && *body.Completed != t.Completed {
			t.Completed = *body.Completed
			if t.Completed {
				now := time.Now()
				t.CompletedAt = &now
			} else {
				t.CompletedAt = nil
			}
			completionChanged = true
		}
		if body.Priority != nil {
			t.Priority = *body.Priority
		}
		if body.EstimatedDuration != nil {
			t.EstimatedDuration = body.EstimatedDuration
		}

		if err := database.DB.Save(t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update task")
		}

		if completionChanged {
			progress.UpdateGoalPercentage(database.DB, t.GoalID, progress.MethodHybrid)
		}
		return c.JSON(t)
	}
}

// DELETE /api/tasks/:id: soft delete, then recompute goal progress
func DeleteTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		t, err := findOwnedTask(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		t.Deleted = true
		if err := database.DB.Save(t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete task")
		}

		progress.UpdateGoalPercentage(database.DB, t.GoalID, progress.MethodHybrid)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/tasks/:id/mark_task: toggles completion
func MarkTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		t, err := findOwnedTask(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		t.Completed = !t.Completed
		if t.Completed {
			now := time.Now()
			t.CompletedAt = &now
		} else {
			t.CompletedAt = nil
		}

		if err := database.DB.Save(t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update task")
		}

		pct, _ := progress.UpdateGoalPercentage(database.DB, t.GoalID, progress.MethodHybrid)
		return c.JSON(fiber.Map{
			"task":            t,
			"goal_percentage": pct,
		})
	}
}

type goalStatistics struct {
	GoalID         uint               `json:"goal_id"`
	TotalTasks     int                `json:"total_tasks"`
	CompletedTasks int                `json:"completed_tasks"`
	ByPriority     map[string]int     `json:"by_priority"`
	ByType         map[string]int     `json:"by_type"`
	Percentages    map[string]float64 `json:"percentages"`
}

// GET /api/tasks/goal/:goalId/statistics
func GoalStatisticsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		goalID, err := c.ParamsInt("goalId")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid goal id")
		}
		if _, err := ownedGoal(person.ID, uint(goalID)); err != nil {
			return err
		}

		var tasks []models.Task
		if err := database.DB.Find(&tasks, "goal_id = ? AND deleted = ?", goalID, false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load tasks")
		}

		stats := goalStatistics{
			GoalID:     uint(goalID),
			TotalTasks: len(tasks),
			ByPriority: map[string]int{},
			ByType:     map[string]int{},
		}
		for _, t := range tasks {
			if t.Completed {
				stats.CompletedTasks++
			}
			stats.ByPriority[t.Priority]++
			stats.ByType[t.TaskType]++
		}

		details, err := progress.GoalProgressDetails(database.DB, uint(goalID))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute progress")
		}
		stats.Percentages = details.Percentages

		return c.JSON(stats)
	}
}
