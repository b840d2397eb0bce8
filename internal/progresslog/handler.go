package progresslog

import (
	"time"

	"lifetrack-backend/internal/auth"
	"lifetrack-backend/internal/database"
	"lifetrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateProgressLogRequest struct {
	GoalID      uint     `json:"goal_id"`
	LogDate     string   `json:"log_date"` // "2026-02-10"
	ValueLogged *float64 `json:"value_logged"`
	Notes       string   `json:"notes"`
	Mood        string   `json:"mood"`
	EnergyLevel *int     `json:"energy_level"`
}

type CreateTaskLogRequest struct {
	TaskID      uint     `json:"task_id"`
	LogDate     string   `json:"log_date"`
	ValueLogged *float64 `json:"value_logged"`
	Notes       string   `json:"notes"`
	Mood        string   `json:"mood"`
	EnergyLevel *int     `json:"energy_level"`
}

func validEnergyLevel(level *int) bool {
	return level == nil || (*level >= 1 && *level <= 10)
}

func ownedGoal(personID, goalID uint) error {
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

func ownedTask(personID, taskID uint) error {
	var count int64
	if err := database.DB.Model(&models.Task{}).
		Joins("JOIN goals ON goals.id = tasks.goal_id").
		Where("tasks.id = ? AND tasks.deleted = ? AND goals.person_id = ? AND goals.deleted = ?", taskID, false, personID, false).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not verify task")
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Task not found")
	}
	return nil
}

// POST /api/progress-logs
func CreateProgressLogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var body CreateProgressLogRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := ownedGoal(person.ID, body.GoalID); err != nil {
			return err
		}
		if !validEnergyLevel(body.EnergyLevel) {
			return fiber.NewError(fiber.StatusBadRequest, "energy_level must be between 1 and 10")
		}

		logDate := time.Now()
		if body.LogDate != "" {
			d, err := time.Parse("2006-01-02", body.LogDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "log_date must be YYYY-MM-DD")
			}
			logDate = d
		}

		pl := models.ProgressLog{
			GoalID:      body.GoalID,
			LogDate:     logDate,
			ValueLogged: body.ValueLogged,
			Notes:       body.Notes,
			Mood:        body.Mood,
			EnergyLevel: body.EnergyLevel,
		}
		if err := database.DB.Create(&pl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create progress log")
		}
		return c.Status(fiber.StatusCreated).JSON(pl)
	}
}

// GET /api/progress-logs/goal/:goalId
func ListGoalProgressLogsHandler() fiber.Handler {
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

		var logs []models.ProgressLog
		if err := database.DB.
			Where("goal_id = ?", goalID).
			Order("log_date desc, id desc").
			Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list progress logs")
		}
		return c.JSON(logs)
	}
}

// DELETE /api/progress-logs/:id
func DeleteProgressLogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var pl models.ProgressLog
		err = database.DB.
			Joins("JOIN goals ON goals.id = progress_logs.goal_id").
			Where("progress_logs.id = ? AND goals.person_id = ?", c.Params("id"), person.ID).
			First(&pl).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Progress log not found")
		}

		if err := database.DB.Delete(&pl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete progress log")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/progress-logs/tasks
func CreateTaskLogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var body CreateTaskLogRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := ownedTask(person.ID, body.TaskID); err != nil {
			return err
		}
		if !validEnergyLevel(body.EnergyLevel) {
			return fiber.NewError(fiber.StatusBadRequest, "energy_level must be between 1 and 10")
		}

		logDate := time.Now()
		if body.LogDate != "" {
			d, err := time.Parse("2006-01-02", body.LogDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "log_date must be YYYY-MM-DD")
			}
			logDate = d
		}

		tl := models.ProgressLogTask{
			TaskID:      body.TaskID,
			LogDate:     logDate,
			ValueLogged: body.ValueLogged,
			Notes:       body.Notes,
			Mood:        body.Mood,
			EnergyLevel: body.EnergyLevel,
		}
		if err := database.DB.Create(&tl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create task log")
		}
		return c.Status(fiber.StatusCreated).JSON(tl)
	}
}

// GET /api/progress-logs/tasks/:taskId
func ListTaskLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		taskID, err := c.ParamsInt("taskId")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid task id")
		}
		if err := ownedTask(person.ID, uint(taskID)); err != nil {
			return err
		}

		var logs []models.ProgressLogTask
		if err := database.DB.
			Where("task_id = ?", taskID).
			Order("log_date desc, id desc").
			Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list task logs")
		}
		return c.JSON(logs)
	}
}
