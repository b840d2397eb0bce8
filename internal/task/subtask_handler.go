package task

import (
	"strconv"
	"time"

	"lifetrack-backend/internal/auth"
	"lifetrack-backend/internal/database"
	"lifetrack-backend/internal/models"
	"lifetrack-backend/internal/progress"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateSubTaskRequest struct {
	TaskID            uint   `json:"task_id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	Priority          string `json:"priority"`
	EstimatedDuration *int   `json:"estimated_duration"`
}

type UpdateSubTaskRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	Completed         *bool   `json:"completed"`
	Priority          *string `json:"priority"`
	EstimatedDuration *int    `json:"estimated_duration"`
}

// findOwnedSubTask loads a non-deleted subtask whose goal belongs to person.
func findOwnedSubTask(personID uint, id string) (*models.SubTask, error) {
	var st models.SubTask
	err := database.DB.
		Joins("JOIN tasks ON tasks.id = sub_tasks.task_id").
		Joins("JOIN goals ON goals.id = tasks.goal_id").
		Where("sub_tasks.id = ? AND sub_tasks.deleted = ? AND tasks.deleted = ? AND goals.person_id = ? AND goals.deleted = ?",
			id, false, false, personID, false).
		First(&st).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Subtask not found")
	}
	return &st, nil
}

func taskGoalID(taskID uint) (uint, error) {
	var t models.Task
	if err := database.DB.Select("goal_id").First(&t, "id = ?", taskID).Error; err != nil {
		return 0, err
	}
	return t.GoalID, nil
}

// POST /api/subtasks: the new subtask takes the next dense position
// among its non-deleted siblings.
func CreateSubTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var body CreateSubTaskRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}
		if _, err := findOwnedTask(person.ID, strconv.FormatUint(uint64(body.TaskID), 10)); err != nil {
			return err
		}

		var siblingCount int64
		if err := database.DB.Model(&models.SubTask{}).
			Where("task_id = ? AND deleted = ?", body.TaskID, false).
			Count(&siblingCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create subtask")
		}

		st := models.SubTask{
			TaskID:            body.TaskID,
			Name:              body.Name,
			Description:       body.Description,
			Priority:          body.Priority,
			EstimatedDuration: body.EstimatedDuration,
			Order:             int(siblingCount),
		}
		if st.Priority == "" {
			st.Priority = "medium"
		}

		if err := database.DB.Create(&st).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create subtask")
		}
		return c.Status(fiber.StatusCreated).JSON(st)
	}
}

// GET /api/subtasks/task/:taskId
func ListSubTasksForTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		if _, err := findOwnedTask(person.ID, c.Params("taskId")); err != nil {
			return err
		}

		var subtasks []models.SubTask
		if err := database.DB.
			Where("task_id = ? AND deleted = ?", c.Params("taskId"), false).
			Order("sort_order asc").
			Find(&subtasks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list subtasks")
		}
		return c.JSON(subtasks)
	}
}

// PUT /api/subtasks/:id
func UpdateSubTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		st, err := findOwnedSubTask(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		var body UpdateSubTaskRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			st.Name = *body.Name
		}
		if body.Description != nil {
			st.Description = *body.Description
		}
		if body.Completed != nil && *body.Completed != st.Completed {
			st.Completed = *body.Completed
			if st.Completed {
				now := time.Now()
				st.CompletedAt = &now
			} else {
				st.CompletedAt = nil
			}
		}
		if body.Priority != nil {
			st.Priority = *body.Priority
		}
		if body.EstimatedDuration != nil {
			st.EstimatedDuration = body.EstimatedDuration
		}

		if err := database.DB.Save(st).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update subtask")
		}
		return c.JSON(st)
	}
}

// DELETE /api/subtasks/:id: soft delete, then recompact sibling order
// so positions stay dense and zero-based.
func DeleteSubTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		st, err := findOwnedSubTask(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			st.Deleted = true
			if err := tx.Save(st).Error; err != nil {
				return err
			}

			var siblings []models.SubTask
			if err := tx.
				Where("task_id = ? AND deleted = ?", st.TaskID, false).
				Order("sort_order asc").
				Find(&siblings).Error; err != nil {
				return err
			}
			for i := range siblings {
				if siblings[i].Order != i {
					if err := tx.Model(&models.SubTask{}).
						Where("id = ?", siblings[i].ID).
						Update("sort_order", i).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete subtask")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/subtasks/:id/mark: toggles completion and refreshes the
// goal's stored percentage.
func MarkSubTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		st, err := findOwnedSubTask(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		st.Completed = !st.Completed
		if st.Completed {
			now := time.Now()
			st.CompletedAt = &now
		} else {
			st.CompletedAt = nil
		}

		if err := database.DB.Save(st).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update subtask")
		}

		if goalID, err := taskGoalID(st.TaskID); err == nil {
			progress.UpdateGoalPercentage(database.DB, goalID, progress.MethodHybrid)
		}
		return c.JSON(st)
	}
}
