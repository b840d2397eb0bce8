package job

import (
	"strconv"
	"time"

	"lifetrack-backend/internal/activity"
	"lifetrack-backend/internal/auth"
	"lifetrack-backend/internal/database"
	"lifetrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateJobRequest struct {
	CompanyName string  `json:"company_name"`
	Position    string  `json:"position"`
	Salary      float64 `json:"salary"`
	Currency    string  `json:"currency"`
	StartDate   string  `json:"start_date"` // "2025-11-01"
	EndDate     *string `json:"end_date"`
}

type UpdateJobRequest struct {
	CompanyName *string  `json:"company_name"`
	Position    *string  `json:"position"`
	Salary      *float64 `json:"salary"`
	Currency    *string  `json:"currency"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	Active      *bool    `json:"active"`
}

func findOwnedJob(personID uint, id string) (*models.Job, error) {
	var j models.Job
	if err := database.DB.First(&j, "id = ? AND person_id = ? AND deleted = ?", id, personID, false).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Job not found")
	}
	return &j, nil
}

// POST /api/jobs
func CreateJobHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var body CreateJobRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.CompanyName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Company name is required")
		}
		if body.Salary <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Salary must be positive")
		}

		startDate, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "start_date must be YYYY-MM-DD")
		}

		var endDate *time.Time
		if body.EndDate != nil && *body.EndDate != "" {
			d, err := time.Parse("2006-01-02", *body.EndDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "end_date must be YYYY-MM-DD")
			}
			if d.Before(startDate) {
				return fiber.NewError(fiber.StatusBadRequest, "end_date cannot be before start_date")
			}
			endDate = &d
		}

		j := models.Job{
			PersonID:    person.ID,
			CompanyName: body.CompanyName,
			Position:    body.Position,
			Salary:      body.Salary,
			Currency:    body.Currency,
			StartDate:   startDate,
			EndDate:     endDate,
			Active:      true,
		}
		if j.Currency == "" {
			j.Currency = "UZS"
		}

		if err := database.DB.Create(&j).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create job")
		}

		activity.Record(person.ID, "job", j.ID, models.ActivityActionCreate, "Job created: "+j.CompanyName)
		return c.Status(fiber.StatusCreated).JSON(j)
	}
}

// GET /api/jobs
func ListJobsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var jobs []models.Job
		if err := database.DB.
			Where("person_id = ? AND deleted = ?", person.ID, false).
			Order("created_at desc").
			Find(&jobs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list jobs")
		}
		return c.JSON(jobs)
	}
}

// GET /api/jobs/active
func ListActiveJobsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var jobs []models.Job
		if err := database.DB.
			Where("person_id = ? AND active = ? AND deleted = ?", person.ID, true, false).
			Order("created_at desc").
			Find(&jobs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list jobs")
		}
		return c.JSON(jobs)
	}
}

// GET /api/jobs/:id
func GetJobHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		j, err := findOwnedJob(person.ID, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(j)
	}
}

// PUT /api/jobs/:id: salary changes affect future generation only;
// already generated months keep their amounts.
func UpdateJobHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		j, err := findOwnedJob(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		var body UpdateJobRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.CompanyName != nil {
			j.CompanyName = *body.CompanyName
		}
		if body.Position != nil {
			j.Position = *body.Position
		}
		if body.Salary != nil {
			if *body.Salary <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Salary must be positive")
			}
			j.Salary = *body.Salary
		}
		if body.Currency != nil {
			j.Currency = *body.Currency
		}
		if body.StartDate != nil {
			d, err := time.Parse("2006-01-02", *body.StartDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "start_date must be YYYY-MM-DD")
			}
			j.StartDate = d
		}
		if body.EndDate != nil {
			if *body.EndDate == "" {
				j.EndDate = nil
			} else {
				d, err := time.Parse("2006-01-02", *body.EndDate)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "end_date must be YYYY-MM-DD")
				}
				j.EndDate = &d
			}
		}
		if body.Active != nil {
			j.Active = *body.Active
		}

		if err := database.DB.Save(j).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update job")
		}
		return c.JSON(j)
	}
}

// DELETE /api/jobs/:id: soft delete
func DeleteJobHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		j, err := findOwnedJob(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		j.Deleted = true
		if err := database.DB.Save(j).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete job")
		}

		activity.Record(person.ID, "job", j.ID, models.ActivityActionDelete, "Job deleted: "+j.CompanyName)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/jobs/:id/deactivate: sets active=false and closes the job
// with today as end date when none is set.
func DeactivateJobHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		j, err := findOwnedJob(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		j.Active = false
		if j.EndDate == nil {
			now := time.Now()
			j.EndDate = &now
		}
		if err := database.DB.Save(j).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not deactivate job")
		}
		return c.JSON(j)
	}
}

// GET /api/jobs/:id/salary-months
func ListJobSalaryMonthsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		j, err := findOwnedJob(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		var months []models.SalaryMonth
		if err := database.DB.
			Where("job_id = ?", j.ID).
			Order("month desc").
			Find(&months).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list salary months")
		}
		return c.JSON(months)
	}
}

// POST /api/jobs/:id/generate-salary-months
func GenerateSalaryMonthsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		j, err := findOwnedJob(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		result, err := GenerateSalaryMonths(database.DB, j, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate salary months")
		}

		activity.Record(person.ID, "job", j.ID, models.ActivityActionUpdate,
			"Generated "+strconv.Itoa(result.TotalGenerated)+" salary months for "+j.CompanyName)
		return c.JSON(result)
	}
}
