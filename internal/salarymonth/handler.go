package salarymonth

import (
	"time"

	"lifetrack-backend/internal/auth"
	"lifetrack-backend/internal/database"
	"lifetrack-backend/internal/job"
	"lifetrack-backend/internal/models"
	"lifetrack-backend/internal/period"

	"github.com/gofiber/fiber/v2"
)

type CreateSalaryMonthRequest struct {
	JobID        uint    `json:"job_id"`
	Month        string  `json:"month"` // "YYYY-MM"
	SalaryAmount float64 `json:"salary_amount"`
	Deductions   float64 `json:"deductions"`
	ReceivedDate *string `json:"received_date"`
	Notes        string  `json:"notes"`
}

type UpdateSalaryMonthRequest struct {
	SalaryAmount *float64 `json:"salary_amount"`
	Deductions   *float64 `json:"deductions"`
	ReceivedDate *string  `json:"received_date"`
	Notes        *string  `json:"notes"`
}

// findOwned loads a salary month belonging to person.
func findOwned(personID uint, id string) (*models.SalaryMonth, error) {
	var sm models.SalaryMonth
	if err := database.DB.First(&sm, "id = ? AND person_id = ?", id, personID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Salary month not found")
	}
	return &sm, nil
}

// POST /api/salary-months: manual creation path; the (job_id, month)
// unique index rejects duplicates.
func CreateSalaryMonthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var body CreateSalaryMonthRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if _, err := period.ParsePeriod(body.Month); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
		}

		var job models.Job
		if err := database.DB.First(&job, "id = ? AND person_id = ? AND deleted = ?", body.JobID, person.ID, false).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Job not found")
		}

		var count int64
		database.DB.Model(&models.SalaryMonth{}).
			Where("job_id = ? AND month = ?", body.JobID, body.Month).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Salary month already exists for this job and month")
		}

		var receivedDate *time.Time
		if body.ReceivedDate != nil && *body.ReceivedDate != "" {
			d, err := time.Parse("2006-01-02", *body.ReceivedDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "received_date must be YYYY-MM-DD")
			}
			receivedDate = &d
		}

		salaryAmount := body.SalaryAmount
		if salaryAmount == 0 {
			salaryAmount = job.Salary
		}
		net := salaryAmount - body.Deductions

		sm := models.SalaryMonth{
			JobID:           body.JobID,
			PersonID:        person.ID,
			Month:           body.Month,
			SalaryAmount:    salaryAmount,
			Deductions:      body.Deductions,
			NetAmount:       net,
			RemainingAmount: net,
			ReceivedDate:    receivedDate,
			Notes:           body.Notes,
		}
		if err := database.DB.Create(&sm).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create salary month")
		}
		return c.Status(fiber.StatusCreated).JSON(sm)
	}
}

// GET /api/salary-months?month=
func ListSalaryMonthsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		query := database.DB.Where("person_id = ?", person.ID)
		if month := c.Query("month"); month != "" {
			query = query.Where("month = ?", month)
		}

		var months []models.SalaryMonth
		if err := query.Order("month desc").Find(&months).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list salary months")
		}
		return c.JSON(months)
	}
}

// GET /api/salary-months/current
func CurrentSalaryMonthsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var months []models.SalaryMonth
		if err := database.DB.
			Where("person_id = ? AND month = ?", person.ID, period.MonthString(time.Now())).
			Find(&months).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list salary months")
		}
		return c.JSON(months)
	}
}

// GET /api/salary-months/:id
func GetSalaryMonthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		sm, err := findOwned(person.ID, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(sm)
	}
}

// PUT /api/salary-months/:id: net and remaining are re-derived when the
// gross amount or deductions change.
func UpdateSalaryMonthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		sm, err := findOwned(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		var body UpdateSalaryMonthRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.SalaryAmount != nil {
			sm.SalaryAmount = *body.SalaryAmount
		}
		if body.Deductions != nil {
			sm.Deductions = *body.Deductions
		}
		if body.SalaryAmount != nil || body.Deductions != nil {
			sm.NetAmount = sm.SalaryAmount - sm.Deductions
			sm.RemainingAmount = sm.NetAmount - sm.TotalSpent
		}
		if body.ReceivedDate != nil {
			if *body.ReceivedDate == "" {
				sm.ReceivedDate = nil
			} else {
				d, err := time.Parse("2006-01-02", *body.ReceivedDate)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "received_date must be YYYY-MM-DD")
				}
				sm.ReceivedDate = &d
			}
		}
		if body.Notes != nil {
			sm.Notes = *body.Notes
		}

		if err := database.DB.Save(sm).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update salary month")
		}
		return c.JSON(sm)
	}
}

// DELETE /api/salary-months/:id: linked expenses survive with their
// salary_month_id cleared.
func DeleteSalaryMonthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		sm, err := findOwned(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		if err := database.DB.Model(&models.Expense{}).
			Where("salary_month_id = ?", sm.ID).
			Update("salary_month_id", nil).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not unlink expenses")
		}
		if err := database.DB.Delete(sm).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete salary month")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/salary-months/:id/expenses
func ListLinkedExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		sm, err := findOwned(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		var expenses []models.Expense
		if err := database.DB.
			Where("salary_month_id = ?", sm.ID).
			Order("date desc").
			Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list expenses")
		}
		return c.JSON(expenses)
	}
}

// POST /api/salary-months/:id/recalculate
func RecalculateSalaryMonthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		sm, err := findOwned(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		updated, err := RecalcTotals(database.DB, sm.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not recalculate salary month")
		}
		return c.JSON(updated)
	}
}

// POST /api/salary-months/generate-current: one month per active job
func GenerateCurrentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		created, err := job.CreateCurrentMonthForAllJobs(database.DB, person.ID, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate salary months")
		}
		return c.JSON(fiber.Map{
			"created": created,
			"count":   len(created),
		})
	}
}
