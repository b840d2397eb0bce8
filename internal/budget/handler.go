package budget

import (
	"time"

	"lifetrack-backend/internal/auth"
	"lifetrack-backend/internal/database"
	"lifetrack-backend/internal/models"
	"lifetrack-backend/internal/period"

	"github.com/gofiber/fiber/v2"
)

type CreateBudgetRequest struct {
	Period          string  `json:"period"` // "YYYY-MM"
	PeriodType      string  `json:"period_type"`
	Category        string  `json:"category"`
	AllocatedAmount float64 `json:"allocated_amount"`
}

type UpdateBudgetRequest struct {
	AllocatedAmount *float64 `json:"allocated_amount"`
}

func findOwnedBudget(personID uint, id string) (*models.Budget, error) {
	var b models.Budget
	if err := database.DB.First(&b, "id = ? AND person_id = ?", id, personID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Budget not found")
	}
	return &b, nil
}

// POST /api/budgets: one budget per (person, period, category); the
// fresh budget immediately reflects already-recorded expenses.
func CreateBudgetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var body CreateBudgetRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Category == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Category is required")
		}
		if body.AllocatedAmount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Allocated amount must be positive")
		}

		periodType := models.BudgetPeriodType(body.PeriodType)
		if periodType == "" {
			periodType = models.BudgetPeriodMonthly
		}
		if periodType != models.BudgetPeriodMonthly && periodType != models.BudgetPeriodWeekly {
			return fiber.NewError(fiber.StatusBadRequest, "period_type must be monthly or weekly")
		}
		if periodType == models.BudgetPeriodMonthly {
			if _, err := period.ParsePeriod(body.Period); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "period must be YYYY-MM")
			}
		}

		var count int64
		database.DB.Model(&models.Budget{}).
			Where("person_id = ? AND period = ? AND category = ?", person.ID, body.Period, body.Category).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Budget already exists for this period and category")
		}

		b := models.Budget{
			PersonID:        person.ID,
			Period:          body.Period,
			PeriodType:      periodType,
			Category:        body.Category,
			AllocatedAmount: body.AllocatedAmount,
			RemainingAmount: body.AllocatedAmount,
		}
		if err := database.DB.Create(&b).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create budget")
		}

		if err := Recalculate(database.DB, &b); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute budget totals")
		}
		return c.Status(fiber.StatusCreated).JSON(b)
	}
}

// GET /api/budgets?period=
func ListBudgetsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		query := database.DB.Where("person_id = ?", person.ID)
		if p := c.Query("period"); p != "" {
			query = query.Where("period = ?", p)
		}

		var budgets []models.Budget
		if err := query.Order("period desc, category asc").Find(&budgets).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list budgets")
		}
		return c.JSON(budgets)
	}
}

// GET /api/budgets/current-month
func CurrentMonthBudgetsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var budgets []models.Budget
		if err := database.DB.
			Where("person_id = ? AND period = ?", person.ID, period.MonthString(time.Now())).
			Order("category asc").
			Find(&budgets).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list budgets")
		}
		return c.JSON(budgets)
	}
}

// GET /api/budgets/:id
func GetBudgetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		b, err := findOwnedBudget(person.ID, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(b)
	}
}

// PUT /api/budgets/:id: only the allocation is mutable; period and
// category identify the budget and never change.
func UpdateBudgetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		b, err := findOwnedBudget(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		var body UpdateBudgetRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.AllocatedAmount != nil {
			if *body.AllocatedAmount <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Allocated amount must be positive")
			}
			b.AllocatedAmount = *body.AllocatedAmount
			b.RemainingAmount = b.AllocatedAmount - b.SpentAmount
		}

		if err := database.DB.Save(b).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update budget")
		}

		if err := Recalculate(database.DB, b); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute budget totals")
		}
		return c.JSON(b)
	}
}

// DELETE /api/budgets/:id
func DeleteBudgetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		b, err := findOwnedBudget(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		if err := database.DB.Delete(b).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete budget")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/budgets/:id/recalculate
func RecalculateBudgetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		b, err := findOwnedBudget(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		if err := Recalculate(database.DB, b); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not recalculate budget")
		}
		return c.JSON(b)
	}
}

// GET /api/budgets/:id/adherence
func BudgetAdherenceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		b, err := findOwnedBudget(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		if err := Recalculate(database.DB, b); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not recalculate budget")
		}

		return c.JSON(fiber.Map{
			"budget_id":        b.ID,
			"category":         b.Category,
			"period":           b.Period,
			"allocated_amount": b.AllocatedAmount,
			"spent_amount":     b.SpentAmount,
			"remaining_amount": b.RemainingAmount,
			"used_percentage":  UsedPercentage(b.AllocatedAmount, b.SpentAmount),
			"status":           AdherenceStatus(b.AllocatedAmount, b.SpentAmount),
		})
	}
}

// GET /api/budgets/period/:period/summary
func PeriodSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var budgets []models.Budget
		if err := database.DB.
			Where("person_id = ? AND period = ?", person.ID, c.Params("period")).
			Order("category asc").
			Find(&budgets).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list budgets")
		}

		var totalAllocated, totalSpent float64
		for _, b := range budgets {
			totalAllocated += b.AllocatedAmount
			totalSpent += b.SpentAmount
		}

		return c.JSON(fiber.Map{
			"period":          c.Params("period"),
			"budgets":         budgets,
			"total_allocated": totalAllocated,
			"total_spent":     totalSpent,
			"total_remaining": totalAllocated - totalSpent,
			"overall_status":  AdherenceStatus(totalAllocated, totalSpent),
		})
	}
}

// POST /api/budgets/monthly-template?period=: clones the previous
// month's allocations into the target month, skipping categories that
// already have a budget there.
func MonthlyTemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		target := c.Query("period", period.MonthString(time.Now()))
		ym, err := period.ParsePeriod(target)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "period must be YYYY-MM")
		}

		prevStart, _ := period.MonthWindow(ym.Year, ym.Month)
		prev := period.MonthString(prevStart.AddDate(0, -1, 0))

		var source []models.Budget
		if err := database.DB.Find(&source,
			"person_id = ? AND period = ? AND period_type = ?",
			person.ID, prev, models.BudgetPeriodMonthly).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load previous budgets")
		}

		created := []models.Budget{}
		for _, src := range source {
			var count int64
			database.DB.Model(&models.Budget{}).
				Where("person_id = ? AND period = ? AND category = ?", person.ID, target, src.Category).
				Count(&count)
			if count > 0 {
				continue
			}

			b := models.Budget{
				PersonID:        person.ID,
				Period:          target,
				PeriodType:      models.BudgetPeriodMonthly,
				Category:        src.Category,
				AllocatedAmount: src.AllocatedAmount,
				RemainingAmount: src.AllocatedAmount,
			}
			if err := database.DB.Create(&b).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not create budget")
			}
			Recalculate(database.DB, &b)
			created = append(created, b)
		}

		return c.JSON(fiber.Map{
			"source_period": prev,
			"target_period": target,
			"created":       created,
		})
	}
}
