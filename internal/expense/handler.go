package expense

import (
	"time"

	"lifetrack-backend/internal/activity"
	"lifetrack-backend/internal/auth"
	"lifetrack-backend/internal/budget"
	"lifetrack-backend/internal/database"
	"lifetrack-backend/internal/models"
	"lifetrack-backend/internal/period"
	"lifetrack-backend/internal/salarymonth"

	"github.com/gofiber/fiber/v2"
)

type CreateExpenseRequest struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Date          string  `json:"date"` // "2026-02-10"
	Amount        float64 `json:"amount"`
	Description   string  `json:"description"`
	SalaryMonthID *uint   `json:"salary_month_id"`
	IsRecurring   bool    `json:"is_recurring"`
	IsEssential   bool    `json:"is_essential"`
}

type UpdateExpenseRequest struct {
	Name          *string  `json:"name"`
	Category      *string  `json:"category"`
	Date          *string  `json:"date"`
	Amount        *float64 `json:"amount"`
	Description   *string  `json:"description"`
	SalaryMonthID *uint    `json:"salary_month_id"`
	ClearLink     bool     `json:"clear_salary_month"`
	IsRecurring   *bool    `json:"is_recurring"`
	IsEssential   *bool    `json:"is_essential"`
}

func findOwnedExpense(personID uint, id string) (*models.Expense, error) {
	var e models.Expense
	if err := database.DB.First(&e, "id = ? AND person_id = ?", id, personID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Expense not found")
	}
	return &e, nil
}

// checkSalaryMonthOwnership rejects links to another person's salary month.
func checkSalaryMonthOwnership(personID uint, salaryMonthID *uint) error {
	if salaryMonthID == nil {
		return nil
	}
	var count int64
	if err := database.DB.Model(&models.SalaryMonth{}).
		Where("id = ? AND person_id = ?", *salaryMonthID, personID).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not verify salary month")
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Salary month not found")
	}
	return nil
}

func recalcIfLinked(salaryMonthID *uint) {
	if salaryMonthID != nil {
		salarymonth.RecalcTotals(database.DB, *salaryMonthID)
	}
}

// POST /api/expenses
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Amount must be positive")
		}
		if err := checkSalaryMonthOwnership(person.ID, body.SalaryMonthID); err != nil {
			return err
		}

		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}

		e := models.Expense{
			PersonID:      person.ID,
			SalaryMonthID: body.SalaryMonthID,
			Name:          body.Name,
			Category:      body.Category,
			Date:          date,
			Amount:        body.Amount,
			Description:   body.Description,
			IsRecurring:   body.IsRecurring,
			IsEssential:   body.IsEssential,
		}
		if e.Category == "" {
			e.Category = "other"
		}

		if err := database.DB.Create(&e).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create expense")
		}

		recalcIfLinked(e.SalaryMonthID)
		budget.RecalculateForExpense(database.DB, person.ID, e.Category, period.MonthString(e.Date))
		activity.Record(person.ID, "expense", e.ID, models.ActivityActionCreate, "Expense created: "+e.Name)
		return c.Status(fiber.StatusCreated).JSON(e)
	}
}

// GET /api/expenses with category/date-range/recurring/essential/amount
// filters plus limit/offset paging.
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		query := database.DB.Where("person_id = ?", person.ID)
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if from := c.Query("start_date"); from != "" {
			d, err := time.Parse("2006-01-02", from)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "start_date must be YYYY-MM-DD")
			}
			query = query.Where("date >= ?", d)
		}
		if to := c.Query("end_date"); to != "" {
			d, err := time.Parse("2006-01-02", to)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "end_date must be YYYY-MM-DD")
			}
			query = query.Where("date <= ?", d)
		}
		if v := c.Query("is_recurring"); v != "" {
			query = query.Where("is_recurring = ?", v == "true")
		}
		if v := c.Query("is_essential"); v != "" {
			query = query.Where("is_essential = ?", v == "true")
		}
		if v := c.QueryFloat("min_amount"); v > 0 {
			query = query.Where("amount >= ?", v)
		}
		if v := c.QueryFloat("max_amount"); v > 0 {
			query = query.Where("amount <= ?", v)
		}

		limit := c.QueryInt("limit", 100)
		offset := c.QueryInt("offset", 0)

		var expenses []models.Expense
		if err := query.Order("date desc").Limit(limit).Offset(offset).Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list expenses")
		}
		return c.JSON(expenses)
	}
}

// GET /api/expenses/current-month
func CurrentMonthExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		now := time.Now()
		start, end := period.MonthWindow(now.Year(), int(now.Month()))

		var expenses []models.Expense
		if err := database.DB.
			Where("person_id = ? AND date >= ? AND date < ?", person.ID, start, end).
			Order("date desc").
			Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list expenses")
		}
		return c.JSON(expenses)
	}
}

// GET /api/expenses/by-category/:category
func ExpensesByCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var expenses []models.Expense
		if err := database.DB.
			Where("person_id = ? AND category = ?", person.ID, c.Params("category")).
			Order("date desc").
			Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list expenses")
		}
		return c.JSON(expenses)
	}
}

// GET /api/expenses/recurring
func RecurringExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var expenses []models.Expense
		if err := database.DB.
			Where("person_id = ? AND is_recurring = ?", person.ID, true).
			Order("date desc").
			Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list expenses")
		}
		return c.JSON(expenses)
	}
}

// GET /api/expenses/top?limit=
func TopExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		limit := c.QueryInt("limit", 10)

		var expenses []models.Expense
		if err := database.DB.
			Where("person_id = ?", person.ID).
			Order("amount desc").
			Limit(limit).
			Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list expenses")
		}
		return c.JSON(expenses)
	}
}

type categorySummaryRow struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Count      int64   `json:"count"`
	Average    float64 `json:"average"`
	Percentage float64 `json:"percentage"`
}

// GET /api/expenses/category-summary?start_date=&end_date=
func CategorySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		query := database.DB.Model(&models.Expense{}).Where("person_id = ?", person.ID)
		if from := c.Query("start_date"); from != "" {
			d, err := time.Parse("2006-01-02", from)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "start_date must be YYYY-MM-DD")
			}
			query = query.Where("date >= ?", d)
		}
		if to := c.Query("end_date"); to != "" {
			d, err := time.Parse("2006-01-02", to)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "end_date must be YYYY-MM-DD")
			}
			query = query.Where("date <= ?", d)
		}

		var rows []categorySummaryRow
		if err := query.
			Select("category, SUM(amount) as total, COUNT(*) as count").
			Group("category").
			Order("total desc").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not summarize expenses")
		}

		var grandTotal float64
		for _, r := range rows {
			grandTotal += r.Total
		}
		for i := range rows {
			if rows[i].Count > 0 {
				rows[i].Average = rows[i].Total / float64(rows[i].Count)
			}
			if grandTotal > 0 {
				rows[i].Percentage = rows[i].Total / grandTotal * 100
			}
		}
		return c.JSON(rows)
	}
}

// GET /api/expenses/:id
func GetExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		e, err := findOwnedExpense(person.ID, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(e)
	}
}

// PUT /api/expenses/:id: both the old and the new linked salary month
// get re-summed when the link or the amount moves.
func UpdateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		e, err := findOwnedExpense(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		var body UpdateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		oldSalaryMonthID := e.SalaryMonthID
		oldCategory, oldMonth := e.Category, period.MonthString(e.Date)

		if body.Name != nil {
			e.Name = *body.Name
		}
		if body.Category != nil {
			e.Category = *body.Category
		}
		if body.Date != nil {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
			}
			e.Date = d
		}
		if body.Amount != nil {
			if *body.Amount <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Amount must be positive")
			}
			e.Amount = *body.Amount
		}
		if body.Description != nil {
			e.Description = *body.Description
		}
		if body.ClearLink {
			e.SalaryMonthID = nil
		} else if body.SalaryMonthID != nil {
			if err := checkSalaryMonthOwnership(person.ID, body.SalaryMonthID); err != nil {
				return err
			}
			e.SalaryMonthID = body.SalaryMonthID
		}
		if body.IsRecurring != nil {
			e.IsRecurring = *body.IsRecurring
		}
		if body.IsEssential != nil {
			e.IsEssential = *body.IsEssential
		}

		if err := database.DB.Save(e).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update expense")
		}

		recalcIfLinked(oldSalaryMonthID)
		if e.SalaryMonthID != nil && (oldSalaryMonthID == nil || *oldSalaryMonthID != *e.SalaryMonthID) {
			recalcIfLinked(e.SalaryMonthID)
		}
		budget.RecalculateForExpense(database.DB, person.ID, oldCategory, oldMonth)
		if e.Category != oldCategory || period.MonthString(e.Date) != oldMonth {
			budget.RecalculateForExpense(database.DB, person.ID, e.Category, period.MonthString(e.Date))
		}
		return c.JSON(e)
	}
}

// DELETE /api/expenses/:id
func DeleteExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		e, err := findOwnedExpense(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		linkedID := e.SalaryMonthID
		if err := database.DB.Delete(e).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete expense")
		}

		recalcIfLinked(linkedID)
		budget.RecalculateForExpense(database.DB, person.ID, e.Category, period.MonthString(e.Date))
		activity.Record(person.ID, "expense", e.ID, models.ActivityActionDelete, "Expense deleted: "+e.Name)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
