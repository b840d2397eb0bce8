package income

import (
	"time"

	"lifetrack-backend/internal/auth"
	"lifetrack-backend/internal/database"
	"lifetrack-backend/internal/models"
	"lifetrack-backend/internal/period"

	"github.com/gofiber/fiber/v2"
)

type CreateIncomeSourceRequest struct {
	Name         string  `json:"name"`
	SourceType   string  `json:"source_type"`
	Amount       float64 `json:"amount"`
	ReceivedDate string  `json:"received_date"` // "2026-02-05"
	Frequency    string  `json:"frequency"`
	Description  string  `json:"description"`
}

type UpdateIncomeSourceRequest struct {
	Name         *string  `json:"name"`
	SourceType   *string  `json:"source_type"`
	Amount       *float64 `json:"amount"`
	ReceivedDate *string  `json:"received_date"`
	Frequency    *string  `json:"frequency"`
	Description  *string  `json:"description"`
}

func findOwnedIncomeSource(personID uint, id string) (*models.IncomeSource, error) {
	var is models.IncomeSource
	if err := database.DB.First(&is, "id = ? AND person_id = ?", id, personID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Income source not found")
	}
	return &is, nil
}

// POST /api/income-sources
func CreateIncomeSourceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var body CreateIncomeSourceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Amount must be positive")
		}

		receivedDate, err := time.Parse("2006-01-02", body.ReceivedDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "received_date must be YYYY-MM-DD")
		}

		is := models.IncomeSource{
			PersonID:     person.ID,
			Name:         body.Name,
			SourceType:   body.SourceType,
			Amount:       body.Amount,
			ReceivedDate: receivedDate,
			Frequency:    body.Frequency,
			Description:  body.Description,
		}
		if is.SourceType == "" {
			is.SourceType = "other"
		}
		if is.Frequency == "" {
			is.Frequency = "one-time"
		}

		if err := database.DB.Create(&is).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create income source")
		}
		return c.Status(fiber.StatusCreated).JSON(is)
	}
}

// GET /api/income-sources?source_type=&start_date=&end_date=
func ListIncomeSourcesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		query := database.DB.Where("person_id = ?", person.ID)
		if t := c.Query("source_type"); t != "" {
			query = query.Where("source_type = ?", t)
		}
		if from := c.Query("start_date"); from != "" {
			d, err := time.Parse("2006-01-02", from)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "start_date must be YYYY-MM-DD")
			}
			query = query.Where("received_date >= ?", d)
		}
		if to := c.Query("end_date"); to != "" {
			d, err := time.Parse("2006-01-02", to)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "end_date must be YYYY-MM-DD")
			}
			query = query.Where("received_date <= ?", d)
		}

		var sources []models.IncomeSource
		if err := query.Order("received_date desc").Find(&sources).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list income sources")
		}
		return c.JSON(sources)
	}
}

// GET /api/income-sources/current-month
func CurrentMonthIncomeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		now := time.Now()
		start, end := period.MonthWindow(now.Year(), int(now.Month()))

		var sources []models.IncomeSource
		if err := database.DB.
			Where("person_id = ? AND received_date >= ? AND received_date < ?", person.ID, start, end).
			Order("received_date desc").
			Find(&sources).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list income sources")
		}
		return c.JSON(sources)
	}
}

// GET /api/income-sources/by-type/:type
func IncomeByTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var sources []models.IncomeSource
		if err := database.DB.
			Where("person_id = ? AND source_type = ?", person.ID, c.Params("type")).
			Order("received_date desc").
			Find(&sources).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list income sources")
		}
		return c.JSON(sources)
	}
}

type typeSummaryRow struct {
	SourceType string  `json:"source_type"`
	Total      float64 `json:"total"`
	Count      int64   `json:"count"`
}

// GET /api/income-sources/type-summary
func TypeSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var rows []typeSummaryRow
		if err := database.DB.Model(&models.IncomeSource{}).
			Where("person_id = ?", person.ID).
			Select("source_type, SUM(amount) as total, COUNT(*) as count").
			Group("source_type").
			Order("total desc").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not summarize income")
		}
		return c.JSON(rows)
	}
}

// GET /api/income-sources/period-total?month=
func PeriodTotalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		month := c.Query("month", period.MonthString(time.Now()))
		ym, err := period.ParsePeriod(month)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
		}
		start, end := period.MonthWindow(ym.Year, ym.Month)

		var total float64
		if err := database.DB.Model(&models.IncomeSource{}).
			Where("person_id = ? AND received_date >= ? AND received_date < ?", person.ID, start, end).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute total")
		}
		return c.JSON(fiber.Map{
			"month": month,
			"total": total,
		})
	}
}

// GET /api/income-sources/:id
func GetIncomeSourceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		is, err := findOwnedIncomeSource(person.ID, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(is)
	}
}

// PUT /api/income-sources/:id
func UpdateIncomeSourceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		is, err := findOwnedIncomeSource(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		var body UpdateIncomeSourceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			is.Name = *body.Name
		}
		if body.SourceType != nil {
			is.SourceType = *body.SourceType
		}
		if body.Amount != nil {
			if *body.Amount <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Amount must be positive")
			}
			is.Amount = *body.Amount
		}
		if body.ReceivedDate != nil {
			d, err := time.Parse("2006-01-02", *body.ReceivedDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "received_date must be YYYY-MM-DD")
			}
			is.ReceivedDate = d
		}
		if body.Frequency != nil {
			is.Frequency = *body.Frequency
		}
		if body.Description != nil {
			is.Description = *body.Description
		}

		if err := database.DB.Save(is).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update income source")
		}
		return c.JSON(is)
	}
}

// DELETE /api/income-sources/:id
func DeleteIncomeSourceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		is, err := findOwnedIncomeSource(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		if err := database.DB.Delete(is).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete income source")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
