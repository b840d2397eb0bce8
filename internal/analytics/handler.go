package analytics

import (
	"time"

	"lifetrack-backend/internal/auth"
	"lifetrack-backend/internal/budget"
	"lifetrack-backend/internal/database"
	"lifetrack-backend/internal/models"
	"lifetrack-backend/internal/period"

	"github.com/gofiber/fiber/v2"
)

func sumExpenses(personID uint, start, end time.Time) (float64, error) {
	var total float64
	err := database.DB.Model(&models.Expense{}).
		Where("person_id = ? AND date >= ? AND date < ?", personID, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func sumIncome(personID uint, start, end time.Time) (float64, error) {
	var total float64
	err := database.DB.Model(&models.IncomeSource{}).
		Where("person_id = ? AND received_date >= ? AND received_date < ?", personID, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func sumSalaryNet(personID uint, month string) (float64, error) {
	var total float64
	err := database.DB.Model(&models.SalaryMonth{}).
		Where("person_id = ? AND month = ?", personID, month).
		Select("COALESCE(SUM(net_amount), 0)").
		Scan(&total).Error
	return total, err
}

// GET /api/analytics/monthly-summary/:month
func MonthlySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		month := c.Params("month")
		ym, err := period.ParsePeriod(month)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
		}
		start, end := period.MonthWindow(ym.Year, ym.Month)

		expenses, err := sumExpenses(person.ID, start, end)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute summary")
		}
		otherIncome, err := sumIncome(person.ID, start, end)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute summary")
		}
		salaryNet, err := sumSalaryNet(person.ID, month)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute summary")
		}

		totalIncome := salaryNet + otherIncome
		return c.JSON(fiber.Map{
			"month":          month,
			"salary_income":  salaryNet,
			"other_income":   otherIncome,
			"total_income":   totalIncome,
			"total_expenses": expenses,
			"net":            totalIncome - expenses,
			"savings_rate":   savingsRate(totalIncome, expenses),
		})
	}
}

// savingsRate is the share of income not spent; zero when there is no income.
func savingsRate(income, expenses float64) float64 {
	if income <= 0 {
		return 0
	}
	return (income - expenses) / income * 100
}

type categoryRow struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// GET /api/analytics/monthly-report/:month: the summary plus category
// breakdown, top expenses and budget adherence for the month.
func MonthlyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		month := c.Params("month")
		ym, err := period.ParsePeriod(month)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
		}
		start, end := period.MonthWindow(ym.Year, ym.Month)

		expenses, err := sumExpenses(person.ID, start, end)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build report")
		}
		otherIncome, err := sumIncome(person.ID, start, end)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build report")
		}
		salaryNet, err := sumSalaryNet(person.ID, month)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build report")
		}

		var byCategory []categoryRow
		if err := database.DB.Model(&models.Expense{}).
			Where("person_id = ? AND date >= ? AND date < ?", person.ID, start, end).
			Select("category, SUM(amount) as total, COUNT(*) as count").
			Group("category").
			Order("total desc").
			Scan(&byCategory).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build report")
		}

		var topExpenses []models.Expense
		if err := database.DB.
			Where("person_id = ? AND date >= ? AND date < ?", person.ID, start, end).
			Order("amount desc").
			Limit(10).
			Find(&topExpenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build report")
		}

		var budgets []models.Budget
		if err := database.DB.
			Where("person_id = ? AND period = ?", person.ID, month).
			Order("category asc").
			Find(&budgets).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build report")
		}
		adherence := make(map[string]string, len(budgets))
		for _, b := range budgets {
			adherence[b.Category] = budget.AdherenceStatus(b.AllocatedAmount, b.SpentAmount)
		}

		var savingsContributions float64
		if err := database.DB.Model(&models.SavingTransaction{}).
			Joins("JOIN savings ON savings.id = saving_transactions.saving_id").
			Where("savings.person_id = ? AND saving_transactions.transaction_date >= ? AND saving_transactions.transaction_date < ?", person.ID, start, end).
			Where("saving_transactions.transaction_type IN ?", []models.SavingTransactionType{models.SavingTxDeposit, models.SavingTxInterest}).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&savingsContributions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build report")
		}

		totalIncome := salaryNet + otherIncome
		return c.JSON(fiber.Map{
			"month":                 month,
			"salary_income":         salaryNet,
			"other_income":          otherIncome,
			"total_income":          totalIncome,
			"total_expenses":        expenses,
			"net":                   totalIncome - expenses,
			"savings_rate":          savingsRate(totalIncome, expenses),
			"savings_contributions": savingsContributions,
			"by_category":           byCategory,
			"top_expenses":          topExpenses,
			"budgets":               budgets,
			"budget_adherence":      adherence,
		})
	}
}

// GET /api/analytics/net-worth: savings balances plus what is left of
// the last three salary months.
func NetWorthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var savingsTotal float64
		if err := database.DB.Model(&models.Saving{}).
			Where("person_id = ?", person.ID).
			Select("COALESCE(SUM(current_balance), 0)").
			Scan(&savingsTotal).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute net worth")
		}

		months := period.MonthsBack(time.Now(), 3)
		keys := make([]string, len(months))
		for i, m := range months {
			keys[i] = m.String()
		}

		var salaryRemaining float64
		if err := database.DB.Model(&models.SalaryMonth{}).
			Where("person_id = ? AND month IN ? AND remaining_amount > 0", person.ID, keys).
			Select("COALESCE(SUM(remaining_amount), 0)").
			Scan(&salaryRemaining).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute net worth")
		}

		return c.JSON(fiber.Map{
			"savings_total":    savingsTotal,
			"salary_remaining": salaryRemaining,
			"months_counted":   keys,
			"net_worth":        savingsTotal + salaryRemaining,
		})
	}
}

// GET /api/analytics/spending-trends?months=: per-month expense totals,
// newest first.
func SpendingTrendsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		n := c.QueryInt("months", 6)
		if n < 1 || n > 36 {
			return fiber.NewError(fiber.StatusBadRequest, "months must be between 1 and 36")
		}

		type trendPoint struct {
			Month string  `json:"month"`
			Total float64 `json:"total"`
		}
		trend := make([]trendPoint, 0, n)
		for _, ym := range period.MonthsBack(time.Now(), n) {
			start, end := period.MonthWindow(ym.Year, ym.Month)
			total, err := sumExpenses(person.ID, start, end)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not compute trend")
			}
			trend = append(trend, trendPoint{Month: ym.String(), Total: total})
		}
		return c.JSON(trend)
	}
}

// GET /api/analytics/category-analysis?months=: category totals over a
// rolling window with each category's share of spending.
func CategoryAnalysisHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		n := c.QueryInt("months", 3)
		if n < 1 || n > 36 {
			return fiber.NewError(fiber.StatusBadRequest, "months must be between 1 and 36")
		}

		months := period.MonthsBack(time.Now(), n)
		oldest := months[len(months)-1]
		start, _ := period.MonthWindow(oldest.Year, oldest.Month)
		newest := months[0]
		_, end := period.MonthWindow(newest.Year, newest.Month)

		query := database.DB.Model(&models.Expense{}).
			Where("person_id = ? AND date >= ? AND date < ?", person.ID, start, end)
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}

		var rows []categoryRow
		if err := query.
			Select("category, SUM(amount) as total, COUNT(*) as count").
			Group("category").
			Order("total desc").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not analyze categories")
		}

		var total float64
		for _, r := range rows {
			total += r.Total
		}

		type categoryShare struct {
			categoryRow
			Share float64 `json:"share"`
		}
		shares := make([]categoryShare, len(rows))
		for i, r := range rows {
			share := 0.0
			if total > 0 {
				share = r.Total / total * 100
			}
			shares[i] = categoryShare{categoryRow: r, Share: share}
		}

		return c.JSON(fiber.Map{
			"months":     n,
			"total":      total,
			"categories": shares,
		})
	}
}

// GET /api/analytics/savings-growth?months=: end-of-month balances
// reconstructed from the transaction ledger.
func SavingsGrowthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		n := c.QueryInt("months", 6)
		if n < 1 || n > 36 {
			return fiber.NewError(fiber.StatusBadRequest, "months must be between 1 and 36")
		}

		type growthPoint struct {
			Month     string  `json:"month"`
			NetChange float64 `json:"net_change"`
		}
		growth := make([]growthPoint, 0, n)
		for _, ym := range period.MonthsBack(time.Now(), n) {
			start, end := period.MonthWindow(ym.Year, ym.Month)

			var deposits, withdrawals float64
			if err := database.DB.Model(&models.SavingTransaction{}).
				Joins("JOIN savings ON savings.id = saving_transactions.saving_id").
				Where("savings.person_id = ? AND saving_transactions.transaction_date >= ? AND saving_transactions.transaction_date < ?", person.ID, start, end).
				Where("saving_transactions.transaction_type IN ?", []models.SavingTransactionType{models.SavingTxDeposit, models.SavingTxInterest}).
				Select("COALESCE(SUM(amount), 0)").
				Scan(&deposits).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not compute growth")
			}
			if err := database.DB.Model(&models.SavingTransaction{}).
				Joins("JOIN savings ON savings.id = saving_transactions.saving_id").
				Where("savings.person_id = ? AND saving_transactions.transaction_date >= ? AND saving_transactions.transaction_date < ?", person.ID, start, end).
				Where("saving_transactions.transaction_type = ?", models.SavingTxWithdrawal).
				Select("COALESCE(SUM(amount), 0)").
				Scan(&withdrawals).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not compute growth")
			}

			growth = append(growth, growthPoint{Month: ym.String(), NetChange: deposits - withdrawals})
		}
		return c.JSON(growth)
	}
}

// GET /api/analytics/income-vs-expenses?months=
func IncomeVsExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		n := c.QueryInt("months", 6)
		if n < 1 || n > 36 {
			return fiber.NewError(fiber.StatusBadRequest, "months must be between 1 and 36")
		}

		type comparisonPoint struct {
			Month    string  `json:"month"`
			Income   float64 `json:"income"`
			Expenses float64 `json:"expenses"`
			Net      float64 `json:"net"`
		}
		points := make([]comparisonPoint, 0, n)
		for _, ym := range period.MonthsBack(time.Now(), n) {
			start, end := period.MonthWindow(ym.Year, ym.Month)

			expenses, err := sumExpenses(person.ID, start, end)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not compare months")
			}
			otherIncome, err := sumIncome(person.ID, start, end)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not compare months")
			}
			salaryNet, err := sumSalaryNet(person.ID, ym.String())
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not compare months")
			}

			income := salaryNet + otherIncome
			points = append(points, comparisonPoint{
				Month:    ym.String(),
				Income:   income,
				Expenses: expenses,
				Net:      income - expenses,
			})
		}
		return c.JSON(points)
	}
}
