package budget

import (
	"math"

	"lifetrack-backend/internal/models"
	"lifetrack-backend/internal/period"

	"gorm.io/gorm"
)

// ComputeTotals derives spent and remaining from an allocated amount and
// the expenses that count against it.
func ComputeTotals(allocated float64, expenses []models.Expense) (spent, remaining float64) {
	for _, e := range expenses {
		spent += e.Amount
	}
	return spent, allocated - spent
}

// UsedPercentage is the spent share of the allocation, rounded to 2
// decimals; 0 when nothing was allocated.
func UsedPercentage(allocated, spent float64) float64 {
	if allocated <= 0 {
		return 0
	}
	return math.Round(spent/allocated*100*100) / 100
}

// AdherenceStatus bands how much of the allocation has been used. A zero
// allocation counts as 0% used.
func AdherenceStatus(allocated, spent float64) string {
	pct := UsedPercentage(allocated, spent)
	switch {
	case pct > 100:
		return "over_budget"
	case pct > 90:
		return "warning"
	case pct > 75:
		return "good"
	default:
		return "excellent"
	}
}

// Recalculate re-sums the budget's spent amount from matching expenses
// and persists the derived fields. Weekly budgets have no expense window
// semantics yet, so they keep their stored values.
func Recalculate(db *gorm.DB, b *models.Budget) error {
	if b.PeriodType != models.BudgetPeriodMonthly {
		return nil
	}

	ym, err := period.ParsePeriod(b.Period)
	if err != nil {
		return err
	}
	start, end := period.MonthWindow(ym.Year, ym.Month)

	var expenses []models.Expense
	if err := db.
		Where("person_id = ? AND category = ? AND date >= ? AND date < ?", b.PersonID, b.Category, start, end).
		Find(&expenses).Error; err != nil {
		return err
	}

	b.SpentAmount, b.RemainingAmount = ComputeTotals(b.AllocatedAmount, expenses)
	return db.Model(&models.Budget{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"spent_amount":     b.SpentAmount,
			"remaining_amount": b.RemainingAmount,
		}).Error
}

// RecalculateForExpense refreshes every monthly budget of the person that
// the expense's category and month fall into.
func RecalculateForExpense(db *gorm.DB, personID uint, category, month string) {
	var budgets []models.Budget
	if err := db.Find(&budgets,
		"person_id = ? AND category = ? AND period = ? AND period_type = ?",
		personID, category, month, models.BudgetPeriodMonthly).Error; err != nil {
		return
	}
	for i := range budgets {
		Recalculate(db, &budgets[i])
	}
}
