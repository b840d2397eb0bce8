package salarymonth

import (
	"lifetrack-backend/internal/models"

	"gorm.io/gorm"
)

// RecalcTotals re-sums all expenses linked to the salary month and
// refreshes total_spent and remaining_amount from the database, so the
// stored totals never drift from the rows that back them.
func RecalcTotals(db *gorm.DB, salaryMonthID uint) (*models.SalaryMonth, error) {
	var sm models.SalaryMonth
	if err := db.First(&sm, "id = ?", salaryMonthID).Error; err != nil {
		return nil, err
	}

	var totalSpent float64
	if err := db.Model(&models.Expense{}).
		Where("salary_month_id = ?", salaryMonthID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalSpent).Error; err != nil {
		return nil, err
	}

	sm.TotalSpent = totalSpent
	sm.RemainingAmount = sm.NetAmount - totalSpent
	if err := db.Model(&models.SalaryMonth{}).
		Where("id = ?", sm.ID).
		Updates(map[string]interface{}{
			"total_spent":      sm.TotalSpent,
			"remaining_amount": sm.RemainingAmount,
		}).Error; err != nil {
		return nil, err
	}
	return &sm, nil
}
