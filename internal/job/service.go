package job

import (
	"time"

	"lifetrack-backend/internal/models"
	"lifetrack-backend/internal/period"

	"gorm.io/gorm"
)

// GenerationResult reports one salary month generation run.
type GenerationResult struct {
	JobID          uint     `json:"job_id"`
	CreatedMonths  []string `json:"created_months"`
	SkippedMonths  []string `json:"skipped_months"`
	TotalGenerated int      `json:"total_generated"`
}

// generationWindow is the month span a job covers: start date through
// end date, or through now for an open-ended job.
func generationWindow(job *models.Job, now time.Time) (time.Time, time.Time) {
	end := now
	if job.EndDate != nil {
		end = *job.EndDate
	}
	return job.StartDate, end
}

// splitMonths partitions a run's month span against the months already
// present: every month lands in exactly one of the two lists, so a rerun
// over the same span creates nothing and skips everything.
func splitMonths(months []string, existing map[string]bool) (create, skip []string) {
	create, skip = []string{}, []string{}
	for _, month := range months {
		if existing[month] {
			skip = append(skip, month)
		} else {
			create = append(create, month)
		}
	}
	return create, skip
}

// GenerateSalaryMonths creates one SalaryMonth per calendar month of the
// job's window, skipping months that already exist. The whole run is one
// transaction, so a failed insert leaves nothing behind and the run can
// be safely retried.
func GenerateSalaryMonths(db *gorm.DB, job *models.Job, now time.Time) (*GenerationResult, error) {
	start, end := generationWindow(job, now)
	months := period.MonthRange(start, end)

	result := &GenerationResult{JobID: job.ID}

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing []models.SalaryMonth
		if err := tx.Select("month").Find(&existing, "job_id = ?", job.ID).Error; err != nil {
			return err
		}
		have := make(map[string]bool, len(existing))
		for _, sm := range existing {
			have[sm.Month] = true
		}

		result.CreatedMonths, result.SkippedMonths = splitMonths(months, have)
		for _, month := range result.CreatedMonths {
			sm := models.SalaryMonth{
				JobID:           job.ID,
				PersonID:        job.PersonID,
				Month:           month,
				SalaryAmount:    job.Salary,
				NetAmount:       job.Salary,
				RemainingAmount: job.Salary,
			}
			if err := tx.Create(&sm).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.TotalGenerated = len(result.CreatedMonths)
	return result, nil
}

// CreateCurrentMonthForAllJobs ensures every active, non-deleted job of a
// person has a SalaryMonth for the current calendar month.
func CreateCurrentMonthForAllJobs(db *gorm.DB, personID uint, now time.Time) ([]models.SalaryMonth, error) {
	var jobs []models.Job
	if err := db.Find(&jobs, "person_id = ? AND active = ? AND deleted = ?", personID, true, false).Error; err != nil {
		return nil, err
	}

	month := period.MonthString(now)
	created := []models.SalaryMonth{}

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range jobs {
			job := &jobs[i]

			var count int64
			if err := tx.Model(&models.SalaryMonth{}).
				Where("job_id = ? AND month = ?", job.ID, month).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			sm := models.SalaryMonth{
				JobID:           job.ID,
				PersonID:        job.PersonID,
				Month:           month,
				SalaryAmount:    job.Salary,
				NetAmount:       job.Salary,
				RemainingAmount: job.Salary,
			}
			if err := tx.Create(&sm).Error; err != nil {
				return err
			}
			created = append(created, sm)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
