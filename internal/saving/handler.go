package saving

import (
	"time"

	"lifetrack-backend/internal/activity"
	"lifetrack-backend/internal/auth"
	"lifetrack-backend/internal/database"
	"lifetrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateSavingRequest struct {
	AccountName   string   `json:"account_name"`
	AccountType   string   `json:"account_type"`
	InitialAmount float64  `json:"initial_amount"`
	TargetAmount  *float64 `json:"target_amount"`
	InterestRate  *float64 `json:"interest_rate"`
	Currency      string   `json:"currency"`
}

type UpdateSavingRequest struct {
	AccountName  *string  `json:"account_name"`
	AccountType  *string  `json:"account_type"`
	TargetAmount *float64 `json:"target_amount"`
	InterestRate *float64 `json:"interest_rate"`
	Currency     *string  `json:"currency"`
}

type CreateTransactionRequest struct {
	TransactionType string  `json:"transaction_type"`
	Amount          float64 `json:"amount"`
	TransactionDate *string `json:"transaction_date"`
	Description     string  `json:"description"`
}

func findOwnedSaving(personID uint, id string) (*models.Saving, error) {
	var s models.Saving
	if err := database.DB.First(&s, "id = ? AND person_id = ?", id, personID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Saving account not found")
	}
	return &s, nil
}

// applyTransaction writes the ledger row and the new balance atomically.
func applyTransaction(s *models.Saving, entry *models.SavingTransaction) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.Saving{}).
			Where("id = ?", s.ID).
			Update("current_balance", entry.BalanceAfter).Error
	})
}

// POST /api/savings: a positive initial amount becomes the opening
// deposit in the ledger.
func CreateSavingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var body CreateSavingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.AccountName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Account name is required")
		}
		if body.InitialAmount < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Initial amount cannot be negative")
		}

		s := models.Saving{
			PersonID:      person.ID,
			AccountName:   body.AccountName,
			AccountType:   body.AccountType,
			InitialAmount: body.InitialAmount,
			TargetAmount:  body.TargetAmount,
			InterestRate:  body.InterestRate,
			Currency:      body.Currency,
		}
		if s.AccountType == "" {
			s.AccountType = "bank"
		}
		if s.Currency == "" {
			s.Currency = "UZS"
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&s).Error; err != nil {
				return err
			}
			if body.InitialAmount > 0 {
				entry, err := BuildLedgerEntry(&s, models.SavingTxDeposit, body.InitialAmount, time.Now(), "Initial deposit")
				if err != nil {
					return err
				}
				if err := tx.Create(entry).Error; err != nil {
					return err
				}
				s.CurrentBalance = entry.BalanceAfter
				if err := tx.Model(&models.Saving{}).
					Where("id = ?", s.ID).
					Update("current_balance", s.CurrentBalance).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create saving account")
		}
		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// GET /api/savings?account_type=
func ListSavingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		query := database.DB.Where("person_id = ?", person.ID)
		if t := c.Query("account_type"); t != "" {
			query = query.Where("account_type = ?", t)
		}

		var savings []models.Saving
		if err := query.Order("created_at asc").Find(&savings).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list saving accounts")
		}
		return c.JSON(savings)
	}
}

type balanceRow struct {
	AccountType string  `json:"account_type"`
	Total       float64 `json:"total"`
	Count       int64   `json:"count"`
}

// GET /api/savings/total-balance
func TotalBalanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}

		var rows []balanceRow
		if err := database.DB.Model(&models.Saving{}).
			Where("person_id = ?", person.ID).
			Select("account_type, SUM(current_balance) as total, COUNT(*) as count").
			Group("account_type").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute balances")
		}

		var total float64
		for _, r := range rows {
			total += r.Total
		}
		return c.JSON(fiber.Map{
			"total_balance": total,
			"by_type":       rows,
		})
	}
}

// GET /api/savings/:id
func GetSavingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		s, err := findOwnedSaving(person.ID, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(s)
	}
}

// PUT /api/savings/:id: the balance only moves through the ledger,
// never through direct edits.
func UpdateSavingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		s, err := findOwnedSaving(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		var body UpdateSavingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.AccountName != nil {
			s.AccountName = *body.AccountName
		}
		if body.AccountType != nil {
			s.AccountType = *body.AccountType
		}
		if body.TargetAmount != nil {
			s.TargetAmount = body.TargetAmount
		}
		if body.InterestRate != nil {
			s.InterestRate = body.InterestRate
		}
		if body.Currency != nil {
			s.Currency = *body.Currency
		}

		if err := database.DB.Save(s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update saving account")
		}
		return c.JSON(s)
	}
}

// DELETE /api/savings/:id: the ledger goes with the account
func DeleteSavingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		s, err := findOwnedSaving(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&models.SavingTransaction{}, "saving_id = ?", s.ID).Error; err != nil {
				return err
			}
			return tx.Delete(s).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete saving account")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/savings/:id/progress
func SavingProgressHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		s, err := findOwnedSaving(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"saving_id":       s.ID,
			"account_name":    s.AccountName,
			"current_balance": s.CurrentBalance,
			"target_amount":   s.TargetAmount,
			"progress":        GoalProgress(s),
		})
	}
}

// GET /api/savings/:id/transactions
func ListTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		s, err := findOwnedSaving(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		var txs []models.SavingTransaction
		if err := database.DB.
			Where("saving_id = ?", s.ID).
			Order("transaction_date desc, id desc").
			Find(&txs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list transactions")
		}
		return c.JSON(txs)
	}
}

// POST /api/savings/:id/transactions
func CreateTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		s, err := findOwnedSaving(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		var body CreateTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		date := time.Now()
		if body.TransactionDate != nil && *body.TransactionDate != "" {
			d, err := time.Parse("2006-01-02", *body.TransactionDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "transaction_date must be YYYY-MM-DD")
			}
			date = d
		}

		entry, err := BuildLedgerEntry(s, models.SavingTransactionType(body.TransactionType), body.Amount, date, body.Description)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := applyTransaction(s, entry); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not record transaction")
		}

		activity.Record(person.ID, "saving", s.ID, models.ActivityActionUpdate,
			string(entry.TransactionType)+" on "+s.AccountName)
		return c.Status(fiber.StatusCreated).JSON(entry)
	}
}

// depositWithdraw reads amount/date/description from query parameters.
func depositWithdraw(txType models.SavingTransactionType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		s, err := findOwnedSaving(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		amount := c.QueryFloat("amount")
		date := time.Now()
		if d := c.Query("date"); d != "" {
			parsed, err := time.Parse("2006-01-02", d)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
			}
			date = parsed
		}

		entry, err := BuildLedgerEntry(s, txType, amount, date, c.Query("description"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := applyTransaction(s, entry); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not record transaction")
		}

		activity.Record(person.ID, "saving", s.ID, models.ActivityActionUpdate,
			string(entry.TransactionType)+" on "+s.AccountName)
		return c.JSON(entry)
	}
}

// POST /api/savings/:id/deposit?amount=&date=&description=
func DepositHandler() fiber.Handler {
	return depositWithdraw(models.SavingTxDeposit)
}

// POST /api/savings/:id/withdraw?amount=&date=&description=
func WithdrawHandler() fiber.Handler {
	return depositWithdraw(models.SavingTxWithdrawal)
}

// DELETE /api/savings/:id/transactions/:txId: removes the ledger row
// and reverses its effect on the balance.
func DeleteTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := auth.CurrentPerson(c)
		if err != nil {
			return err
		}
		s, err := findOwnedSaving(person.ID, c.Params("id"))
		if err != nil {
			return err
		}

		var entry models.SavingTransaction
		if err := database.DB.First(&entry, "id = ? AND saving_id = ?", c.Params("txId"), s.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
		}

		newBalance := s.CurrentBalance + ReverseEffect(&entry)
		if newBalance < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Reversing this transaction would make the balance negative")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&entry).Error; err != nil {
				return err
			}
			return tx.Model(&models.Saving{}).
				Where("id = ?", s.ID).
				Update("current_balance", newBalance).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete transaction")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
