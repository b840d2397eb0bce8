package main

import (
	"log"
	"strings"

	"lifetrack-backend/internal/activity"
	"lifetrack-backend/internal/analytics"
	"lifetrack-backend/internal/auth"
	"lifetrack-backend/internal/budget"
	"lifetrack-backend/internal/config"
	"lifetrack-backend/internal/database"
	"lifetrack-backend/internal/expense"
	"lifetrack-backend/internal/goal"
	"lifetrack-backend/internal/income"
	"lifetrack-backend/internal/job"
	"lifetrack-backend/internal/milestone"
	"lifetrack-backend/internal/progresslog"
	"lifetrack-backend/internal/salarymonth"
	"lifetrack-backend/internal/saving"
	"lifetrack-backend/internal/task"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/google", auth.GoogleAuthHandler(cfg))
	api.Post("/auth/refresh", auth.RefreshHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Put("/auth/me", auth.UpdateMeHandler())
	protected.Post("/auth/change-password", auth.ChangePasswordHandler())
	protected.Post("/auth/logout", auth.LogoutHandler())
	protected.Post("/auth/deactivate", auth.DeactivateHandler())

	// Goals
	protected.Post("/goals", goal.CreateGoalHandler())
	protected.Get("/goals", goal.ListGoalsHandler())
	protected.Get("/goals/:id", goal.GetGoalHandler())
	protected.Put("/goals/:id", goal.UpdateGoalHandler())
	protected.Delete("/goals/:id", goal.DeleteGoalHandler())
	protected.Post("/goals/:id/recalculate-progress", goal.RecalculateProgressHandler())
	protected.Post("/goals/:id/complete", goal.CompleteGoalHandler())
	protected.Get("/goals/:id/progress-details", goal.ProgressDetailsHandler())

	// Tasks
	protected.Post("/tasks", task.CreateTaskHandler())
	protected.Get("/tasks/goal/:goalId", task.ListTasksForGoalHandler())
	protected.Get("/tasks/goal/:goalId/statistics", task.GoalStatisticsHandler())
	protected.Get("/tasks/:id", task.GetTaskHandler())
	protected.Put("/tasks/:id", task.UpdateTaskHandler())
	protected.Delete("/tasks/:id", task.DeleteTaskHandler())
	protected.Post("/tasks/:id/mark_task", task.MarkTaskHandler())

	// Subtasks
	protected.Post("/subtasks", task.CreateSubTaskHandler())
	protected.Get("/subtasks/task/:taskId", task.ListSubTasksForTaskHandler())
	protected.Put("/subtasks/:id", task.UpdateSubTaskHandler())
	protected.Delete("/subtasks/:id", task.DeleteSubTaskHandler())
	protected.Post("/subtasks/:id/mark", task.MarkSubTaskHandler())

	// Progress logs
	protected.Post("/progress-logs", progresslog.CreateProgressLogHandler())
	protected.Get("/progress-logs/goal/:goalId", progresslog.ListGoalProgressLogsHandler())
	protected.Delete("/progress-logs/:id", progresslog.DeleteProgressLogHandler())
	protected.Post("/progress-logs/tasks", progresslog.CreateTaskLogHandler())
	protected.Get("/progress-logs/tasks/:taskId", progresslog.ListTaskLogsHandler())

	// Milestones
	protected.Post("/milestones", milestone.CreateMilestoneHandler())
	protected.Get("/milestones", milestone.ListMilestonesHandler())
	protected.Get("/milestones/goal/:goalId", milestone.ListGoalMilestonesHandler())
	protected.Get("/milestones/:id", milestone.GetMilestoneHandler())
	protected.Put("/milestones/:id", milestone.UpdateMilestoneHandler())
	protected.Delete("/milestones/:id", milestone.DeleteMilestoneHandler())
	protected.Post("/milestones/:id/mark", milestone.MarkMilestoneHandler())

	// Jobs
	protected.Post("/jobs", job.CreateJobHandler())
	protected.Get("/jobs", job.ListJobsHandler())
	protected.Get("/jobs/active", job.ListActiveJobsHandler())
	protected.Get("/jobs/:id", job.GetJobHandler())
	protected.Put("/jobs/:id", job.UpdateJobHandler())
	protected.Delete("/jobs/:id", job.DeleteJobHandler())
	protected.Post("/jobs/:id/deactivate", job.DeactivateJobHandler())
	protected.Get("/jobs/:id/salary-months", job.ListJobSalaryMonthsHandler())
	protected.Post("/jobs/:id/generate-salary-months", job.GenerateSalaryMonthsHandler())

	// Salary months
	protected.Post("/salary-months", salarymonth.CreateSalaryMonthHandler())
	protected.Get("/salary-months", salarymonth.ListSalaryMonthsHandler())
	protected.Get("/salary-months/current", salarymonth.CurrentSalaryMonthsHandler())
	protected.Post("/salary-months/generate-current", salarymonth.GenerateCurrentHandler())
	protected.Get("/salary-months/:id", salarymonth.GetSalaryMonthHandler())
	protected.Put("/salary-months/:id", salarymonth.UpdateSalaryMonthHandler())
	protected.Delete("/salary-months/:id", salarymonth.DeleteSalaryMonthHandler())
	protected.Get("/salary-months/:id/expenses", salarymonth.ListLinkedExpensesHandler())
	protected.Post("/salary-months/:id/recalculate", salarymonth.RecalculateSalaryMonthHandler())

	// Expenses
	protected.Post("/expenses", expense.CreateExpenseHandler())
	protected.Get("/expenses", expense.ListExpensesHandler())
	protected.Get("/expenses/current-month", expense.CurrentMonthExpensesHandler())
	protected.Get("/expenses/by-category/:category", expense.ExpensesByCategoryHandler())
	protected.Get("/expenses/recurring", expense.RecurringExpensesHandler())
	protected.Get("/expenses/top", expense.TopExpensesHandler())
	protected.Get("/expenses/category-summary", expense.CategorySummaryHandler())
	protected.Get("/expenses/:id", expense.GetExpenseHandler())
	protected.Put("/expenses/:id", expense.UpdateExpenseHandler())
	protected.Delete("/expenses/:id", expense.DeleteExpenseHandler())

	// Budgets
	protected.Post("/budgets", budget.CreateBudgetHandler())
	protected.Get("/budgets", budget.ListBudgetsHandler())
	protected.Get("/budgets/current-month", budget.CurrentMonthBudgetsHandler())
	protected.Post("/budgets/monthly-template", budget.MonthlyTemplateHandler())
	protected.Get("/budgets/period/:period/summary", budget.PeriodSummaryHandler())
	protected.Get("/budgets/:id", budget.GetBudgetHandler())
	protected.Put("/budgets/:id", budget.UpdateBudgetHandler())
	protected.Delete("/budgets/:id", budget.DeleteBudgetHandler())
	protected.Post("/budgets/:id/recalculate", budget.RecalculateBudgetHandler())
	protected.Get("/budgets/:id/adherence", budget.BudgetAdherenceHandler())

	// Savings
	protected.Post("/savings", saving.CreateSavingHandler())
	protected.Get("/savings", saving.ListSavingsHandler())
	protected.Get("/savings/total-balance", saving.TotalBalanceHandler())
	protected.Get("/savings/:id", saving.GetSavingHandler())
	protected.Put("/savings/:id", saving.UpdateSavingHandler())
	protected.Delete("/savings/:id", saving.DeleteSavingHandler())
	protected.Get("/savings/:id/progress", saving.SavingProgressHandler())
	protected.Get("/savings/:id/transactions", saving.ListTransactionsHandler())
	protected.Post("/savings/:id/transactions", saving.CreateTransactionHandler())
	protected.Post("/savings/:id/deposit", saving.DepositHandler())
	protected.Post("/savings/:id/withdraw", saving.WithdrawHandler())
	protected.Delete("/savings/:id/transactions/:txId", saving.DeleteTransactionHandler())

	// Income sources
	protected.Post("/income-sources", income.CreateIncomeSourceHandler())
	protected.Get("/income-sources", income.ListIncomeSourcesHandler())
	protected.Get("/income-sources/current-month", income.CurrentMonthIncomeHandler())
	protected.Get("/income-sources/by-type/:type", income.IncomeByTypeHandler())
	protected.Get("/income-sources/type-summary", income.TypeSummaryHandler())
	protected.Get("/income-sources/period-total", income.PeriodTotalHandler())
	protected.Get("/income-sources/:id", income.GetIncomeSourceHandler())
	protected.Put("/income-sources/:id", income.UpdateIncomeSourceHandler())
	protected.Delete("/income-sources/:id", income.DeleteIncomeSourceHandler())

	// Analytics
	protected.Get("/analytics/monthly-summary/:month", analytics.MonthlySummaryHandler())
	protected.Get("/analytics/monthly-report/:month", analytics.MonthlyReportHandler())
	protected.Get("/analytics/net-worth", analytics.NetWorthHandler())
	protected.Get("/analytics/spending-trends", analytics.SpendingTrendsHandler())
	protected.Get("/analytics/category-analysis", analytics.CategoryAnalysisHandler())
	protected.Get("/analytics/savings-growth", analytics.SavingsGrowthHandler())
	protected.Get("/analytics/income-vs-expenses", analytics.IncomeVsExpensesHandler())

	// Activity logs
	protected.Get("/activity-logs", activity.ListActivityLogsHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
