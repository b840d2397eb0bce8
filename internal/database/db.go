package database

import (
	"log"

	"lifetrack-backend/internal/config"
	"lifetrack-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Person{},
		&models.Goal{},
		&models.Task{},
		&models.SubTask{},
		&models.ProgressLog{},
		&models.ProgressLogTask{},
		&models.Milestone{},
		&models.Job{},
		&models.SalaryMonth{},
		&models.Expense{},
		&models.IncomeSource{},
		&models.Saving{},
		&models.SavingTransaction{},
		&models.Budget{},
		&models.ActivityLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connected, migration complete.")
}
