package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"hr-performance-tracker/internal/config"
	"hr-performance-tracker/internal/models"
)

func Connect(cfg config.Config) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormLogger,
	})
}

// Migrate creates the record tables, the audit trail and the lookup tables,
// then seeds the lookup values the forms enumerate.
func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(
		&models.Employee{},
		&models.Education{},
		&models.FamilyDetail{},
		&models.Task{},
		&models.Attendance{},
		&models.Recognition{},
		&models.Training{},
		&models.AuditLog{},
		&models.EmploymentType{},
		&models.TaskStatus{},
		&models.TaskPriority{},
		&models.AttendanceStatus{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return seedLookups(database)
}

func seedLookups(database *gorm.DB) error {
	employmentTypes := []models.EmploymentType{
		{Name: "Full-Time"}, {Name: "Part-Time"}, {Name: "Contract"}, {Name: "Intern"},
	}
	taskStatuses := []models.TaskStatus{
		{Name: "Not Started"}, {Name: "In Progress"}, {Name: "Completed"},
	}
	taskPriorities := []models.TaskPriority{
		{Name: "Low"}, {Name: "Medium"}, {Name: "High"},
	}
	attendanceStatuses := []models.AttendanceStatus{
		{Name: "Present"}, {Name: "Absent"}, {Name: "Leave"},
	}

	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}

	if err := database.Clauses(onConflict).Create(&employmentTypes).Error; err != nil {
		return fmt.Errorf("seed employment types: %w", err)
	}
	if err := database.Clauses(onConflict).Create(&taskStatuses).Error; err != nil {
		return fmt.Errorf("seed task statuses: %w", err)
	}
	if err := database.Clauses(onConflict).Create(&taskPriorities).Error; err != nil {
		return fmt.Errorf("seed task priorities: %w", err)
	}
	if err := database.Clauses(onConflict).Create(&attendanceStatuses).Error; err != nil {
		return fmt.Errorf("seed attendance statuses: %w", err)
	}
	return nil
}
