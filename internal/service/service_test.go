package service

import (
	"fmt"
	"io"
	"log"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hr-performance-tracker/internal/auth"
	"hr-performance-tracker/internal/db"
	"hr-performance-tracker/internal/models"
)

var testDBCounter atomic.Int64

// newTestDB opens a fresh named in-memory SQLite database and runs the same
// migration and lookup seeding as production startup.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", testDBCounter.Add(1))
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))

	return database
}

func newTestServices(t *testing.T) (*gorm.DB, *RecordService, *ReportService) {
	t.Helper()

	database := newTestDB(t)
	audit := NewAuditLogger(database, log.New(io.Discard, "", 0))
	return database, NewRecordService(database, audit), NewReportService(database, audit)
}

func adminSession() auth.Session {
	return auth.Session{Token: "test-token", Username: "admin_user", Role: "admin"}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func seedEmployee(t *testing.T, database *gorm.DB, name, department string) models.Employee {
	t.Helper()

	employee := models.Employee{
		Name:           name,
		Email:          "test@example.com",
		Department:     department,
		Designation:    "Engineer",
		Salary:         decimal.NewFromInt(50000),
		JoiningDate:    date(2023, time.June, 1),
		EmploymentType: "Full-Time",
	}
	require.NoError(t, database.Create(&employee).Error)
	return employee
}

func countAuditEntries(t *testing.T, database *gorm.DB, actionType string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, database.Model(&models.AuditLog{}).Where("action_type = ?", actionType).Count(&count).Error)
	return count
}
