package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hr-performance-tracker/internal/models"
)

func seedAttendance(t *testing.T, database *gorm.DB, employeeID uint, day time.Time, status string) {
	t.Helper()
	require.NoError(t, database.Create(&models.Attendance{
		EmployeeID: employeeID,
		Date:       day,
		Status:     status,
	}).Error)
}

func TestMonthlyAttendanceTrendComputesPresentPercentages(t *testing.T) {
	database, _, reports := newTestServices(t)
	employee := seedEmployee(t, database, "Asha Verma", "Engineering")

	// 2024-01: 8 present out of 10, 2024-02: 9 present out of 9.
	for day := 1; day <= 8; day++ {
		seedAttendance(t, database, employee.ID, date(2024, time.January, day), "Present")
	}
	seedAttendance(t, database, employee.ID, date(2024, time.January, 9), "Absent")
	seedAttendance(t, database, employee.ID, date(2024, time.January, 10), "Leave")
	for day := 1; day <= 9; day++ {
		seedAttendance(t, database, employee.ID, date(2024, time.February, day), "Present")
	}

	points, err := reports.MonthlyAttendanceTrend(context.Background(), adminSession())
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, "2024-01", points[0].Month)
	assert.Equal(t, int64(10), points[0].TotalRecords)
	assert.Equal(t, int64(8), points[0].PresentCount)
	assert.InDelta(t, 80.0, points[0].PresentPercent, 0.001)

	assert.Equal(t, "2024-02", points[1].Month)
	assert.Equal(t, int64(9), points[1].TotalRecords)
	assert.Equal(t, int64(9), points[1].PresentCount)
	assert.InDelta(t, 100.0, points[1].PresentPercent, 0.001)

	assert.Equal(t, int64(1), countAuditEntries(t, database, "View Analytics"))
}

func TestMonthlyAttendanceTrendEmpty(t *testing.T) {
	_, _, reports := newTestServices(t)

	points, err := reports.MonthlyAttendanceTrend(context.Background(), adminSession())
	require.NoError(t, err)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestTaskStatusDistributionEmptyTable(t *testing.T) {
	database, _, reports := newTestServices(t)

	counts, err := reports.TaskStatusDistribution(context.Background(), adminSession())
	require.NoError(t, err)
	assert.NotNil(t, counts)
	assert.Empty(t, counts)

	// Viewing the empty chart is still an audited action.
	assert.Equal(t, int64(1), countAuditEntries(t, database, "View Analytics"))
}

func TestTaskStatusDistributionCountsPerStatus(t *testing.T) {
	database, _, reports := newTestServices(t)
	employee := seedEmployee(t, database, "Asha Verma", "Engineering")

	statuses := []string{"Completed", "Completed", "In Progress"}
	for _, status := range statuses {
		require.NoError(t, database.Create(&models.Task{
			EmployeeID:   employee.ID,
			Description:  "work item",
			AssignedDate: date(2024, time.March, 1),
			Deadline:     date(2024, time.March, 31),
			Status:       status,
			Priority:     "Medium",
		}).Error)
	}

	counts, err := reports.TaskStatusDistribution(context.Background(), adminSession())
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, StatusCount{Status: "Completed", Count: 2}, counts[0])
	assert.Equal(t, StatusCount{Status: "In Progress", Count: 1}, counts[1])
}

func TestDepartmentDistributionCountsPerDepartment(t *testing.T) {
	database, _, reports := newTestServices(t)
	seedEmployee(t, database, "Asha Verma", "Engineering")
	seedEmployee(t, database, "Ravi Iyer", "Engineering")
	seedEmployee(t, database, "Meera Nair", "Human Resources")

	counts, err := reports.DepartmentDistribution(context.Background(), adminSession())
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, DepartmentCount{Department: "Engineering", Count: 2}, counts[0])
	assert.Equal(t, DepartmentCount{Department: "Human Resources", Count: 1}, counts[1])
}
