package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-performance-tracker/internal/apperror"
	"hr-performance-tracker/internal/models"
)

func TestCreateEmployeeInsertsOneRowAndOneAuditEntry(t *testing.T) {
	database, records, _ := newTestServices(t)
	ctx := context.Background()

	dto, err := records.CreateEmployee(ctx, adminSession(), CreateEmployeeInput{
		Name:           "Asha Verma",
		Email:          "asha.verma@example.com",
		Department:     "Engineering",
		Designation:    "Senior Engineer",
		Salary:         decimal.NewFromInt(75000),
		JoiningDate:    date(2024, time.January, 15),
		EmploymentType: "Full-Time",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", dto.Name)
	assert.Equal(t, "2024-01-15", dto.JoiningDate)

	var count int64
	require.NoError(t, database.Model(&models.Employee{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var employee models.Employee
	require.NoError(t, database.First(&employee, dto.ID).Error)
	assert.Equal(t, "Asha Verma", employee.Name)
	assert.Equal(t, "Engineering", employee.Department)
	assert.True(t, employee.Salary.Equal(decimal.NewFromInt(75000)), "salary %s", employee.Salary)

	assert.Equal(t, int64(1), countAuditEntries(t, database, "Add Employee"))

	var entry models.AuditLog
	require.NoError(t, database.Where("action_type = ?", "Add Employee").First(&entry).Error)
	assert.Equal(t, "admin_user", entry.Username)
	assert.Equal(t, "admin", entry.Role)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestCreateEmployeeRejectsNegativeSalary(t *testing.T) {
	database, records, _ := newTestServices(t)

	_, err := records.CreateEmployee(context.Background(), adminSession(), CreateEmployeeInput{
		Name:           "Asha Verma",
		Email:          "asha.verma@example.com",
		Department:     "Engineering",
		Designation:    "Senior Engineer",
		Salary:         decimal.NewFromInt(-1),
		JoiningDate:    date(2024, time.January, 15),
		EmploymentType: "Full-Time",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
	assert.Equal(t, int64(0), countAuditEntries(t, database, "Add Employee"))
}

func TestCreateEmployeeRejectsUnknownEmploymentType(t *testing.T) {
	_, records, _ := newTestServices(t)

	_, err := records.CreateEmployee(context.Background(), adminSession(), CreateEmployeeInput{
		Name:           "Asha Verma",
		Email:          "asha.verma@example.com",
		Department:     "Engineering",
		Designation:    "Senior Engineer",
		Salary:         decimal.NewFromInt(75000),
		JoiningDate:    date(2024, time.January, 15),
		EmploymentType: "Gig",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
}

func TestCreateEducationResolvesEmployeeByName(t *testing.T) {
	database, records, _ := newTestServices(t)
	employee := seedEmployee(t, database, "Asha Verma", "Engineering")

	dto, err := records.CreateEducation(context.Background(), adminSession(), CreateEducationInput{
		EmployeeName: "Asha Verma",
		Degree:       "B.Tech",
		Institution:  "IIT Delhi",
		YearOfPass:   2016,
		Grade:        "A",
	})
	require.NoError(t, err)
	assert.Equal(t, employee.ID, dto.EmployeeID)
	assert.Equal(t, "Asha Verma", dto.EmployeeName)
	assert.Equal(t, int64(1), countAuditEntries(t, database, "Add Education"))
}

func TestChildRecordUnknownEmployeeFailsExplicitly(t *testing.T) {
	database, records, _ := newTestServices(t)

	_, err := records.CreateEducation(context.Background(), adminSession(), CreateEducationInput{
		EmployeeName: "Nobody Here",
		Degree:       "B.Tech",
		Institution:  "IIT Delhi",
		YearOfPass:   2016,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeLookup, apperror.GetCode(err))

	// The failed submit must leave no trace: no row, no audit entry.
	var count int64
	require.NoError(t, database.Model(&models.Education{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, int64(0), countAuditEntries(t, database, "Add Education"))
}

func TestChildRecordAmbiguousEmployeeNameFails(t *testing.T) {
	database, records, _ := newTestServices(t)
	seedEmployee(t, database, "Asha Verma", "Engineering")
	seedEmployee(t, database, "Asha Verma", "Sales")

	_, err := records.CreateTask(context.Background(), adminSession(), CreateTaskInput{
		EmployeeName: "Asha Verma",
		Description:  "Quarterly report",
		AssignedDate: date(2024, time.March, 1),
		Deadline:     date(2024, time.March, 31),
		Status:       "Not Started",
		Priority:     "High",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeLookup, apperror.GetCode(err))
}

func TestEmployeeNameMatchIsCaseSensitive(t *testing.T) {
	database, records, _ := newTestServices(t)
	seedEmployee(t, database, "Asha Verma", "Engineering")

	_, err := records.CreateAttendance(context.Background(), adminSession(), CreateAttendanceInput{
		EmployeeName: "asha verma",
		Date:         date(2024, time.March, 4),
		Status:       "Present",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeLookup, apperror.GetCode(err))
}

func TestCreateTaskRejectsUnknownStatus(t *testing.T) {
	database, records, _ := newTestServices(t)
	seedEmployee(t, database, "Asha Verma", "Engineering")

	_, err := records.CreateTask(context.Background(), adminSession(), CreateTaskInput{
		EmployeeName: "Asha Verma",
		Description:  "Quarterly report",
		AssignedDate: date(2024, time.March, 1),
		Deadline:     date(2024, time.March, 31),
		Status:       "Done",
		Priority:     "High",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
}

func TestUpdateTaskStatusTwiceKeepsOneRowAndTwoAuditEntries(t *testing.T) {
	database, records, _ := newTestServices(t)
	seedEmployee(t, database, "Asha Verma", "Engineering")
	ctx := context.Background()

	task, err := records.CreateTask(ctx, adminSession(), CreateTaskInput{
		EmployeeName: "Asha Verma",
		Description:  "Quarterly report",
		AssignedDate: date(2024, time.March, 1),
		Deadline:     date(2024, time.March, 31),
		Status:       "Not Started",
		Priority:     "Medium",
	})
	require.NoError(t, err)

	_, err = records.UpdateTaskStatus(ctx, adminSession(), task.ID, "In Progress")
	require.NoError(t, err)
	updated, err := records.UpdateTaskStatus(ctx, adminSession(), task.ID, "Completed")
	require.NoError(t, err)
	assert.Equal(t, "Completed", updated.Status)

	var count int64
	require.NoError(t, database.Model(&models.Task{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var stored models.Task
	require.NoError(t, database.First(&stored, task.ID).Error)
	assert.Equal(t, "Completed", stored.Status)

	assert.Equal(t, int64(2), countAuditEntries(t, database, "Update Task Status"))
}

func TestUpdateTaskStatusUnknownTask(t *testing.T) {
	_, records, _ := newTestServices(t)

	_, err := records.UpdateTaskStatus(context.Background(), adminSession(), 42, "Completed")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))
}

func TestListTasksIncludesEmployeeName(t *testing.T) {
	database, records, _ := newTestServices(t)
	seedEmployee(t, database, "Asha Verma", "Engineering")
	ctx := context.Background()

	_, err := records.CreateTask(ctx, adminSession(), CreateTaskInput{
		EmployeeName: "Asha Verma",
		Description:  "Quarterly report",
		AssignedDate: date(2024, time.March, 1),
		Deadline:     date(2024, time.March, 31),
		Status:       "Not Started",
		Priority:     "Low",
	})
	require.NoError(t, err)

	tasks, err := records.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Asha Verma", tasks[0].EmployeeName)
	assert.Equal(t, "2024-03-31", tasks[0].Deadline)
}

func TestListAuditLogNewestFirst(t *testing.T) {
	database, records, _ := newTestServices(t)
	seedEmployee(t, database, "Asha Verma", "Engineering")
	ctx := context.Background()

	_, err := records.CreateAttendance(ctx, adminSession(), CreateAttendanceInput{
		EmployeeName: "Asha Verma",
		Date:         date(2024, time.March, 4),
		Status:       "Present",
	})
	require.NoError(t, err)
	_, err = records.CreateRecognition(ctx, adminSession(), CreateRecognitionInput{
		EmployeeName: "Asha Verma",
		Award:        "Employee of the Month",
		AwardDate:    date(2024, time.March, 31),
	})
	require.NoError(t, err)

	entries, err := records.ListAuditLog(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Add Recognition", entries[0].ActionType)
	assert.Equal(t, "Add Attendance", entries[1].ActionType)
}

func TestLookupsReturnSeededValues(t *testing.T) {
	_, records, _ := newTestServices(t)

	lookups, err := records.Lookups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Full-Time", "Part-Time", "Contract", "Intern"}, lookups.EmploymentTypes)
	assert.Equal(t, []string{"Not Started", "In Progress", "Completed"}, lookups.TaskStatuses)
	assert.Equal(t, []string{"Low", "Medium", "High"}, lookups.TaskPriorities)
	assert.Equal(t, []string{"Present", "Absent", "Leave"}, lookups.AttendanceStatuses)
}
