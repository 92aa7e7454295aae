package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"hr-performance-tracker/internal/auth"
)

type CreateEmployeeInput struct {
	Name           string
	Email          string
	Phone          string
	Address        string
	Department     string
	Designation    string
	ManagerID      *uint
	Salary         decimal.Decimal
	JoiningDate    time.Time
	EmploymentType string
}

type CreateEducationInput struct {
	EmployeeName string
	Degree       string
	Institution  string
	YearOfPass   int
	Grade        string
}

type CreateFamilyDetailInput struct {
	EmployeeName string
	Name         string
	Relationship string
	Contact      string
}

type CreateTaskInput struct {
	EmployeeName string
	Description  string
	AssignedDate time.Time
	Deadline     time.Time
	Status       string
	Priority     string
}

type CreateAttendanceInput struct {
	EmployeeName string
	Date         time.Time
	Status       string
}

type CreateRecognitionInput struct {
	EmployeeName string
	Award        string
	Description  string
	AwardDate    time.Time
}

type CreateTrainingInput struct {
	EmployeeName string
	Program      string
	StartDate    time.Time
	EndDate      time.Time
	Outcome      string
}

type EmployeeDTO struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone,omitempty"`
	Address        string          `json:"address,omitempty"`
	Department     string          `json:"department"`
	Designation    string          `json:"designation"`
	ManagerID      *uint           `json:"manager_id,omitempty"`
	Salary         decimal.Decimal `json:"salary"`
	JoiningDate    string          `json:"joining_date"`
	EmploymentType string          `json:"employment_type"`
	CreatedAt      time.Time       `json:"created_at"`
}

type EducationDTO struct {
	ID           uint      `json:"id"`
	EmployeeID   uint      `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Degree       string    `json:"degree"`
	Institution  string    `json:"institution"`
	YearOfPass   int       `json:"year_of_pass"`
	Grade        string    `json:"grade,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type FamilyDetailDTO struct {
	ID           uint      `json:"id"`
	EmployeeID   uint      `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Name         string    `json:"name"`
	Relationship string    `json:"relationship"`
	Contact      string    `json:"contact,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type TaskDTO struct {
	ID           uint      `json:"id"`
	EmployeeID   uint      `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Description  string    `json:"description"`
	AssignedDate string    `json:"assigned_date"`
	Deadline     string    `json:"deadline"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	CreatedAt    time.Time `json:"created_at"`
}

type AttendanceDTO struct {
	ID           uint      `json:"id"`
	EmployeeID   uint      `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Date         string    `json:"date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type RecognitionDTO struct {
	ID           uint      `json:"id"`
	EmployeeID   uint      `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Award        string    `json:"award"`
	Description  string    `json:"description,omitempty"`
	AwardDate    string    `json:"award_date"`
	CreatedAt    time.Time `json:"created_at"`
}

type TrainingDTO struct {
	ID           uint      `json:"id"`
	EmployeeID   uint      `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Program      string    `json:"program"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	Outcome      string    `json:"outcome,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type AuditEntryDTO struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	ActionType  string    `json:"action_type"`
	Description string    `json:"description"`
	Details     string    `json:"details,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type LookupsDTO struct {
	EmploymentTypes    []string `json:"employment_types"`
	TaskStatuses       []string `json:"task_statuses"`
	TaskPriorities     []string `json:"task_priorities"`
	AttendanceStatuses []string `json:"attendance_statuses"`
}

type MonthlyAttendancePoint struct {
	Month          string  `json:"month"`
	TotalRecords   int64   `json:"total_records"`
	PresentCount   int64   `json:"present_count"`
	PresentPercent float64 `json:"present_percent"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

// Recorder is the form-controller surface: one create per record kind, the
// task status update, and the view listings.
type Recorder interface {
	CreateEmployee(ctx context.Context, session auth.Session, input CreateEmployeeInput) (EmployeeDTO, error)
	CreateEducation(ctx context.Context, session auth.Session, input CreateEducationInput) (EducationDTO, error)
	CreateFamilyDetail(ctx context.Context, session auth.Session, input CreateFamilyDetailInput) (FamilyDetailDTO, error)
	CreateTask(ctx context.Context, session auth.Session, input CreateTaskInput) (TaskDTO, error)
	CreateAttendance(ctx context.Context, session auth.Session, input CreateAttendanceInput) (AttendanceDTO, error)
	CreateRecognition(ctx context.Context, session auth.Session, input CreateRecognitionInput) (RecognitionDTO, error)
	CreateTraining(ctx context.Context, session auth.Session, input CreateTrainingInput) (TrainingDTO, error)
	UpdateTaskStatus(ctx context.Context, session auth.Session, taskID uint, status string) (TaskDTO, error)

	ListEmployees(ctx context.Context) ([]EmployeeDTO, error)
	ListEducation(ctx context.Context) ([]EducationDTO, error)
	ListFamilyDetails(ctx context.Context) ([]FamilyDetailDTO, error)
	ListTasks(ctx context.Context) ([]TaskDTO, error)
	ListAttendance(ctx context.Context) ([]AttendanceDTO, error)
	ListRecognitions(ctx context.Context) ([]RecognitionDTO, error)
	ListTrainings(ctx context.Context) ([]TrainingDTO, error)
	ListAuditLog(ctx context.Context) ([]AuditEntryDTO, error)
	Lookups(ctx context.Context) (LookupsDTO, error)
}

// Reporter serves the three analytics charts.
type Reporter interface {
	MonthlyAttendanceTrend(ctx context.Context, session auth.Session) ([]MonthlyAttendancePoint, error)
	TaskStatusDistribution(ctx context.Context, session auth.Session) ([]StatusCount, error)
	DepartmentDistribution(ctx context.Context, session auth.Session) ([]DepartmentCount, error)
}
