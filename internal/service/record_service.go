package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"hr-performance-tracker/internal/apperror"
	"hr-performance-tracker/internal/auth"
	"hr-performance-tracker/internal/models"
)

const dateLayout = "2006-01-02"

// RecordService implements the form-to-insert workflow for every record kind.
// Each submit is a single parameterized statement; there are no retries and
// no partial writes.
type RecordService struct {
	db    *gorm.DB
	audit *AuditLogger
}

func NewRecordService(db *gorm.DB, audit *AuditLogger) *RecordService {
	return &RecordService{
		db:    db,
		audit: audit,
	}
}

func (s *RecordService) CreateEmployee(ctx context.Context, session auth.Session, input CreateEmployeeInput) (EmployeeDTO, error) {
	name, err := normalizeRequiredString(input.Name, "name")
	if err != nil {
		return EmployeeDTO{}, err
	}
	email, err := normalizeRequiredString(input.Email, "email")
	if err != nil {
		return EmployeeDTO{}, err
	}
	department, err := normalizeRequiredString(input.Department, "department")
	if err != nil {
		return EmployeeDTO{}, err
	}
	designation, err := normalizeRequiredString(input.Designation, "designation")
	if err != nil {
		return EmployeeDTO{}, err
	}

	if input.Salary.IsNegative() {
		return EmployeeDTO{}, apperror.New(apperror.CodeValidation, "salary must be non-negative")
	}
	if input.JoiningDate.IsZero() {
		return EmployeeDTO{}, apperror.New(apperror.CodeValidation, "joining_date is required")
	}
	if err := s.ensureLookupValue(ctx, &models.EmploymentType{}, input.EmploymentType, "employment_type"); err != nil {
		return EmployeeDTO{}, err
	}

	if input.ManagerID != nil {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Employee{}).Where("id = ?", *input.ManagerID).Count(&count).Error; err != nil {
			return EmployeeDTO{}, fmt.Errorf("check manager existence: %w", err)
		}
		if count == 0 {
			return EmployeeDTO{}, apperror.New(apperror.CodeLookup, "manager not found")
		}
	}

	employee := models.Employee{
		Name:           name,
		Email:          email,
		Phone:          strings.TrimSpace(input.Phone),
		Address:        strings.TrimSpace(input.Address),
		Department:     department,
		Designation:    designation,
		ManagerID:      input.ManagerID,
		Salary:         input.Salary,
		JoiningDate:    input.JoiningDate,
		EmploymentType: input.EmploymentType,
	}

	if err := s.db.WithContext(ctx).Create(&employee).Error; err != nil {
		return EmployeeDTO{}, mapDatabaseError(err)
	}

	s.audit.Log(ctx, session.Username, session.Role, "Add Employee",
		"Added a new employee record",
		fmt.Sprintf("name=%s department=%s", employee.Name, employee.Department))

	return employeeToDTO(employee), nil
}

func (s *RecordService) CreateEducation(ctx context.Context, session auth.Session, input CreateEducationInput) (EducationDTO, error) {
	degree, err := normalizeRequiredString(input.Degree, "degree")
	if err != nil {
		return EducationDTO{}, err
	}
	institution, err := normalizeRequiredString(input.Institution, "institution")
	if err != nil {
		return EducationDTO{}, err
	}
	if input.YearOfPass < 1900 || input.YearOfPass > 2100 {
		return EducationDTO{}, apperror.New(apperror.CodeValidation, "year_of_pass must be between 1900 and 2100")
	}

	employee, err := s.resolveEmployeeByName(ctx, input.EmployeeName)
	if err != nil {
		return EducationDTO{}, err
	}

	education := models.Education{
		EmployeeID:  employee.ID,
		Degree:      degree,
		Institution: institution,
		YearOfPass:  input.YearOfPass,
		Grade:       strings.TrimSpace(input.Grade),
	}

	if err := s.db.WithContext(ctx).Create(&education).Error; err != nil {
		return EducationDTO{}, mapDatabaseError(err)
	}

	s.audit.Log(ctx, session.Username, session.Role, "Add Education",
		"Added an education record",
		fmt.Sprintf("employee=%s degree=%s", employee.Name, education.Degree))

	return educationToDTO(education, employee.Name), nil
}

func (s *RecordService) CreateFamilyDetail(ctx context.Context, session auth.Session, input CreateFamilyDetailInput) (FamilyDetailDTO, error) {
	name, err := normalizeRequiredString(input.Name, "name")
	if err != nil {
		return FamilyDetailDTO{}, err
	}
	relationship, err := normalizeRequiredString(input.Relationship, "relationship")
	if err != nil {
		return FamilyDetailDTO{}, err
	}

	employee, err := s.resolveEmployeeByName(ctx, input.EmployeeName)
	if err != nil {
		return FamilyDetailDTO{}, err
	}

	familyDetail := models.FamilyDetail{
		EmployeeID:   employee.ID,
		Name:         name,
		Relationship: relationship,
		Contact:      strings.TrimSpace(input.Contact),
	}

	if err := s.db.WithContext(ctx).Create(&familyDetail).Error; err != nil {
		return FamilyDetailDTO{}, mapDatabaseError(err)
	}

	s.audit.Log(ctx, session.Username, session.Role, "Add Family Details",
		"Added a family detail record",
		fmt.Sprintf("employee=%s relation=%s", employee.Name, familyDetail.Relationship))

	return familyDetailToDTO(familyDetail, employee.Name), nil
}

func (s *RecordService) CreateTask(ctx context.Context, session auth.Session, input CreateTaskInput) (TaskDTO, error) {
	description, err := normalizeRequiredString(input.Description, "description")
	if err != nil {
		return TaskDTO{}, err
	}
	if input.AssignedDate.IsZero() || input.Deadline.IsZero() {
		return TaskDTO{}, apperror.New(apperror.CodeValidation, "assigned_date and deadline are required")
	}
	if err := s.ensureLookupValue(ctx, &models.TaskStatus{}, input.Status, "status"); err != nil {
		return TaskDTO{}, err
	}
	if err := s.ensureLookupValue(ctx, &models.TaskPriority{}, input.Priority, "priority"); err != nil {
		return TaskDTO{}, err
	}

	employee, err := s.resolveEmployeeByName(ctx, input.EmployeeName)
	if err != nil {
		return TaskDTO{}, err
	}

	task := models.Task{
		EmployeeID:   employee.ID,
		Description:  description,
		AssignedDate: input.AssignedDate,
		Deadline:     input.Deadline,
		Status:       input.Status,
		Priority:     input.Priority,
	}

	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return TaskDTO{}, mapDatabaseError(err)
	}

	s.audit.Log(ctx, session.Username, session.Role, "Add Task",
		"Added a task record",
		fmt.Sprintf("employee=%s status=%s priority=%s", employee.Name, task.Status, task.Priority))

	return taskToDTO(task, employee.Name), nil
}

func (s *RecordService) CreateAttendance(ctx context.Context, session auth.Session, input CreateAttendanceInput) (AttendanceDTO, error) {
	if input.Date.IsZero() {
		return AttendanceDTO{}, apperror.New(apperror.CodeValidation, "date is required")
	}
	if err := s.ensureLookupValue(ctx, &models.AttendanceStatus{}, input.Status, "status"); err != nil {
		return AttendanceDTO{}, err
	}

	employee, err := s.resolveEmployeeByName(ctx, input.EmployeeName)
	if err != nil {
		return AttendanceDTO{}, err
	}

	attendance := models.Attendance{
		EmployeeID: employee.ID,
		Date:       input.Date,
		Status:     input.Status,
	}

	if err := s.db.WithContext(ctx).Create(&attendance).Error; err != nil {
		return AttendanceDTO{}, mapDatabaseError(err)
	}

	s.audit.Log(ctx, session.Username, session.Role, "Add Attendance",
		"Added an attendance record",
		fmt.Sprintf("employee=%s date=%s status=%s", employee.Name, attendance.Date.Format(dateLayout), attendance.Status))

	return attendanceToDTO(attendance, employee.Name), nil
}

func (s *RecordService) CreateRecognition(ctx context.Context, session auth.Session, input CreateRecognitionInput) (RecognitionDTO, error) {
	award, err := normalizeRequiredString(input.Award, "award")
	if err != nil {
		return RecognitionDTO{}, err
	}
	if input.AwardDate.IsZero() {
		return RecognitionDTO{}, apperror.New(apperror.CodeValidation, "award_date is required")
	}

	employee, err := s.resolveEmployeeByName(ctx, input.EmployeeName)
	if err != nil {
		return RecognitionDTO{}, err
	}

	recognition := models.Recognition{
		EmployeeID:  employee.ID,
		Award:       award,
		Description: strings.TrimSpace(input.Description),
		AwardDate:   input.AwardDate,
	}

	if err := s.db.WithContext(ctx).Create(&recognition).Error; err != nil {
		return RecognitionDTO{}, mapDatabaseError(err)
	}

	s.audit.Log(ctx, session.Username, session.Role, "Add Recognition",
		"Added a recognition record",
		fmt.Sprintf("employee=%s award=%s", employee.Name, recognition.Award))

	return recognitionToDTO(recognition, employee.Name), nil
}

func (s *RecordService) CreateTraining(ctx context.Context, session auth.Session, input CreateTrainingInput) (TrainingDTO, error) {
	program, err := normalizeRequiredString(input.Program, "program")
	if err != nil {
		return TrainingDTO{}, err
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return TrainingDTO{}, apperror.New(apperror.CodeValidation, "start_date and end_date are required")
	}
	if input.EndDate.Before(input.StartDate) {
		return TrainingDTO{}, apperror.New(apperror.CodeValidation, "end_date must not be before start_date")
	}

	employee, err := s.resolveEmployeeByName(ctx, input.EmployeeName)
	if err != nil {
		return TrainingDTO{}, err
	}

	training := models.Training{
		EmployeeID: employee.ID,
		Program:    program,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Outcome:    strings.TrimSpace(input.Outcome),
	}

	if err := s.db.WithContext(ctx).Create(&training).Error; err != nil {
		return TrainingDTO{}, mapDatabaseError(err)
	}

	s.audit.Log(ctx, session.Username, session.Role, "Add Training",
		"Added a training record",
		fmt.Sprintf("employee=%s program=%s", employee.Name, training.Program))

	return trainingToDTO(training, employee.Name), nil
}

// UpdateTaskStatus is keyed by task id with no concurrency token: the last
// writer wins.
func (s *RecordService) UpdateTaskStatus(ctx context.Context, session auth.Session, taskID uint, status string) (TaskDTO, error) {
	if err := s.ensureLookupValue(ctx, &models.TaskStatus{}, status, "status"); err != nil {
		return TaskDTO{}, err
	}

	var task models.Task
	if err := s.db.WithContext(ctx).Preload("Employee").First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskDTO{}, apperror.New(apperror.CodeNotFound, "task not found")
		}
		return TaskDTO{}, fmt.Errorf("load task: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&task).Update("status", status).Error; err != nil {
		return TaskDTO{}, mapDatabaseError(err)
	}

	s.audit.Log(ctx, session.Username, session.Role, "Update Task Status",
		"Updated a task status",
		fmt.Sprintf("task_id=%d status=%s", task.ID, status))

	task.Status = status
	return taskToDTO(task, task.Employee.Name), nil
}

func (s *RecordService) ListEmployees(ctx context.Context) ([]EmployeeDTO, error) {
	var employees []models.Employee
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}

	result := make([]EmployeeDTO, 0, len(employees))
	for _, employee := range employees {
		result = append(result, employeeToDTO(employee))
	}
	return result, nil
}

func (s *RecordService) ListEducation(ctx context.Context) ([]EducationDTO, error) {
	var records []models.Education
	if err := s.db.WithContext(ctx).Preload("Employee").Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load education records: %w", err)
	}

	result := make([]EducationDTO, 0, len(records))
	for _, record := range records {
		result = append(result, educationToDTO(record, record.Employee.Name))
	}
	return result, nil
}

func (s *RecordService) ListFamilyDetails(ctx context.Context) ([]FamilyDetailDTO, error) {
	var records []models.FamilyDetail
	if err := s.db.WithContext(ctx).Preload("Employee").Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load family details: %w", err)
	}

	result := make([]FamilyDetailDTO, 0, len(records))
	for _, record := range records {
		result = append(result, familyDetailToDTO(record, record.Employee.Name))
	}
	return result, nil
}

func (s *RecordService) ListTasks(ctx context.Context) ([]TaskDTO, error) {
	var records []models.Task
	if err := s.db.WithContext(ctx).Preload("Employee").Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	result := make([]TaskDTO, 0, len(records))
	for _, record := range records {
		result = append(result, taskToDTO(record, record.Employee.Name))
	}
	return result, nil
}

func (s *RecordService) ListAttendance(ctx context.Context) ([]AttendanceDTO, error) {
	var records []models.Attendance
	if err := s.db.WithContext(ctx).Preload("Employee").Order("date ASC, id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load attendance records: %w", err)
	}

	result := make([]AttendanceDTO, 0, len(records))
	for _, record := range records {
		result = append(result, attendanceToDTO(record, record.Employee.Name))
	}
	return result, nil
}

func (s *RecordService) ListRecognitions(ctx context.Context) ([]RecognitionDTO, error) {
	var records []models.Recognition
	if err := s.db.WithContext(ctx).Preload("Employee").Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load recognition records: %w", err)
	}

	result := make([]RecognitionDTO, 0, len(records))
	for _, record := range records {
		result = append(result, recognitionToDTO(record, record.Employee.Name))
	}
	return result, nil
}

func (s *RecordService) ListTrainings(ctx context.Context) ([]TrainingDTO, error) {
	var records []models.Training
	if err := s.db.WithContext(ctx).Preload("Employee").Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load training records: %w", err)
	}

	result := make([]TrainingDTO, 0, len(records))
	for _, record := range records {
		result = append(result, trainingToDTO(record, record.Employee.Name))
	}
	return result, nil
}

func (s *RecordService) ListAuditLog(ctx context.Context) ([]AuditEntryDTO, error) {
	var entries []models.AuditLog
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("load audit log: %w", err)
	}

	result := make([]AuditEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, AuditEntryDTO{
			ID:          entry.ID,
			Username:    entry.Username,
			Role:        entry.Role,
			ActionType:  entry.ActionType,
			Description: entry.Description,
			Details:     entry.Details,
			Timestamp:   entry.CreatedAt,
		})
	}
	return result, nil
}

// Lookups returns the live enumerated values feeding the form selects.
func (s *RecordService) Lookups(ctx context.Context) (LookupsDTO, error) {
	var result LookupsDTO

	if err := s.db.WithContext(ctx).Model(&models.EmploymentType{}).Order("id ASC").Pluck("name", &result.EmploymentTypes).Error; err != nil {
		return LookupsDTO{}, fmt.Errorf("load employment types: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&models.TaskStatus{}).Order("id ASC").Pluck("name", &result.TaskStatuses).Error; err != nil {
		return LookupsDTO{}, fmt.Errorf("load task statuses: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&models.TaskPriority{}).Order("id ASC").Pluck("name", &result.TaskPriorities).Error; err != nil {
		return LookupsDTO{}, fmt.Errorf("load task priorities: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&models.AttendanceStatus{}).Order("id ASC").Pluck("name", &result.AttendanceStatuses).Error; err != nil {
		return LookupsDTO{}, fmt.Errorf("load attendance statuses: %w", err)
	}

	return result, nil
}

// resolveEmployeeByName maps the submitted owner name to exactly one employee.
// An exact case-sensitive match is required; zero or multiple matches fail
// explicitly instead of silently inserting zero or duplicate rows.
func (s *RecordService) resolveEmployeeByName(ctx context.Context, rawName string) (models.Employee, error) {
	name, err := normalizeRequiredString(rawName, "employee_name")
	if err != nil {
		return models.Employee{}, err
	}

	var matches []models.Employee
	if err := s.db.WithContext(ctx).Where("name = ?", name).Limit(2).Find(&matches).Error; err != nil {
		return models.Employee{}, fmt.Errorf("resolve employee by name: %w", err)
	}

	switch len(matches) {
	case 0:
		return models.Employee{}, apperror.New(apperror.CodeLookup, fmt.Sprintf("no employee found with name %q", name))
	case 1:
		return matches[0], nil
	default:
		return models.Employee{}, apperror.New(apperror.CodeLookup, fmt.Sprintf("employee name %q matches multiple records", name))
	}
}

func (s *RecordService) ensureLookupValue(ctx context.Context, lookupModel interface{}, value string, field string) error {
	if strings.TrimSpace(value) == "" {
		return apperror.New(apperror.CodeValidation, fmt.Sprintf("%s is required", field))
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(lookupModel).Where("name = ?", value).Count(&count).Error; err != nil {
		return fmt.Errorf("check %s lookup: %w", field, err)
	}
	if count == 0 {
		return apperror.New(apperror.CodeValidation, fmt.Sprintf("%s must be one of the configured values", field))
	}
	return nil
}

func employeeToDTO(employee models.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:             employee.ID,
		Name:           employee.Name,
		Email:          employee.Email,
		Phone:          employee.Phone,
		Address:        employee.Address,
		Department:     employee.Department,
		Designation:    employee.Designation,
		ManagerID:      employee.ManagerID,
		Salary:         employee.Salary,
		JoiningDate:    employee.JoiningDate.Format(dateLayout),
		EmploymentType: employee.EmploymentType,
		CreatedAt:      employee.CreatedAt,
	}
}

func educationToDTO(education models.Education, employeeName string) EducationDTO {
	return EducationDTO{
		ID:           education.ID,
		EmployeeID:   education.EmployeeID,
		EmployeeName: employeeName,
		Degree:       education.Degree,
		Institution:  education.Institution,
		YearOfPass:   education.YearOfPass,
		Grade:        education.Grade,
		CreatedAt:    education.CreatedAt,
	}
}

func familyDetailToDTO(familyDetail models.FamilyDetail, employeeName string) FamilyDetailDTO {
	return FamilyDetailDTO{
		ID:           familyDetail.ID,
		EmployeeID:   familyDetail.EmployeeID,
		EmployeeName: employeeName,
		Name:         familyDetail.Name,
		Relationship: familyDetail.Relationship,
		Contact:      familyDetail.Contact,
		CreatedAt:    familyDetail.CreatedAt,
	}
}

func taskToDTO(task models.Task, employeeName string) TaskDTO {
	return TaskDTO{
		ID:           task.ID,
		EmployeeID:   task.EmployeeID,
		EmployeeName: employeeName,
		Description:  task.Description,
		AssignedDate: task.AssignedDate.Format(dateLayout),
		Deadline:     task.Deadline.Format(dateLayout),
		Status:       task.Status,
		Priority:     task.Priority,
		CreatedAt:    task.CreatedAt,
	}
}

func attendanceToDTO(attendance models.Attendance, employeeName string) AttendanceDTO {
	return AttendanceDTO{
		ID:           attendance.ID,
		EmployeeID:   attendance.EmployeeID,
		EmployeeName: employeeName,
		Date:         attendance.Date.Format(dateLayout),
		Status:       attendance.Status,
		CreatedAt:    attendance.CreatedAt,
	}
}

func recognitionToDTO(recognition models.Recognition, employeeName string) RecognitionDTO {
	return RecognitionDTO{
		ID:           recognition.ID,
		EmployeeID:   recognition.EmployeeID,
		EmployeeName: employeeName,
		Award:        recognition.Award,
		Description:  recognition.Description,
		AwardDate:    recognition.AwardDate.Format(dateLayout),
		CreatedAt:    recognition.CreatedAt,
	}
}

func trainingToDTO(training models.Training, employeeName string) TrainingDTO {
	return TrainingDTO{
		ID:           training.ID,
		EmployeeID:   training.EmployeeID,
		EmployeeName: employeeName,
		Program:      training.Program,
		StartDate:    training.StartDate.Format(dateLayout),
		EndDate:      training.EndDate.Format(dateLayout),
		Outcome:      training.Outcome,
		CreatedAt:    training.CreatedAt,
	}
}

func normalizeRequiredString(raw string, field string) (string, error) {
	value := strings.TrimSpace(raw)
	length := utf8.RuneCountInString(value)
	if length < 1 || length > 200 {
		return "", apperror.New(apperror.CodeValidation, fmt.Sprintf("%s length must be in range 1..200", field))
	}
	return value, nil
}

func mapDatabaseError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return apperror.New(apperror.CodeConflict, "resource with the same unique attributes already exists")
		}
		if pgErr.Code == "23503" {
			return apperror.New(apperror.CodeValidation, "invalid foreign key reference")
		}
	}
	return err
}
