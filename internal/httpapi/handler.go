package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hr-performance-tracker/internal/access"
	"hr-performance-tracker/internal/apperror"
	"hr-performance-tracker/internal/auth"
	"hr-performance-tracker/internal/service"
)

type Handler struct {
	sessions *auth.SessionManager
	recorder service.Recorder
	reporter service.Reporter
	logger   *log.Logger
}

func NewHandler(sessions *auth.SessionManager, recorder service.Recorder, reporter service.Reporter, logger *log.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		recorder: recorder,
		reporter: reporter,
		logger:   logger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		writeError(w, http.StatusNotFound, "route not found")
		return
	}

	switch parts[0] {
	case "login":
		h.route(w, r, parts, http.MethodPost, h.handleLogin)
	case "logout":
		h.route(w, r, parts, http.MethodPost, h.handleLogout)
	case "sections":
		h.route(w, r, parts, http.MethodGet, h.handleSections)
	case "lookups":
		h.route(w, r, parts, http.MethodGet, h.handleLookups)
	case "employees":
		h.routeRecords(w, r, parts, access.ActionEmployeeOverview, access.ActionAddEmployee, h.handleListEmployees, h.handleCreateEmployee)
	case "education":
		h.routeRecords(w, r, parts, access.ActionEducationRecords, access.ActionAddEducation, h.handleListEducation, h.handleCreateEducation)
	case "family-details":
		h.routeRecords(w, r, parts, access.ActionFamilyDetails, access.ActionAddFamilyDetails, h.handleListFamilyDetails, h.handleCreateFamilyDetail)
	case "tasks":
		h.routeTasks(w, r, parts)
	case "attendance":
		h.routeRecords(w, r, parts, access.ActionAttendance, access.ActionAddAttendance, h.handleListAttendance, h.handleCreateAttendance)
	case "recognition":
		h.routeRecords(w, r, parts, access.ActionRecognition, access.ActionAddRecognition, h.handleListRecognitions, h.handleCreateRecognition)
	case "training":
		h.routeRecords(w, r, parts, access.ActionTraining, access.ActionAddTraining, h.handleListTrainings, h.handleCreateTraining)
	case "reports":
		h.routeReports(w, r, parts)
	case "audit":
		if len(parts) != 1 || r.Method != http.MethodGet {
			writeError(w, http.StatusNotFound, "route not found")
			return
		}
		if _, ok := h.authorize(w, r, access.ActionUserManagement); ok {
			h.handleListAuditLog(w, r)
		}
	default:
		writeError(w, http.StatusNotFound, "route not found")
	}
}

func (h *Handler) route(w http.ResponseWriter, r *http.Request, parts []string, method string, handler http.HandlerFunc) {
	if len(parts) != 1 {
		writeError(w, http.StatusNotFound, "route not found")
		return
	}
	if r.Method != method {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	handler(w, r)
}

type sessionHandlerFunc func(w http.ResponseWriter, r *http.Request, session auth.Session)

func (h *Handler) routeRecords(w http.ResponseWriter, r *http.Request, parts []string, viewAction, addAction access.Action, list, create sessionHandlerFunc) {
	if len(parts) != 1 {
		writeError(w, http.StatusNotFound, "route not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		if session, ok := h.authorize(w, r, viewAction); ok {
			list(w, r, session)
		}
	case http.MethodPost:
		if session, ok := h.authorize(w, r, addAction); ok {
			create(w, r, session)
		}
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) routeTasks(w http.ResponseWriter, r *http.Request, parts []string) {
	switch {
	case len(parts) == 1:
		h.routeRecords(w, r, parts, access.ActionTaskManagement, access.ActionAddTask, h.handleListTasks, h.handleCreateTask)

	case len(parts) == 3 && parts[2] == "status":
		if r.Method != http.MethodPatch {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		taskID, err := parseUintID(parts[1])
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid task id")
			return
		}
		if session, ok := h.authorize(w, r, access.ActionUpdateTaskStatus); ok {
			h.handleUpdateTaskStatus(w, r, session, taskID)
		}

	default:
		writeError(w, http.StatusNotFound, "route not found")
	}
}

func (h *Handler) routeReports(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) != 2 || r.Method != http.MethodGet {
		writeError(w, http.StatusNotFound, "route not found")
		return
	}

	session, ok := h.authorize(w, r, access.ActionAnalytics)
	if !ok {
		return
	}

	switch parts[1] {
	case "attendance-trend":
		h.handleAttendanceTrend(w, r, session)
	case "task-status":
		h.handleTaskStatusDistribution(w, r, session)
	case "departments":
		h.handleDepartmentDistribution(w, r, session)
	default:
		writeError(w, http.StatusNotFound, "route not found")
	}
}

// authorize resolves the session from the bearer token and re-checks the
// permission table for the route's action. The menu hiding an option is never
// the only line of defense.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, action access.Action) (auth.Session, bool) {
	session, err := h.sessions.Get(bearerToken(r))
	if err != nil {
		h.respondWithError(w, err)
		return auth.Session{}, false
	}
	if !access.Can(session.Role, action) {
		writeError(w, http.StatusForbidden, "you are not permitted to perform this action")
		return auth.Session{}, false
	}
	return session, true
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.sessions.Login(req.Username, req.Password)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(bearerToken(r))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSections(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(bearerToken(r))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"role":     session.Role,
		"sections": access.VisibleSections(session.Role),
	})
}

func (h *Handler) handleLookups(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sessions.Get(bearerToken(r)); err != nil {
		h.respondWithError(w, err)
		return
	}

	lookups, err := h.recorder.Lookups(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lookups)
}

type createEmployeeRequest struct {
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	Department     string          `json:"department"`
	Designation    string          `json:"designation"`
	ManagerID      *uint           `json:"manager_id"`
	Salary         decimal.Decimal `json:"salary"`
	JoiningDate    string          `json:"joining_date"`
	EmploymentType string          `json:"employment_type"`
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request, session auth.Session) {
	var req createEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	joiningDate, err := parseDate(req.JoiningDate, "joining_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	employee, err := h.recorder.CreateEmployee(r.Context(), session, service.CreateEmployeeInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		Department:     req.Department,
		Designation:    req.Designation,
		ManagerID:      req.ManagerID,
		Salary:         req.Salary,
		JoiningDate:    joiningDate,
		EmploymentType: req.EmploymentType,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, employee)
}

type createEducationRequest struct {
	EmployeeName string `json:"employee_name"`
	Degree       string `json:"degree"`
	Institution  string `json:"institution"`
	YearOfPass   int    `json:"year_of_pass"`
	Grade        string `json:"grade"`
}

func (h *Handler) handleCreateEducation(w http.ResponseWriter, r *http.Request, session auth.Session) {
	var req createEducationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	education, err := h.recorder.CreateEducation(r.Context(), session, service.CreateEducationInput{
		EmployeeName: req.EmployeeName,
		Degree:       req.Degree,
		Institution:  req.Institution,
		YearOfPass:   req.YearOfPass,
		Grade:        req.Grade,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, education)
}

type createFamilyDetailRequest struct {
	EmployeeName string `json:"employee_name"`
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Contact      string `json:"contact"`
}

func (h *Handler) handleCreateFamilyDetail(w http.ResponseWriter, r *http.Request, session auth.Session) {
	var req createFamilyDetailRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	familyDetail, err := h.recorder.CreateFamilyDetail(r.Context(), session, service.CreateFamilyDetailInput{
		EmployeeName: req.EmployeeName,
		Name:         req.Name,
		Relationship: req.Relationship,
		Contact:      req.Contact,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, familyDetail)
}

type createTaskRequest struct {
	EmployeeName string `json:"employee_name"`
	Description  string `json:"description"`
	AssignedDate string `json:"assigned_date"`
	Deadline     string `json:"deadline"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request, session auth.Session) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	assignedDate, err := parseDate(req.AssignedDate, "assigned_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	deadline, err := parseDate(req.Deadline, "deadline")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.recorder.CreateTask(r.Context(), session, service.CreateTaskInput{
		EmployeeName: req.EmployeeName,
		Description:  req.Description,
		AssignedDate: assignedDate,
		Deadline:     deadline,
		Status:       req.Status,
		Priority:     req.Priority,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

type createAttendanceRequest struct {
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}

func (h *Handler) handleCreateAttendance(w http.ResponseWriter, r *http.Request, session auth.Session) {
	var req createAttendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := parseDate(req.Date, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	attendance, err := h.recorder.CreateAttendance(r.Context(), session, service.CreateAttendanceInput{
		EmployeeName: req.EmployeeName,
		Date:         date,
		Status:       req.Status,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, attendance)
}

type createRecognitionRequest struct {
	EmployeeName string `json:"employee_name"`
	Award        string `json:"award"`
	Description  string `json:"description"`
	AwardDate    string `json:"award_date"`
}

func (h *Handler) handleCreateRecognition(w http.ResponseWriter, r *http.Request, session auth.Session) {
	var req createRecognitionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	awardDate, err := parseDate(req.AwardDate, "award_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	recognition, err := h.recorder.CreateRecognition(r.Context(), session, service.CreateRecognitionInput{
		EmployeeName: req.EmployeeName,
		Award:        req.Award,
		Description:  req.Description,
		AwardDate:    awardDate,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, recognition)
}

type createTrainingRequest struct {
	EmployeeName string `json:"employee_name"`
	Program      string `json:"program"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Outcome      string `json:"outcome"`
}

func (h *Handler) handleCreateTraining(w http.ResponseWriter, r *http.Request, session auth.Session) {
	var req createTrainingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	startDate, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	endDate, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	training, err := h.recorder.CreateTraining(r.Context(), session, service.CreateTrainingInput{
		EmployeeName: req.EmployeeName,
		Program:      req.Program,
		StartDate:    startDate,
		EndDate:      endDate,
		Outcome:      req.Outcome,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, training)
}

type updateTaskStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateTaskStatus(w http.ResponseWriter, r *http.Request, session auth.Session, taskID uint) {
	var req updateTaskStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.recorder.UpdateTaskStatus(r.Context(), session, taskID, req.Status)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request, _ auth.Session) {
	employees, err := h.recorder.ListEmployees(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

func (h *Handler) handleListEducation(w http.ResponseWriter, r *http.Request, _ auth.Session) {
	records, err := h.recorder.ListEducation(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) handleListFamilyDetails(w http.ResponseWriter, r *http.Request, _ auth.Session) {
	records, err := h.recorder.ListFamilyDetails(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request, _ auth.Session) {
	records, err := h.recorder.ListTasks(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) handleListAttendance(w http.ResponseWriter, r *http.Request, _ auth.Session) {
	records, err := h.recorder.ListAttendance(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) handleListRecognitions(w http.ResponseWriter, r *http.Request, _ auth.Session) {
	records, err := h.recorder.ListRecognitions(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) handleListTrainings(w http.ResponseWriter, r *http.Request, _ auth.Session) {
	records, err := h.recorder.ListTrainings(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) handleListAuditLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.recorder.ListAuditLog(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// reportResponse carries the chart series plus an explicit placeholder
// message when there is nothing to chart.
type reportResponse struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

func (h *Handler) handleAttendanceTrend(w http.ResponseWriter, r *http.Request, session auth.Session) {
	points, err := h.reporter.MonthlyAttendanceTrend(r.Context(), session)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	response := reportResponse{Data: points}
	if len(points) == 0 {
		response.Message = "No attendance data available."
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) handleTaskStatusDistribution(w http.ResponseWriter, r *http.Request, session auth.Session) {
	counts, err := h.reporter.TaskStatusDistribution(r.Context(), session)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	response := reportResponse{Data: counts}
	if len(counts) == 0 {
		response.Message = "No task data available."
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) handleDepartmentDistribution(w http.ResponseWriter, r *http.Request, session auth.Session) {
	counts, err := h.reporter.DepartmentDistribution(r.Context(), session)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	response := reportResponse{Data: counts}
	if len(counts) == 0 {
		response.Message = "No department data available."
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) respondWithError(w http.ResponseWriter, err error) {
	switch apperror.GetCode(err) {
	case apperror.CodeValidation:
		writeError(w, http.StatusBadRequest, err.Error())
	case apperror.CodeUnauthorized:
		writeError(w, http.StatusUnauthorized, err.Error())
	case apperror.CodeForbidden:
		writeError(w, http.StatusForbidden, err.Error())
	case apperror.CodeNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case apperror.CodeConflict:
		writeError(w, http.StatusConflict, err.Error())
	case apperror.CodeLookup:
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Printf("unexpected error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, found := strings.CutPrefix(header, "Bearer "); found {
		return strings.TrimSpace(token)
	}
	return ""
}

func decodeJSON(r *http.Request, target interface{}) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return errors.New("invalid JSON body")
	}

	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		return errors.New("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

func parseUintID(raw string) (uint, error) {
	id64, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id64 == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id64), nil
}

func parseDate(raw string, field string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, errors.New(field + " must be in YYYY-MM-DD format")
	}

	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, errors.New(field + " must be in YYYY-MM-DD format")
	}
	return parsed, nil
}
