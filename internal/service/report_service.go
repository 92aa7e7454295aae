package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hr-performance-tracker/internal/auth"
	"hr-performance-tracker/internal/models"
)

const monthLayout = "2006-01"

// ReportService runs the three analytics aggregates on demand. Nothing is
// cached; every call re-queries the store. Each successful view appends one
// audit entry.
type ReportService struct {
	db    *gorm.DB
	audit *AuditLogger
}

func NewReportService(db *gorm.DB, audit *AuditLogger) *ReportService {
	return &ReportService{
		db:    db,
		audit: audit,
	}
}

// MonthlyAttendanceTrend returns the present percentage per calendar month in
// chronological order. The month bucketing happens here rather than in SQL so
// the same query runs against Postgres and the SQLite test store.
func (s *ReportService) MonthlyAttendanceTrend(ctx context.Context, session auth.Session) ([]MonthlyAttendancePoint, error) {
	var records []models.Attendance
	if err := s.db.WithContext(ctx).
		Select("date", "status").
		Order("date ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load attendance rows: %w", err)
	}

	points := make([]MonthlyAttendancePoint, 0)
	index := make(map[string]int)
	for _, record := range records {
		month := record.Date.Format(monthLayout)
		i, ok := index[month]
		if !ok {
			i = len(points)
			index[month] = i
			points = append(points, MonthlyAttendancePoint{Month: month})
		}
		points[i].TotalRecords++
		if record.Status == "Present" {
			points[i].PresentCount++
		}
	}

	for i := range points {
		points[i].PresentPercent = float64(points[i].PresentCount) / float64(points[i].TotalRecords) * 100
	}

	s.audit.Log(ctx, session.Username, session.Role, "View Analytics",
		"Viewed monthly attendance trends", "N/A")

	return points, nil
}

func (s *ReportService) TaskStatusDistribution(ctx context.Context, session auth.Session) ([]StatusCount, error) {
	counts := make([]StatusCount, 0)
	if err := s.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("aggregate task statuses: %w", err)
	}

	s.audit.Log(ctx, session.Username, session.Role, "View Analytics",
		"Viewed task completion rates", "N/A")

	return counts, nil
}

func (s *ReportService) DepartmentDistribution(ctx context.Context, session auth.Session) ([]DepartmentCount, error) {
	counts := make([]DepartmentCount, 0)
	if err := s.db.WithContext(ctx).
		Model(&models.Employee{}).
		Select("department, COUNT(*) AS count").
		Group("department").
		Order("department ASC").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("aggregate departments: %w", err)
	}

	s.audit.Log(ctx, session.Username, session.Role, "View Analytics",
		"Viewed department-wise employee distribution", "N/A")

	return counts, nil
}
