package service

import (
	"context"
	"log"

	"gorm.io/gorm"

	"hr-performance-tracker/internal/models"
)

// AuditLogger appends one trail row per mutating or analytics-viewing action.
// Appends are fire-and-forget: a failure goes to the process log and never
// reaches the user or blocks the triggering action.
type AuditLogger struct {
	db     *gorm.DB
	logger *log.Logger
}

func NewAuditLogger(db *gorm.DB, logger *log.Logger) *AuditLogger {
	return &AuditLogger{
		db:     db,
		logger: logger,
	}
}

func (a *AuditLogger) Log(ctx context.Context, username, role, actionType, description, details string) {
	entry := models.AuditLog{
		Username:    username,
		Role:        role,
		ActionType:  actionType,
		Description: description,
		Details:     details,
	}

	if err := a.db.WithContext(ctx).Create(&entry).Error; err != nil {
		a.logger.Printf("[%s] failed to log audit action %q: %v", username, actionType, err)
	}
}
