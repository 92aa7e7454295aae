package models

import "time"

// AuditLog is the append-only trail of who did what and when. Rows are never
// updated or deleted; the timestamp is server-assigned on insert.
type AuditLog struct {
	ID          uint      `gorm:"primaryKey"`
	Username    string    `gorm:"type:varchar(200);not null"`
	Role        string    `gorm:"type:varchar(50);not null"`
	ActionType  string    `gorm:"type:varchar(100);not null;index"`
	Description string    `gorm:"type:varchar(500);not null"`
	Details     string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
