package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID             uint            `gorm:"primaryKey"`
	Name           string          `gorm:"type:varchar(200);not null;index"`
	Email          string          `gorm:"type:varchar(200);not null"`
	Phone          string          `gorm:"type:varchar(50)"`
	Address        string          `gorm:"type:text"`
	Department     string          `gorm:"type:varchar(200);not null;index"`
	Designation    string          `gorm:"type:varchar(200);not null"`
	ManagerID      *uint           `gorm:"index"`
	Manager        *Employee       `gorm:"foreignKey:ManagerID;references:ID"`
	Salary         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	JoiningDate    time.Time       `gorm:"type:date;not null"`
	EmploymentType string          `gorm:"type:varchar(100);not null"`
	CreatedAt      time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}
