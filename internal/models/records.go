package models

import "time"

// Each record kind carries a required foreign key to Employee. Rows are
// inserted one at a time by the matching form and never deleted in-app.

type Education struct {
	ID          uint      `gorm:"primaryKey"`
	EmployeeID  uint      `gorm:"not null;index"`
	Employee    Employee  `gorm:"foreignKey:EmployeeID"`
	Degree      string    `gorm:"type:varchar(200);not null"`
	Institution string    `gorm:"type:varchar(200);not null"`
	YearOfPass  int       `gorm:"not null"`
	Grade       string    `gorm:"type:varchar(50)"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

type FamilyDetail struct {
	ID           uint      `gorm:"primaryKey"`
	EmployeeID   uint      `gorm:"not null;index"`
	Employee     Employee  `gorm:"foreignKey:EmployeeID"`
	Name         string    `gorm:"type:varchar(200);not null"`
	Relationship string    `gorm:"type:varchar(100);not null"`
	Contact      string    `gorm:"type:varchar(50)"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

type Task struct {
	ID           uint      `gorm:"primaryKey"`
	EmployeeID   uint      `gorm:"not null;index"`
	Employee     Employee  `gorm:"foreignKey:EmployeeID"`
	Description  string    `gorm:"type:text;not null"`
	AssignedDate time.Time `gorm:"type:date;not null"`
	Deadline     time.Time `gorm:"type:date;not null"`
	Status       string    `gorm:"type:varchar(50);not null;index"`
	Priority     string    `gorm:"type:varchar(50);not null"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

type Attendance struct {
	ID         uint      `gorm:"primaryKey"`
	EmployeeID uint      `gorm:"not null;index"`
	Employee   Employee  `gorm:"foreignKey:EmployeeID"`
	Date       time.Time `gorm:"type:date;not null;index"`
	Status     string    `gorm:"type:varchar(50);not null"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

type Recognition struct {
	ID          uint      `gorm:"primaryKey"`
	EmployeeID  uint      `gorm:"not null;index"`
	Employee    Employee  `gorm:"foreignKey:EmployeeID"`
	Award       string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	AwardDate   time.Time `gorm:"type:date;not null"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

type Training struct {
	ID         uint      `gorm:"primaryKey"`
	EmployeeID uint      `gorm:"not null;index"`
	Employee   Employee  `gorm:"foreignKey:EmployeeID"`
	Program    string    `gorm:"type:varchar(200);not null"`
	StartDate  time.Time `gorm:"type:date;not null"`
	EndDate    time.Time `gorm:"type:date;not null"`
	Outcome    string    `gorm:"type:varchar(200)"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}
