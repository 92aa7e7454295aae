package models

// Lookup tables supply the valid values for enumerated form fields. They are
// seeded at startup and read live when validating a submit.

type EmploymentType struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

type TaskStatus struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex"`
}

type TaskPriority struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex"`
}

type AttendanceStatus struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex"`
}
