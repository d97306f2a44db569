package employee

import (
	"time"
)

type EmploymentStatus string

const (
	StatusActive     EmploymentStatus = "active"
	StatusInactive   EmploymentStatus = "inactive"
	StatusTerminated EmploymentStatus = "terminated"
)

type Employee struct {
	ID         string
	UserID     *string
	CompanyID  string
	Code       string
	Name       string
	Email      string
	Phone      *string
	Position   string
	Department *string
	Status     EmploymentStatus
	StartDate  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
