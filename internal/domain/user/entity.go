package user

import (
	"time"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/identity"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         identity.Role
	CompanyID    string
	EmployeeID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
