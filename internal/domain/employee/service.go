package employee

import (
	"context"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/identity"
)

// EmployeeService exposes the company employee directory.
type EmployeeService interface {
	GetEmployee(ctx context.Context, requester identity.Requester, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, requester identity.Requester) ([]EmployeeResponse, error)
}
