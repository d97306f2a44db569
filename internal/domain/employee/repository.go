package employee

import "context"

// EmployeeRepository is the lookup collaborator the attendance core
// consumes. All reads are company-scoped to prevent cross-company
// access.
type EmployeeRepository interface {
	// GetByID retrieves an employee by ID within a company.
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// ListActiveByCompany retrieves all active employees of a company.
	ListActiveByCompany(ctx context.Context, companyID string) ([]Employee, error)

	// CountActiveByCompany counts active employees of a company.
	CountActiveByCompany(ctx context.Context, companyID string) (int, error)
}
