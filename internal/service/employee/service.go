// Package employee exposes the company employee directory.
package employee

import (
	"context"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/employee"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/identity"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// GetEmployee implements employee.EmployeeService. Employees may read
// their own record; admins any record of their company.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, requester identity.Requester, id string) (employee.EmployeeResponse, error) {
	if !requester.IsAdmin() && requester.EmployeeID != id {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	e, err := s.employeeRepo.GetByID(ctx, id, requester.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(e), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, requester identity.Requester) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.ListActiveByCompany(ctx, requester.CompanyID)
	if err != nil {
		return nil, err
	}

	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, employee.ToResponse(e))
	}
	return resp, nil
}
