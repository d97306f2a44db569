package employee

import "time"

type EmployeeResponse struct {
	ID         string  `json:"id"`
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone,omitempty"`
	Position   string  `json:"position"`
	Department *string `json:"department,omitempty"`
	Status     string  `json:"status"`
	StartDate  string  `json:"start_date"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Code:       e.Code,
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Position:   e.Position,
		Department: e.Department,
		Status:     string(e.Status),
		StartDate:  e.StartDate.Format(time.DateOnly),
	}
}
