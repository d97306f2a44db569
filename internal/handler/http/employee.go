package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/employee"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/handler/http/response"
)

type EmployeeHandler struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return EmployeeHandler{employeeService: employeeService}
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requester, err := requesterFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.employeeService.GetEmployee(r.Context(), requester, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	requester, err := requesterFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.employeeService.ListEmployees(r.Context(), requester)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
