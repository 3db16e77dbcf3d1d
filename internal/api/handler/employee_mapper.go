package handler

import (
	"github.com/peoplecore/employee-api/internal/core/domain"
	"github.com/peoplecore/employee-api/internal/core/ports"
)

// --- Service result → HTTP response ---

func toEmployeeResponse(e *domain.Employee) employeeResponse {
	resp := employeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Department: e.Department,
		Position:   e.Position,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt.UTC(),
		UpdatedAt:  e.UpdatedAt.UTC(),
	}
	if e.Salary != nil {
		s := e.Salary.InexactFloat64()
		resp.Salary = &s
	}
	if e.HireDate != nil {
		d := e.HireDate.UTC().Format("2006-01-02")
		resp.HireDate = &d
	}
	return resp
}

func toListResponse(r *ports.ListEmployeesResult) listEmployeesResponse {
	items := make([]employeeResponse, len(r.Items))
	for i, e := range r.Items {
		items[i] = toEmployeeResponse(e)
	}
	return listEmployeesResponse{
		Data: items,
		Meta: metaResponse{
			Page:       r.Page,
			Limit:      r.Limit,
			Total:      r.Total,
			TotalPages: r.TotalPages,
		},
	}
}
