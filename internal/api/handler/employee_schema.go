package handler

import "time"

// listEmployeesRequest carries the query parameters for GET /api/employees.
// Pointers distinguish "absent, apply the default" from an explicit
// out-of-range value, which is rejected rather than clamped.
type listEmployeesRequest struct {
	Name  string `query:"name"`
	Page  *int   `query:"page"  validate:"omitempty,min=1"`
	Limit *int   `query:"limit" validate:"omitempty,min=1,max=100"`
}

const (
	defaultPage  = 1
	defaultLimit = 10
)

// employeeResponse is the JSON contract for a single employee record.
// Optional fields render as null when unset. Salary is a plain number and
// hireDate a calendar date, matching what clients send.
type employeeResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone"`
	Department *string   `json:"department"`
	Position   *string   `json:"position"`
	Salary     *float64  `json:"salary"`
	HireDate   *string   `json:"hireDate"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type metaResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type listEmployeesResponse struct {
	Data []employeeResponse `json:"data"`
	Meta metaResponse       `json:"meta"`
}

type messageResponse struct {
	Message string `json:"message"`
}
