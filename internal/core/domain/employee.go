package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeStatus represents the employment state of an employee.
type EmployeeStatus string

const (
	StatusActive   EmployeeStatus = "active"
	StatusInactive EmployeeStatus = "inactive"
)

// IsValid reports whether the status is one of the known values.
func (s EmployeeStatus) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

var ErrHireDateInFuture = errors.New("hireDate cannot be in the future")
var ErrEmptyPatch = errors.New("at least one field must be provided")
var ErrMalformedID = errors.New("employee id must be a valid UUID")

// NotFoundError indicates that no employee exists with the given id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("employee with id %s not found", e.ID)
}

// EmailConflictError indicates that another employee already holds the email.
type EmailConflictError struct {
	Email string
}

func (e *EmailConflictError) Error() string {
	return fmt.Sprintf("employee with email %s already exists", e.Email)
}

// FieldViolation is a single violated constraint on a named field. The field
// "request" is used for violations that are not tied to one field, such as an
// empty patch body.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every constraint violated by a request, in the
// order the constraints were evaluated.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msg := "validation failed"
	for _, v := range e.Violations {
		msg += "; " + v.Field + ": " + v.Message
	}
	return msg
}

// Employee is the sole entity of the system. Optional fields are nil when
// absent; there is no empty-string or zero-value sentinel for "unset".
type Employee struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Phone      *string          `json:"phone"`
	Department *string          `json:"department"`
	Position   *string          `json:"position"`
	Salary     *decimal.Decimal `json:"salary"`
	HireDate   *time.Time       `json:"hireDate"`
	Status     EmployeeStatus   `json:"status"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}
