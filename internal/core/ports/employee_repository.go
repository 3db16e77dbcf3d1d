package ports

import (
	"context"

	"github.com/peoplecore/employee-api/internal/core/domain"
)

// ListEmployeesFilter carries the query parameters for listing employees.
// Bounds on Page and Limit are enforced before the filter reaches the
// repository; values here are always valid.
type ListEmployeesFilter struct {
	Name  string // optional: case-insensitive substring match on name
	Page  int    // 1-based
	Limit int    // rows per page
}

// EmployeeRepository defines persistence operations for employees. The
// backing store must enforce email uniqueness as a hard constraint; a
// concurrent duplicate insert surfaces from Create or Update as a
// *domain.EmailConflictError.
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) error
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	// FindByEmail returns (nil, nil) when no employee holds the email.
	// Lookups are exact; callers pass the case-folded form.
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	// List returns a page of employees matching filter, newest first by
	// createdAt, and the total count of matching records.
	List(ctx context.Context, filter ListEmployeesFilter) ([]*domain.Employee, int64, error)
	// Update overwrites the stored record with the same id.
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id string) error
}
