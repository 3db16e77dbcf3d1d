package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peoplecore/employee-api/internal/core/domain"
)

// EmployeeInput carries the validated, normalized fields for a create or a
// full update. Name and Email are always present; nil means the optional
// field was not supplied.
type EmployeeInput struct {
	Name       string
	Email      string
	Phone      *string
	Department *string
	Position   *string
	Salary     *decimal.Decimal
	HireDate   *time.Time
	Status     domain.EmployeeStatus
}

// Field is a tri-state patch value. A plain pointer cannot distinguish
// "leave unchanged" from "clear this field", so presence and explicit null
// are tracked separately:
//
//	Set=false            → field absent, keep the current value
//	Set=true, Null=true  → field explicitly null, clear it
//	Set=true, Null=false → overwrite with Value
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a set, non-null Field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a set Field carrying an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// PatchEmployeeInput carries a validated partial update. Name, Email and
// Status are never Null: the normalizer rejects explicit null for them.
type PatchEmployeeInput struct {
	Name       Field[string]
	Email      Field[string]
	Phone      Field[string]
	Department Field[string]
	Position   Field[string]
	Salary     Field[decimal.Decimal]
	HireDate   Field[time.Time]
	Status     Field[domain.EmployeeStatus]
}

// Empty reports whether the patch defines no fields at all.
func (p PatchEmployeeInput) Empty() bool {
	return !p.Name.Set && !p.Email.Set && !p.Phone.Set && !p.Department.Set &&
		!p.Position.Set && !p.Salary.Set && !p.HireDate.Set && !p.Status.Set
}

// ListEmployeesInput carries the parameters for the list operation.
type ListEmployeesInput struct {
	Name  string
	Page  int
	Limit int
}

// ListEmployeesResult is returned by List.
type ListEmployeesResult struct {
	Items      []*domain.Employee
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// EmployeeService defines the use-case operations over employee records.
type EmployeeService interface {
	Create(ctx context.Context, input EmployeeInput) (*domain.Employee, error)
	Get(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context, input ListEmployeesInput) (*ListEmployeesResult, error)
	Replace(ctx context.Context, id string, input EmployeeInput) (*domain.Employee, error)
	Patch(ctx context.Context, id string, input PatchEmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}
