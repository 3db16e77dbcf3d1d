package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/peoplecore/employee-api/internal/api/metrics"
	"github.com/peoplecore/employee-api/internal/core/domain"
	"github.com/peoplecore/employee-api/internal/core/ports"
)

// EmployeeService owns all create/read/update/delete decisions for employee
// records: email uniqueness, hire-date sanity, merge semantics for partial
// updates, and pagination math. Persistence is delegated to the repository;
// the repository's unique email index is the final authority for concurrent
// duplicate emails (the pre-check here is a fast path, not a guarantee).
type EmployeeService struct {
	repo   ports.EmployeeRepository
	logger zerolog.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, logger zerolog.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, logger: logger}
}

// Create persists a new employee after checking email uniqueness and that
// the hire date is not in the future. The id and both timestamps are
// assigned here.
func (s *EmployeeService) Create(ctx context.Context, input ports.EmployeeInput) (*domain.Employee, error) {
	if err := s.checkEmailFree(ctx, input.Email); err != nil {
		return nil, err
	}
	if hireDateInFuture(input.HireDate) {
		return nil, domain.ErrHireDateInFuture
	}

	now := time.Now().UTC()
	employee := &domain.Employee{
		ID:         uuid.NewString(),
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Department: input.Department,
		Position:   input.Position,
		Salary:     input.Salary,
		HireDate:   input.HireDate,
		Status:     input.Status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, employee); err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to create employee")
		return nil, err
	}

	metrics.EmployeesCreatedTotal.WithLabelValues(string(employee.Status)).Inc()
	s.logger.Info().Str("id", employee.ID).Str("email", employee.Email).Msg("employee created")
	return employee, nil
}

// Get returns the employee with the given id.
func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns one page of employees, newest first, together with
// pagination metadata.
func (s *EmployeeService) List(ctx context.Context, input ports.ListEmployeesInput) (*ports.ListEmployeesResult, error) {
	items, total, err := s.repo.List(ctx, ports.ListEmployeesFilter{
		Name:  input.Name,
		Page:  input.Page,
		Limit: input.Limit,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list employees")
		return nil, err
	}

	totalPages := int((total + int64(input.Limit) - 1) / int64(input.Limit))
	return &ports.ListEmployeesResult{
		Items:      items,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// Replace overwrites every settable field of an existing employee. The id
// and createdAt are preserved; updatedAt advances.
func (s *EmployeeService) Replace(ctx context.Context, id string, input ports.EmployeeInput) (*domain.Employee, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != current.Email {
		if err := s.checkEmailFree(ctx, input.Email); err != nil {
			return nil, err
		}
	}
	if hireDateInFuture(input.HireDate) {
		return nil, domain.ErrHireDateInFuture
	}

	current.Name = input.Name
	current.Email = input.Email
	current.Phone = input.Phone
	current.Department = input.Department
	current.Position = input.Position
	current.Salary = input.Salary
	current.HireDate = input.HireDate
	current.Status = input.Status
	current.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, current); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to replace employee")
		return nil, err
	}

	metrics.EmployeesUpdatedTotal.WithLabelValues("replace").Inc()
	s.logger.Info().Str("id", id).Msg("employee replaced")
	return current, nil
}

// Patch overwrites only the fields defined in input. An explicitly null
// field clears the stored value. updatedAt advances unconditionally, even
// when the resulting values are identical to the prior ones. The record is
// re-read from storage after persisting so the returned value reflects any
// storage-side defaulting or formatting.
func (s *EmployeeService) Patch(ctx context.Context, id string, input ports.PatchEmployeeInput) (*domain.Employee, error) {
	// The normalizer already rejects empty patches; re-assert here so the
	// invariant does not depend on every caller going through it.
	if input.Empty() {
		return nil, domain.ErrEmptyPatch
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email.Set && input.Email.Value != current.Email {
		if err := s.checkEmailFree(ctx, input.Email.Value); err != nil {
			return nil, err
		}
	}
	if input.HireDate.Set && !input.HireDate.Null && hireDateInFuture(&input.HireDate.Value) {
		return nil, domain.ErrHireDateInFuture
	}

	if input.Name.Set {
		current.Name = input.Name.Value
	}
	if input.Email.Set {
		current.Email = input.Email.Value
	}
	current.Phone = applyNullable(input.Phone, current.Phone)
	current.Department = applyNullable(input.Department, current.Department)
	current.Position = applyNullable(input.Position, current.Position)
	current.Salary = applyNullable(input.Salary, current.Salary)
	current.HireDate = applyNullable(input.HireDate, current.HireDate)
	if input.Status.Set {
		current.Status = input.Status.Value
	}
	current.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, current); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to patch employee")
		return nil, err
	}

	metrics.EmployeesUpdatedTotal.WithLabelValues("patch").Inc()
	return s.repo.FindByID(ctx, id)
}

// Delete removes the employee permanently. Deleting an unknown or already
// deleted id fails with a not-found error.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to delete employee")
		return err
	}

	metrics.EmployeesDeletedTotal.Inc()
	s.logger.Info().Str("id", id).Msg("employee deleted")
	return nil
}

// checkEmailFree returns an EmailConflictError when another employee already
// holds the email. Emails arrive case-folded from the normalizer.
func (s *EmployeeService) checkEmailFree(ctx context.Context, email string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return &domain.EmailConflictError{Email: email}
	}
	return nil
}

// applyNullable merges one tri-state patch field into the current pointer
// value: absent keeps cur, null clears it, set overwrites it.
func applyNullable[T any](f ports.Field[T], cur *T) *T {
	if !f.Set {
		return cur
	}
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}

// hireDateInFuture reports whether the date lies strictly after today's UTC
// midnight. Hire dates parse as UTC midnight, so today is always accepted
// regardless of the server's local zone.
func hireDateInFuture(hd *time.Time) bool {
	if hd == nil {
		return false
	}
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return hd.After(today)
}
