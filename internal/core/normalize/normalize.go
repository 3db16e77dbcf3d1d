// Package normalize converts raw request payloads into typed, trimmed,
// constraint-checked inputs for the employee service. It is a pure transform:
// no I/O, no clock, no storage. Every violated constraint across all fields
// is collected in one pass and returned as a single *domain.ValidationError.
//
// Constraints are expressed as explicit, ordered (field, constraint, message)
// rule lists rather than struct tags, so the same rules serve the create,
// full-update, and partial-update shapes.
package normalize

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/peoplecore/employee-api/internal/core/domain"
	"github.com/peoplecore/employee-api/internal/core/ports"
)

// EmployeePayload is the raw request body for any employee mutation.
// json.RawMessage keeps the distinction between an absent key (nil) and an
// explicit JSON null, which the partial-update shape depends on.
type EmployeePayload struct {
	Name       json.RawMessage `json:"name"`
	Email      json.RawMessage `json:"email"`
	Phone      json.RawMessage `json:"phone"`
	Department json.RawMessage `json:"department"`
	Position   json.RawMessage `json:"position"`
	Salary     json.RawMessage `json:"salary"`
	HireDate   json.RawMessage `json:"hireDate"`
	Status     json.RawMessage `json:"status"`
}

func (p EmployeePayload) empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Department == nil &&
		p.Position == nil && p.Salary == nil && p.HireDate == nil && p.Status == nil
}

var nullToken = []byte("null")

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(raw, nullToken)
}

// textRule is one constraint on a text field. ok reports whether the
// constraint holds for the already-transformed value.
type textRule struct {
	ok  func(s string) bool
	msg string
}

// textSpec describes a text field: its transform and its ordered rules.
type textSpec struct {
	field string
	trim  bool
	lower bool
	rules []textRule
}

var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)

// The email-syntax leaf check delegates to go-playground/validator, the same
// engine used for query-parameter validation at the transport boundary.
var leaf = validator.New()

func isEmail(s string) bool { return leaf.Var(s, "email") == nil }

func notEmpty(s string) bool { return s != "" }

func maxRunes(n int) func(string) bool {
	return func(s string) bool { return utf8.RuneCountInString(s) <= n }
}

var (
	nameSpec = textSpec{field: "name", trim: true, rules: []textRule{
		{notEmpty, "name must not be empty"},
		{maxRunes(255), "name must be at most 255 characters"},
	}}
	emailSpec = textSpec{field: "email", lower: true, rules: []textRule{
		{isEmail, "email must be a valid email"},
		{maxRunes(255), "email must be at most 255 characters"},
	}}
	phoneSpec = textSpec{field: "phone", rules: []textRule{
		{maxRunes(20), "phone must be at most 20 characters"},
		{phonePattern.MatchString, "phone must contain only numbers, +, -, spaces, and parentheses"},
	}}
	departmentSpec = textSpec{field: "department", trim: true, rules: []textRule{
		{maxRunes(100), "department must be at most 100 characters"},
	}}
	positionSpec = textSpec{field: "position", trim: true, rules: []textRule{
		{maxRunes(100), "position must be at most 100 characters"},
	}}
)

// violations accumulates every failed constraint in evaluation order.
type violations struct {
	list []domain.FieldViolation
}

func (v *violations) add(field, msg string) {
	v.list = append(v.list, domain.FieldViolation{Field: field, Message: msg})
}

func (v *violations) err() error {
	if len(v.list) == 0 {
		return nil
	}
	return &domain.ValidationError{Violations: v.list}
}

// text applies the spec's transform and every rule to a present, non-null
// raw value. The returned bool is false when the value is unusable.
func text(raw json.RawMessage, spec textSpec, vs *violations) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		vs.add(spec.field, spec.field+" must be a string")
		return "", false
	}
	if spec.trim {
		s = strings.TrimSpace(s)
	}
	if spec.lower {
		s = strings.ToLower(s)
	}
	ok := true
	for _, r := range spec.rules {
		if !r.ok(s) {
			vs.add(spec.field, r.msg)
			ok = false
		}
	}
	return s, ok
}

func salary(raw json.RawMessage, vs *violations) (decimal.Decimal, bool) {
	if len(raw) > 0 && (raw[0] == '"' || raw[0] == '{' || raw[0] == '[' || raw[0] == 't' || raw[0] == 'f') {
		vs.add("salary", "salary must be a number")
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		vs.add("salary", "salary must be a number")
		return decimal.Decimal{}, false
	}
	ok := true
	if d.IsNegative() {
		vs.add("salary", "salary must not be negative")
		ok = false
	}
	// Trailing zeros are fine: 100.120 is two fractional digits, not three.
	if d.Exponent() < -2 && !d.Equal(d.Truncate(2)) {
		vs.add("salary", "salary must have at most 2 decimal places")
		ok = false
	}
	return d, ok
}

func hireDate(raw json.RawMessage, vs *violations) (time.Time, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t, true
		}
		// Full timestamps are accepted and truncated to the calendar date.
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	vs.add("hireDate", "hireDate must be a date string in YYYY-MM-DD format")
	return time.Time{}, false
}

func status(raw json.RawMessage, vs *violations) (domain.EmployeeStatus, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if st := domain.EmployeeStatus(s); st.IsValid() {
			return st, true
		}
	}
	vs.add("status", "status must be one of: active, inactive")
	return "", false
}

// Employee validates a payload in the create / full-update shape: name and
// email are required, optional fields may be absent or explicitly null
// (both mean "not set"), and status defaults to active.
func Employee(p EmployeePayload) (ports.EmployeeInput, error) {
	vs := &violations{}
	in := ports.EmployeeInput{Status: domain.StatusActive}

	switch {
	case p.Name == nil:
		vs.add("name", "name is required")
	case isNull(p.Name):
		vs.add("name", "name must not be null")
	default:
		in.Name, _ = text(p.Name, nameSpec, vs)
	}

	switch {
	case p.Email == nil:
		vs.add("email", "email is required")
	case isNull(p.Email):
		vs.add("email", "email must not be null")
	default:
		in.Email, _ = text(p.Email, emailSpec, vs)
	}

	if p.Phone != nil && !isNull(p.Phone) {
		if v, ok := text(p.Phone, phoneSpec, vs); ok {
			in.Phone = &v
		}
	}
	if p.Department != nil && !isNull(p.Department) {
		if v, ok := text(p.Department, departmentSpec, vs); ok {
			in.Department = &v
		}
	}
	if p.Position != nil && !isNull(p.Position) {
		if v, ok := text(p.Position, positionSpec, vs); ok {
			in.Position = &v
		}
	}
	if p.Salary != nil && !isNull(p.Salary) {
		if v, ok := salary(p.Salary, vs); ok {
			in.Salary = &v
		}
	}
	if p.HireDate != nil && !isNull(p.HireDate) {
		if v, ok := hireDate(p.HireDate, vs); ok {
			in.HireDate = &v
		}
	}
	if p.Status != nil && !isNull(p.Status) {
		if v, ok := status(p.Status, vs); ok {
			in.Status = v
		}
	}

	if err := vs.err(); err != nil {
		return ports.EmployeeInput{}, err
	}
	return in, nil
}

// Patch validates a payload in the partial-update shape. Every field is
// individually optional but validated with the same rules as create when
// present. Explicit null clears a nullable field; name, email and status are
// not nullable. A payload with zero defined fields is rejected outright.
func Patch(p EmployeePayload) (ports.PatchEmployeeInput, error) {
	vs := &violations{}
	var in ports.PatchEmployeeInput

	if p.empty() {
		vs.add("request", "At least one field must be provided")
		return in, vs.err()
	}

	if p.Name != nil {
		if isNull(p.Name) {
			vs.add("name", "name must not be null")
		} else if v, ok := text(p.Name, nameSpec, vs); ok {
			in.Name = ports.Some(v)
		}
	}
	if p.Email != nil {
		if isNull(p.Email) {
			vs.add("email", "email must not be null")
		} else if v, ok := text(p.Email, emailSpec, vs); ok {
			in.Email = ports.Some(v)
		}
	}
	if p.Phone != nil {
		if isNull(p.Phone) {
			in.Phone = ports.Null[string]()
		} else if v, ok := text(p.Phone, phoneSpec, vs); ok {
			in.Phone = ports.Some(v)
		}
	}
	if p.Department != nil {
		if isNull(p.Department) {
			in.Department = ports.Null[string]()
		} else if v, ok := text(p.Department, departmentSpec, vs); ok {
			in.Department = ports.Some(v)
		}
	}
	if p.Position != nil {
		if isNull(p.Position) {
			in.Position = ports.Null[string]()
		} else if v, ok := text(p.Position, positionSpec, vs); ok {
			in.Position = ports.Some(v)
		}
	}
	if p.Salary != nil {
		if isNull(p.Salary) {
			in.Salary = ports.Null[decimal.Decimal]()
		} else if v, ok := salary(p.Salary, vs); ok {
			in.Salary = ports.Some(v)
		}
	}
	if p.HireDate != nil {
		if isNull(p.HireDate) {
			in.HireDate = ports.Null[time.Time]()
		} else if v, ok := hireDate(p.HireDate, vs); ok {
			in.HireDate = ports.Some(v)
		}
	}
	if p.Status != nil {
		if isNull(p.Status) {
			vs.add("status", "status must be one of: active, inactive")
		} else if v, ok := status(p.Status, vs); ok {
			in.Status = ports.Some(v)
		}
	}

	if err := vs.err(); err != nil {
		return ports.PatchEmployeeInput{}, err
	}
	return in, nil
}
