package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/peoplecore/employee-api/internal/api"
	"github.com/peoplecore/employee-api/internal/api/handler"
	"github.com/peoplecore/employee-api/internal/core/domain"
	"github.com/peoplecore/employee-api/internal/core/ports"
)

const knownID = "3f2c5a2e-9c6c-4a1e-8f59-6d2f8f3f9a10"

// stubEmployeeService lets each test plug in just the behavior it needs.
// Unconfigured methods fail the test if called.
type stubEmployeeService struct {
	t         *testing.T
	createFn  func(ctx context.Context, input ports.EmployeeInput) (*domain.Employee, error)
	getFn     func(ctx context.Context, id string) (*domain.Employee, error)
	listFn    func(ctx context.Context, input ports.ListEmployeesInput) (*ports.ListEmployeesResult, error)
	replaceFn func(ctx context.Context, id string, input ports.EmployeeInput) (*domain.Employee, error)
	patchFn   func(ctx context.Context, id string, input ports.PatchEmployeeInput) (*domain.Employee, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (s *stubEmployeeService) Create(ctx context.Context, input ports.EmployeeInput) (*domain.Employee, error) {
	if s.createFn == nil {
		s.t.Fatal("unexpected call to Create")
	}
	return s.createFn(ctx, input)
}

func (s *stubEmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	if s.getFn == nil {
		s.t.Fatal("unexpected call to Get")
	}
	return s.getFn(ctx, id)
}

func (s *stubEmployeeService) List(ctx context.Context, input ports.ListEmployeesInput) (*ports.ListEmployeesResult, error) {
	if s.listFn == nil {
		s.t.Fatal("unexpected call to List")
	}
	return s.listFn(ctx, input)
}

func (s *stubEmployeeService) Replace(ctx context.Context, id string, input ports.EmployeeInput) (*domain.Employee, error) {
	if s.replaceFn == nil {
		s.t.Fatal("unexpected call to Replace")
	}
	return s.replaceFn(ctx, id, input)
}

func (s *stubEmployeeService) Patch(ctx context.Context, id string, input ports.PatchEmployeeInput) (*domain.Employee, error) {
	if s.patchFn == nil {
		s.t.Fatal("unexpected call to Patch")
	}
	return s.patchFn(ctx, id, input)
}

func (s *stubEmployeeService) Delete(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		s.t.Fatal("unexpected call to Delete")
	}
	return s.deleteFn(ctx, id)
}

// newTestServer wires the handler, query validator and the central error
// handler exactly as the router does, without Mongo or Redis.
func newTestServer(svc ports.EmployeeService) *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	h := handler.NewEmployeeHandler(svc)
	g := e.Group("/api/employees")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/", h.Get)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id", h.Patch)
	g.DELETE("/:id", h.Delete)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type errorEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
	Details    []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad error body %q: %v", rec.Body.String(), err)
	}
	return env
}

func sampleEmployee() *domain.Employee {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Employee{
		ID:        knownID,
		Name:      "Jane Smith",
		Email:     "jane@example.com",
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestCreateEmployee_Created(t *testing.T) {
	svc := &stubEmployeeService{t: t, createFn: func(_ context.Context, input ports.EmployeeInput) (*domain.Employee, error) {
		if input.Email != "jane@example.com" {
			t.Errorf("service received email %q", input.Email)
		}
		return sampleEmployee(), nil
	}}
	e := newTestServer(svc)

	rec := do(e, http.MethodPost, "/api/employees", `{"name":"Jane Smith","email":"Jane@Example.com"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["id"] != knownID || body["status"] != "active" {
		t.Errorf("body wrong: %v", body)
	}
	if v, ok := body["phone"]; !ok || v != nil {
		t.Error("unset phone must render as explicit null")
	}
}

func TestCreateEmployee_ValidationFailure(t *testing.T) {
	e := newTestServer(&stubEmployeeService{t: t})

	rec := do(e, http.MethodPost, "/api/employees", `{"name":"Jane Smith"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	env := decodeError(t, rec)
	if env.StatusCode != 400 || env.Message != "Validation failed" || env.Error != "Bad Request" {
		t.Errorf("envelope wrong: %+v", env)
	}
	if len(env.Details) != 1 || env.Details[0].Field != "email" {
		t.Errorf("details wrong: %+v", env.Details)
	}
}

func TestCreateEmployee_EmailConflict(t *testing.T) {
	svc := &stubEmployeeService{t: t, createFn: func(context.Context, ports.EmployeeInput) (*domain.Employee, error) {
		return nil, &domain.EmailConflictError{Email: "jane@example.com"}
	}}
	e := newTestServer(svc)

	rec := do(e, http.MethodPost, "/api/employees", `{"name":"Jane","email":"jane@example.com"}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	env := decodeError(t, rec)
	if env.Message != "Employee with email jane@example.com already exists" || env.Error != "Conflict" {
		t.Errorf("envelope wrong: %+v", env)
	}
}

func TestCreateEmployee_FutureHireDate(t *testing.T) {
	svc := &stubEmployeeService{t: t, createFn: func(context.Context, ports.EmployeeInput) (*domain.Employee, error) {
		return nil, domain.ErrHireDateInFuture
	}}
	e := newTestServer(svc)

	rec := do(e, http.MethodPost, "/api/employees", `{"name":"Jane","email":"jane@example.com","hireDate":"2999-01-01"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env := decodeError(t, rec); env.Message != "hireDate cannot be in the future" {
		t.Errorf("envelope wrong: %+v", env)
	}
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestGetEmployee_OK(t *testing.T) {
	svc := &stubEmployeeService{t: t, getFn: func(_ context.Context, id string) (*domain.Employee, error) {
		if id != knownID {
			t.Errorf("service received id %q", id)
		}
		return sampleEmployee(), nil
	}}
	e := newTestServer(svc)

	rec := do(e, http.MethodGet, "/api/employees/"+knownID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGetEmployee_MalformedID(t *testing.T) {
	e := newTestServer(&stubEmployeeService{t: t})

	rec := do(e, http.MethodGet, "/api/employees/not-a-uuid", "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env := decodeError(t, rec); env.Message != "Employee id must be a valid UUID" {
		t.Errorf("envelope wrong: %+v", env)
	}
}

func TestGetEmployee_TrailingSlashIsEmptyID(t *testing.T) {
	// /api/employees/ is an id request with an empty id, not a list request.
	e := newTestServer(&stubEmployeeService{t: t})

	rec := do(e, http.MethodGet, "/api/employees/", "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if env := decodeError(t, rec); env.Message != "Employee id must be a valid UUID" {
		t.Errorf("envelope wrong: %+v", env)
	}
}

func TestGetEmployee_NotFound(t *testing.T) {
	svc := &stubEmployeeService{t: t, getFn: func(_ context.Context, id string) (*domain.Employee, error) {
		return nil, &domain.NotFoundError{ID: id}
	}}
	e := newTestServer(svc)

	rec := do(e, http.MethodGet, "/api/employees/"+knownID, "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	env := decodeError(t, rec)
	if env.Message != "Employee with id "+knownID+" not found" || env.Error != "Not Found" {
		t.Errorf("envelope wrong: %+v", env)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestListEmployees_Defaults(t *testing.T) {
	svc := &stubEmployeeService{t: t, listFn: func(_ context.Context, input ports.ListEmployeesInput) (*ports.ListEmployeesResult, error) {
		if input.Page != 1 || input.Limit != 10 || input.Name != "" {
			t.Errorf("defaults not applied: %+v", input)
		}
		return &ports.ListEmployeesResult{Items: []*domain.Employee{}, Page: 1, Limit: 10}, nil
	}}
	e := newTestServer(svc)

	rec := do(e, http.MethodGet, "/api/employees", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data []any `json:"data"`
		Meta struct {
			Page       int   `json:"page"`
			Limit      int   `json:"limit"`
			Total      int64 `json:"total"`
			TotalPages int   `json:"totalPages"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Data == nil {
		t.Error("data must be an empty array, not null")
	}
	if body.Meta.Page != 1 || body.Meta.Limit != 10 {
		t.Errorf("meta wrong: %+v", body.Meta)
	}
}

func TestListEmployees_PassesQueryThrough(t *testing.T) {
	svc := &stubEmployeeService{t: t, listFn: func(_ context.Context, input ports.ListEmployeesInput) (*ports.ListEmployeesResult, error) {
		if input.Name != "smith" || input.Page != 2 || input.Limit != 5 {
			t.Errorf("query not passed through: %+v", input)
		}
		return &ports.ListEmployeesResult{Items: []*domain.Employee{sampleEmployee()}, Total: 11, Page: 2, Limit: 5, TotalPages: 3}, nil
	}}
	e := newTestServer(svc)

	rec := do(e, http.MethodGet, "/api/employees?name=smith&page=2&limit=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListEmployees_RejectsOutOfRangeParams(t *testing.T) {
	e := newTestServer(&stubEmployeeService{t: t})

	for _, target := range []string{
		"/api/employees?page=0",
		"/api/employees?limit=0",
		"/api/employees?limit=101",
	} {
		rec := do(e, http.MethodGet, target, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

// ---------------------------------------------------------------------------
// Update / Patch
// ---------------------------------------------------------------------------

func TestUpdateEmployee_OK(t *testing.T) {
	svc := &stubEmployeeService{t: t, replaceFn: func(_ context.Context, id string, input ports.EmployeeInput) (*domain.Employee, error) {
		if id != knownID || input.Name != "Jane Doe" {
			t.Errorf("wrong call: id=%q input=%+v", id, input)
		}
		return sampleEmployee(), nil
	}}
	e := newTestServer(svc)

	rec := do(e, http.MethodPut, "/api/employees/"+knownID, `{"name":"Jane Doe","email":"jane@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateEmployee_RequiresFullBody(t *testing.T) {
	e := newTestServer(&stubEmployeeService{t: t})

	// A body legal for PATCH is not legal for PUT.
	rec := do(e, http.MethodPut, "/api/employees/"+knownID, `{"name":"Jane Doe"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	env := decodeError(t, rec)
	if len(env.Details) != 1 || env.Details[0].Field != "email" {
		t.Errorf("details wrong: %+v", env.Details)
	}
}

func TestPatchEmployee_NullClearsField(t *testing.T) {
	svc := &stubEmployeeService{t: t, patchFn: func(_ context.Context, id string, input ports.PatchEmployeeInput) (*domain.Employee, error) {
		if !input.Phone.Set || !input.Phone.Null {
			t.Errorf("phone must arrive as explicit null: %+v", input.Phone)
		}
		return sampleEmployee(), nil
	}}
	e := newTestServer(svc)

	rec := do(e, http.MethodPatch, "/api/employees/"+knownID, `{"phone":null}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPatchEmployee_EmptyBody(t *testing.T) {
	e := newTestServer(&stubEmployeeService{t: t})

	rec := do(e, http.MethodPatch, "/api/employees/"+knownID, `{}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	env := decodeError(t, rec)
	if len(env.Details) != 1 || env.Details[0].Field != "request" || env.Details[0].Message != "At least one field must be provided" {
		t.Errorf("details wrong: %+v", env.Details)
	}
}

func TestPatchEmployee_MalformedID(t *testing.T) {
	e := newTestServer(&stubEmployeeService{t: t})

	rec := do(e, http.MethodPatch, "/api/employees/123", `{"name":"Jane"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestDeleteEmployee_OK(t *testing.T) {
	svc := &stubEmployeeService{t: t, deleteFn: func(_ context.Context, id string) error {
		return nil
	}}
	e := newTestServer(svc)

	rec := do(e, http.MethodDelete, "/api/employees/"+knownID, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["message"] != "Employee deleted successfully" {
		t.Errorf("message wrong: %q", body["message"])
	}
}

func TestDeleteEmployee_NotFound(t *testing.T) {
	svc := &stubEmployeeService{t: t, deleteFn: func(_ context.Context, id string) error {
		return &domain.NotFoundError{ID: id}
	}}
	e := newTestServer(svc)

	rec := do(e, http.MethodDelete, "/api/employees/"+knownID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
