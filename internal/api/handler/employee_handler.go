package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/peoplecore/employee-api/internal/core/domain"
	"github.com/peoplecore/employee-api/internal/core/normalize"
	"github.com/peoplecore/employee-api/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for employee operations. All error
// translation happens in the central HTTPErrorHandler; handlers just bind,
// normalize, call the service, and render success.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// employeeID extracts and validates the :id path parameter. A malformed id
// is rejected before any service call.
func employeeID(c echo.Context) (string, error) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", domain.ErrMalformedID
	}
	return id, nil
}

// Create handles POST /api/employees.
//
// @Summary      Create an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        body  body      normalize.EmployeePayload  true  "Employee fields"
// @Success      201   {object}  employeeResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	var payload normalize.EmployeePayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input, err := normalize.Employee(payload)
	if err != nil {
		return err
	}

	employee, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEmployeeResponse(employee))
}

// Get handles GET /api/employees/:id.
//
// @Summary      Get an employee by id
// @Tags         employees
// @Produce      json
// @Param        id   path      string  true  "Employee UUID"
// @Success      200  {object}  employeeResponse
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	employee, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

// List handles GET /api/employees.
//
// @Summary      List employees with pagination and name search
// @Tags         employees
// @Produce      json
// @Param        name   query     string  false  "Case-insensitive substring match on name"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Page size 1-100 (default 10)"
// @Success      200    {object}  listEmployeesResponse
// @Failure      400    {object}  map[string]any
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	var req listEmployeesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := ports.ListEmployeesInput{
		Name:  req.Name,
		Page:  defaultPage,
		Limit: defaultLimit,
	}
	if req.Page != nil {
		input.Page = *req.Page
	}
	if req.Limit != nil {
		input.Limit = *req.Limit
	}

	result, err := h.service.List(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// Update handles PUT /api/employees/:id — full update, every settable field
// is overwritten.
//
// @Summary      Replace an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "Employee UUID"
// @Param        body  body      normalize.EmployeePayload  true  "Employee fields"
// @Success      200   {object}  employeeResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	var payload normalize.EmployeePayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input, err := normalize.Employee(payload)
	if err != nil {
		return err
	}

	employee, err := h.service.Replace(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

// Patch handles PATCH /api/employees/:id — partial update, only supplied
// fields change, explicit null clears a nullable field.
//
// @Summary      Partially update an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "Employee UUID"
// @Param        body  body      normalize.EmployeePayload  true  "Fields to change"
// @Success      200   {object}  employeeResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /api/employees/{id} [patch]
func (h *EmployeeHandler) Patch(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	var payload normalize.EmployeePayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input, err := normalize.Patch(payload)
	if err != nil {
		return err
	}

	employee, err := h.service.Patch(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

// Delete handles DELETE /api/employees/:id.
//
// @Summary      Delete an employee
// @Tags         employees
// @Produce      json
// @Param        id   path      string  true  "Employee UUID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Employee deleted successfully"})
}
