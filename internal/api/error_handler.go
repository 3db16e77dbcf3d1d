package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/peoplecore/employee-api/internal/core/domain"
)

// errorBody is the canonical failure envelope for all API errors:
// {statusCode, message, error, details?}. Details carry one entry per
// violated field constraint and are omitted otherwise.
type errorBody struct {
	StatusCode int                     `json:"statusCode"`
	Message    string                  `json:"message"`
	Error      string                  `json:"error"`
	Details    []domain.FieldViolation `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Renders validation failures with per-field details.
//   - Logs unexpected errors internally without leaking details to the client.
//
// The handler is a pure translation boundary: no business logic, and the
// same internal outcome always renders the same envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := resolveError(err, log, c)
		_ = c.JSON(body.StatusCode, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) errorBody {
	// Validation failures carry per-field details.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return envelope(http.StatusBadRequest, "Validation failed", ve.Violations)
	}

	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return envelope(http.StatusNotFound, fmt.Sprintf("Employee with id %s not found", nf.ID), nil)
	}

	var ec *domain.EmailConflictError
	if errors.As(err, &ec) {
		return envelope(http.StatusConflict, fmt.Sprintf("Employee with email %s already exists", ec.Email), nil)
	}

	switch {
	case errors.Is(err, domain.ErrHireDateInFuture):
		return envelope(http.StatusBadRequest, "hireDate cannot be in the future", nil)
	case errors.Is(err, domain.ErrEmptyPatch):
		return envelope(http.StatusBadRequest, "At least one field must be provided", nil)
	case errors.Is(err, domain.ErrMalformedID):
		return envelope(http.StatusBadRequest, "Employee id must be a valid UUID", nil)
	}

	// Echo's own errors: bind failures, 404 from the router, 405, 429.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return envelope(he.Code, fmt.Sprintf("%v", he.Message), nil)
	}

	// Unexpected error (storage unreachable and the like): log the real
	// cause, return a generic message. Never mapped to a domain failure.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return envelope(http.StatusInternalServerError, "Internal server error", nil)
}

func envelope(code int, message string, details []domain.FieldViolation) errorBody {
	return errorBody{
		StatusCode: code,
		Message:    message,
		Error:      http.StatusText(code),
		Details:    details,
	}
}
