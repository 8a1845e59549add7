package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/auth"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/employee"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/exception"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/holiday"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/jornada"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/punch"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/reconciliation"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/report"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/whitelist"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var overlap *exception.OverlapError
	if errors.As(err, &overlap) {
		ConflictWithDetails(w, "Exception overlaps an existing exception", exception.ConflictDetails(overlap))
		return
	}

	var duplicate *whitelist.DuplicateActiveError
	if errors.As(err, &duplicate) {
		ConflictWithDetails(w, "Employee already has an active whitelist entry", map[string]any{
			"legajo":      duplicate.Legajo,
			"existing_id": duplicate.Existing.ID,
		})
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Directory errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is inactive", nil)

	// Registry errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayDateExists):
		Conflict(w, "A holiday is already registered for that date")
	case errors.Is(err, holiday.ErrInvalidHolidayType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, jornada.ErrJornadaNotFound):
		NotFound(w, "Jornada configuration not found")
	case errors.Is(err, jornada.ErrInvalidJornadaHours):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, exception.ErrExceptionNotFound):
		NotFound(w, "Exception not found")
	case errors.Is(err, exception.ErrOverlappingException):
		Conflict(w, "Exception overlaps an existing exception")
	case errors.Is(err, exception.ErrInvalidExceptionType),
		errors.Is(err, exception.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, whitelist.ErrWhitelistEntryNotFound):
		NotFound(w, "Whitelist entry not found")
	case errors.Is(err, whitelist.ErrDuplicateActive):
		Conflict(w, "Employee already has an active whitelist entry")

	// Query errors
	case errors.Is(err, reconciliation.ErrInvalidDateRange),
		errors.Is(err, report.ErrInvalidDateRange),
		errors.Is(err, report.ErrInvalidMonth),
		errors.Is(err, report.ErrInvalidThreshold):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, punch.ErrIncompleteUpstreamData):
		ServiceUnavailable(w, "Attendance data source unavailable")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		ServiceUnavailable(w, "Request canceled")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
