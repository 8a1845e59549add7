package employee

import "context"

// EmployeeRepository is the read side of the HR directory. The directory is
// owned by HR; this module never writes to it.
type EmployeeRepository interface {
	// GetByLegajo returns ErrEmployeeNotFound when the legajo is unknown.
	GetByLegajo(ctx context.Context, legajo string) (Employee, error)

	// ListActive returns active employees ordered by legajo.
	ListActive(ctx context.Context) ([]Employee, error)
}
