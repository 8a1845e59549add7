package exception

import (
	"context"
	"time"
)

// ExceptionRepository - interface for the excepciones_asistencia table
type ExceptionRepository interface {
	Create(ctx context.Context, e Exception) (Exception, error)
	Update(ctx context.Context, e Exception) (Exception, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (Exception, error)
	ListByLegajo(ctx context.Context, legajo string) ([]Exception, error)
	ListAll(ctx context.Context) ([]Exception, error)
	// ListOverlapping returns exceptions of every employee intersecting [start, end].
	ListOverlapping(ctx context.Context, start, end time.Time) ([]Exception, error)
	// LockEmployee serializes writes for legajo until the surrounding
	// transaction ends.
	LockEmployee(ctx context.Context, legajo string) error
}
