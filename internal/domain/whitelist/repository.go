package whitelist

import "context"

// WhitelistRepository - interface for the whitelist_empleados table
type WhitelistRepository interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	GetByID(ctx context.Context, id int64) (Entry, error)
	// GetActiveByLegajo returns nil, nil when the employee has no active entry.
	GetActiveByLegajo(ctx context.Context, legajo string) (*Entry, error)
	SetActive(ctx context.Context, id int64, active bool) error
	UpdateMotive(ctx context.Context, id int64, motive *string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Entry, error)
	ListActive(ctx context.Context) ([]Entry, error)
	LockEmployee(ctx context.Context, legajo string) error
}
