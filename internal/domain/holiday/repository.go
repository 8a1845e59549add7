package holiday

import (
	"context"
	"time"
)

// HolidayRepository - interface for the feriados table
type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Update(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (Holiday, error)
	// GetByDate returns nil, nil when no holiday is registered on date.
	GetByDate(ctx context.Context, date time.Time) (*Holiday, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]Holiday, error)
	// ListByYear returns every holiday when year is nil.
	ListByYear(ctx context.Context, year *int) ([]Holiday, error)
	ListYears(ctx context.Context) ([]int, error)
}
