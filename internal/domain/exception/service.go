package exception

import (
	"context"
	"time"
)

type ExceptionService interface {
	Create(ctx context.Context, req CreateExceptionRequest) (Exception, error)
	Update(ctx context.Context, req UpdateExceptionRequest) (Exception, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (Exception, error)
	List(ctx context.Context) ([]Exception, error)
	ListFor(ctx context.Context, legajo string) ([]Exception, error)
	// ListCurrent returns the exceptions covering day.
	ListCurrent(ctx context.Context, day time.Time) ([]Exception, error)
	IsExcepted(ctx context.Context, legajo string, day time.Time) (bool, error)
	IsExceptedAny(ctx context.Context, legajo string, start, end time.Time) (bool, error)
}
