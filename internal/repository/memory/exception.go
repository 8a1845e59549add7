package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/exception"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
)

// ExceptionRepository stores exceptions without enforcing the overlap
// invariant; the exception service owns that check.
type ExceptionRepository struct {
	mu         sync.RWMutex
	nextID     int64
	exceptions map[int64]exception.Exception
}

func NewExceptionRepository() *ExceptionRepository {
	return &ExceptionRepository{exceptions: make(map[int64]exception.Exception)}
}

func (r *ExceptionRepository) Create(ctx context.Context, e exception.Exception) (exception.Exception, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now()
	e.ID = r.nextID
	e.StartDate, e.EndDate = utils.Day(e.StartDate), utils.Day(e.EndDate)
	e.CreatedAt, e.UpdatedAt = now, now
	r.exceptions[e.ID] = e
	return e, nil
}

func (r *ExceptionRepository) Update(ctx context.Context, e exception.Exception) (exception.Exception, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.exceptions[e.ID]
	if !ok {
		return exception.Exception{}, exception.ErrExceptionNotFound
	}
	e.StartDate, e.EndDate = utils.Day(e.StartDate), utils.Day(e.EndDate)
	e.CreatedBy, e.CreatedAt = existing.CreatedBy, existing.CreatedAt
	e.UpdatedAt = time.Now()
	r.exceptions[e.ID] = e
	return e, nil
}

func (r *ExceptionRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.exceptions[id]; !ok {
		return exception.ErrExceptionNotFound
	}
	delete(r.exceptions, id)
	return nil
}

func (r *ExceptionRepository) GetByID(ctx context.Context, id int64) (exception.Exception, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.exceptions[id]
	if !ok {
		return exception.Exception{}, exception.ErrExceptionNotFound
	}
	return e, nil
}

func (r *ExceptionRepository) ListByLegajo(ctx context.Context, legajo string) ([]exception.Exception, error) {
	return r.filter(func(e exception.Exception) bool { return e.Legajo == legajo }), nil
}

func (r *ExceptionRepository) ListAll(ctx context.Context) ([]exception.Exception, error) {
	return r.filter(func(exception.Exception) bool { return true }), nil
}

func (r *ExceptionRepository) ListOverlapping(ctx context.Context, start, end time.Time) ([]exception.Exception, error) {
	s, e := utils.Day(start), utils.Day(end)
	return r.filter(func(x exception.Exception) bool { return x.Overlaps(s, e) }), nil
}

// LockEmployee is a no-op: memory writes are serialized by the service's
// keyed mutex.
func (r *ExceptionRepository) LockEmployee(ctx context.Context, legajo string) error {
	return nil
}

func (r *ExceptionRepository) filter(keep func(exception.Exception) bool) []exception.Exception {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []exception.Exception
	for _, e := range r.exceptions {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
