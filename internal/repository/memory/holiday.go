package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/holiday"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
)

type HolidayRepository struct {
	mu       sync.RWMutex
	nextID   int64
	holidays map[int64]holiday.Holiday
}

func NewHolidayRepository() *HolidayRepository {
	return &HolidayRepository{holidays: make(map[int64]holiday.Holiday)}
}

func (r *HolidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h.Date = utils.Day(h.Date)
	if r.dateTakenLocked(h.Date, 0) {
		return holiday.Holiday{}, holiday.ErrHolidayDateExists
	}
	r.nextID++
	h.ID = r.nextID
	r.holidays[h.ID] = h
	return h, nil
}

func (r *HolidayRepository) Update(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.holidays[h.ID]; !ok {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	h.Date = utils.Day(h.Date)
	if r.dateTakenLocked(h.Date, h.ID) {
		return holiday.Holiday{}, holiday.ErrHolidayDateExists
	}
	r.holidays[h.ID] = h
	return h, nil
}

func (r *HolidayRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.holidays[id]; !ok {
		return holiday.ErrHolidayNotFound
	}
	delete(r.holidays, id)
	return nil
}

func (r *HolidayRepository) GetByID(ctx context.Context, id int64) (holiday.Holiday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.holidays[id]
	if !ok {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return h, nil
}

func (r *HolidayRepository) GetByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d := utils.Day(date)
	for _, h := range r.holidays {
		if h.Date.Equal(d) {
			return &h, nil
		}
	}
	return nil, nil
}

func (r *HolidayRepository) ListBetween(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	s, e := utils.Day(start), utils.Day(end)
	return r.filter(func(h holiday.Holiday) bool {
		return !h.Date.Before(s) && !h.Date.After(e)
	}), nil
}

func (r *HolidayRepository) ListByYear(ctx context.Context, year *int) ([]holiday.Holiday, error) {
	return r.filter(func(h holiday.Holiday) bool {
		return year == nil || h.Date.Year() == *year
	}), nil
}

func (r *HolidayRepository) ListYears(ctx context.Context) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[int]struct{})
	var years []int
	for _, h := range r.holidays {
		if _, ok := seen[h.Date.Year()]; !ok {
			seen[h.Date.Year()] = struct{}{}
			years = append(years, h.Date.Year())
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

func (r *HolidayRepository) filter(keep func(holiday.Holiday) bool) []holiday.Holiday {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []holiday.Holiday
	for _, h := range r.holidays {
		if keep(h) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (r *HolidayRepository) dateTakenLocked(date time.Time, excludeID int64) bool {
	for id, h := range r.holidays {
		if id != excludeID && h.Date.Equal(date) {
			return true
		}
	}
	return false
}
