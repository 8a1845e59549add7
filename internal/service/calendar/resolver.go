// Package calendar answers which days are holidays. Configured non-working
// weekdays are reported as synthetic holidays that are never persisted.
package calendar

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/holiday"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
)

type Resolver struct {
	holidays   holiday.HolidayRepository
	nonWorking []time.Weekday
}

func NewResolver(holidays holiday.HolidayRepository, nonWorking []time.Weekday) *Resolver {
	return &Resolver{
		holidays:   holidays,
		nonWorking: slices.Clone(nonWorking),
	}
}

// IsHoliday returns the holiday on date, or nil. A registered holiday takes
// precedence over a non-working weekday.
func (r *Resolver) IsHoliday(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	day := utils.Day(date)

	h, err := r.holidays.GetByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("lookup holiday: %w", err)
	}
	if h != nil {
		return h, nil
	}
	if w, ok := r.weekend(day); ok {
		return &w, nil
	}
	return nil, nil
}

// HolidaysBetween returns every holiday in [start, end] keyed by day.
func (r *Resolver) HolidaysBetween(ctx context.Context, start, end time.Time) (map[time.Time]holiday.Holiday, error) {
	registered, err := r.holidays.ListBetween(ctx, utils.Day(start), utils.Day(end))
	if err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}

	out := make(map[time.Time]holiday.Holiday, len(registered))
	for day := range EnumerateDays(start, end) {
		if w, ok := r.weekend(day); ok {
			out[day] = w
		}
	}
	for _, h := range registered {
		out[utils.Day(h.Date)] = h
	}
	return out, nil
}

func (r *Resolver) weekend(day time.Time) (holiday.Holiday, bool) {
	if !slices.Contains(r.nonWorking, day.Weekday()) {
		return holiday.Holiday{}, false
	}
	return holiday.Holiday{
		Date:        day,
		Description: "No laborable (" + holiday.WeekdayName(day.Weekday()) + ")",
		Type:        holiday.HolidayTypeWeekend,
	}, true
}

// EnumerateDays yields every calendar day in [start, end] in ascending order.
// The sequence may be ranged over more than once.
func EnumerateDays(start, end time.Time) iter.Seq[time.Time] {
	s, e := utils.Day(start), utils.Day(end)
	return func(yield func(time.Time) bool) {
		for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "domingo": time.Sunday,
	"monday": time.Monday, "lunes": time.Monday,
	"tuesday": time.Tuesday, "martes": time.Tuesday,
	"wednesday": time.Wednesday, "miercoles": time.Wednesday, "miércoles": time.Wednesday,
	"thursday": time.Thursday, "jueves": time.Thursday,
	"friday": time.Friday, "viernes": time.Friday,
	"saturday": time.Saturday, "sabado": time.Saturday, "sábado": time.Saturday,
}

// ParseWeekdays parses a comma separated list of English or Spanish weekday
// names. An empty string yields no weekdays.
func ParseWeekdays(s string) ([]time.Weekday, error) {
	var out []time.Weekday
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		d, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		if !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	return out, nil
}
