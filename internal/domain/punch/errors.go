package punch

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
)

var ErrIncompleteUpstreamData = errors.New("punch data source partially unavailable")

// DayRange is an inclusive range of calendar days.
type DayRange struct {
	Start time.Time
	End   time.Time
}

func (r DayRange) Contains(day time.Time) bool {
	d := utils.Day(day)
	return !d.Before(utils.Day(r.Start)) && !d.After(utils.Day(r.End))
}

// IncompleteUpstreamDataError is returned together with the records that could
// be read when part of the requested range was unavailable.
type IncompleteUpstreamDataError struct {
	Unavailable []DayRange
	Cause       error
}

func (e *IncompleteUpstreamDataError) Error() string {
	parts := make([]string, 0, len(e.Unavailable))
	for _, r := range e.Unavailable {
		parts = append(parts, fmt.Sprintf("%s..%s", utils.FormatDay(r.Start), utils.FormatDay(r.End)))
	}
	msg := fmt.Sprintf("%s: %s", ErrIncompleteUpstreamData.Error(), strings.Join(parts, ", "))
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *IncompleteUpstreamDataError) Is(target error) bool {
	return target == ErrIncompleteUpstreamData
}

func (e *IncompleteUpstreamDataError) Unwrap() error {
	return e.Cause
}

// Covers reports whether day falls in one of the unavailable ranges.
func (e *IncompleteUpstreamDataError) Covers(day time.Time) bool {
	if e == nil {
		return false
	}
	for _, r := range e.Unavailable {
		if r.Contains(day) {
			return true
		}
	}
	return false
}

// SplitByMonth partitions [start, end] into per-calendar-month ranges, in order.
func SplitByMonth(start, end time.Time) []DayRange {
	s, e := utils.Day(start), utils.Day(end)
	var out []DayRange
	for !s.After(e) {
		_, last := utils.MonthBounds(s)
		if last.After(e) {
			last = e
		}
		out = append(out, DayRange{Start: s, End: last})
		s = last.AddDate(0, 0, 1)
	}
	return out
}
