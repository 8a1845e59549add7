package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/punch"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
)

type punchKey struct {
	legajo string
	day    time.Time
}

// PunchSource is an in-memory punch.Source. Ranges registered with
// FailBetween behave like an unavailable upstream view.
type PunchSource struct {
	mu      sync.RWMutex
	records map[punchKey]punch.DailyPunchRecord
	failing []punch.DayRange
	cause   error
}

func NewPunchSource(records ...punch.DailyPunchRecord) *PunchSource {
	s := &PunchSource{records: make(map[punchKey]punch.DailyPunchRecord)}
	for _, r := range records {
		s.Put(r)
	}
	return s
}

// Put inserts or replaces the record for (r.Legajo, r.Day).
func (s *PunchSource) Put(r punch.DailyPunchRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.Day = utils.Day(r.Day)
	s.records[punchKey{r.Legajo, r.Day}] = r
}

// FailBetween makes every day in [start, end] unavailable with cause.
func (s *PunchSource) FailBetween(start, end time.Time, cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failing = append(s.failing, punch.DayRange{Start: utils.Day(start), End: utils.Day(end)})
	s.cause = cause
}

func (s *PunchSource) GetDailyPunches(ctx context.Context, legajo string, start, end time.Time) ([]punch.DailyPunchRecord, error) {
	return s.read(ctx, start, end, func(r punch.DailyPunchRecord) bool { return r.Legajo == legajo })
}

func (s *PunchSource) GetDailyPunchesForAll(ctx context.Context, start, end time.Time) ([]punch.DailyPunchRecord, error) {
	return s.read(ctx, start, end, func(punch.DailyPunchRecord) bool { return true })
}

func (s *PunchSource) read(ctx context.Context, start, end time.Time, keep func(punch.DailyPunchRecord) bool) ([]punch.DailyPunchRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sDay, eDay := utils.Day(start), utils.Day(end)
	var missing *punch.IncompleteUpstreamDataError
	for _, f := range s.failing {
		if f.Start.After(eDay) || f.End.Before(sDay) {
			continue
		}
		clipped := f
		if clipped.Start.Before(sDay) {
			clipped.Start = sDay
		}
		if clipped.End.After(eDay) {
			clipped.End = eDay
		}
		if missing == nil {
			missing = &punch.IncompleteUpstreamDataError{Cause: s.cause}
		}
		missing.Unavailable = append(missing.Unavailable, clipped)
	}

	var out []punch.DailyPunchRecord
	for k, r := range s.records {
		if k.day.Before(sDay) || k.day.After(eDay) || !keep(r) || missing.Covers(k.day) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Day.Equal(out[j].Day) {
			return out[i].Day.Before(out[j].Day)
		}
		return out[i].Legajo < out[j].Legajo
	})

	if missing != nil {
		return out, missing
	}
	return out, nil
}
