package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/exception"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/holiday"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/punch"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
	"golang.org/x/sync/errgroup"
)

type punchKey struct {
	legajo string
	day    time.Time
}

// snapshot holds every registry row and punch record needed to classify a
// set of employees over [start, end]. It is read-only once loaded.
type snapshot struct {
	whitelisted map[string]bool
	holidays    map[time.Time]holiday.Holiday
	exceptions  map[string][]exception.Exception
	jornadas    map[string]int
	punches     map[punchKey]punch.DailyPunchRecord
	unavailable *punch.IncompleteUpstreamDataError
}

func (e *Engine) loadSnapshot(ctx context.Context, legajos []string, start, end time.Time) (*snapshot, error) {
	wanted := make(map[string]bool, len(legajos))
	for _, l := range legajos {
		wanted[l] = true
	}

	snap := &snapshot{
		whitelisted: make(map[string]bool),
		exceptions:  make(map[string][]exception.Exception),
		jornadas:    make(map[string]int),
		punches:     make(map[punchKey]punch.DailyPunchRecord),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		entries, err := e.whitelist.ListActive(gCtx)
		if err != nil {
			return fmt.Errorf("load whitelist: %w", err)
		}
		for _, entry := range entries {
			snap.whitelisted[entry.Legajo] = true
		}
		return nil
	})

	g.Go(func() error {
		holidays, err := e.calendar.HolidaysBetween(gCtx, start, end)
		if err != nil {
			return fmt.Errorf("load holidays: %w", err)
		}
		snap.holidays = holidays
		return nil
	})

	g.Go(func() error {
		list, err := e.exceptions.ListOverlapping(gCtx, start, end)
		if err != nil {
			return fmt.Errorf("load exceptions: %w", err)
		}
		for _, x := range list {
			if wanted[x.Legajo] {
				snap.exceptions[x.Legajo] = append(snap.exceptions[x.Legajo], x)
			}
		}
		return nil
	})

	g.Go(func() error {
		configs, err := e.jornadas.ListAll(gCtx)
		if err != nil {
			return fmt.Errorf("load jornadas: %w", err)
		}
		for _, cfg := range configs {
			if wanted[cfg.Legajo] {
				snap.jornadas[cfg.Legajo] = cfg.Hours
			}
		}
		return nil
	})

	g.Go(func() error {
		var (
			records []punch.DailyPunchRecord
			err     error
		)
		if len(legajos) == 1 {
			records, err = e.punches.GetDailyPunches(gCtx, legajos[0], start, end)
		} else {
			records, err = e.punches.GetDailyPunchesForAll(gCtx, start, end)
		}

		unavailable, err := degrade(gCtx, err, start, end)
		if err != nil {
			return fmt.Errorf("load punches: %w", err)
		}
		snap.unavailable = unavailable

		for _, r := range records {
			if wanted[r.Legajo] {
				snap.punches[punchKey{r.Legajo, utils.Day(r.Day)}] = r
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// degrade turns a punch source failure into the set of unavailable days.
// Only cancellation is returned as an error.
func degrade(ctx context.Context, err error, start, end time.Time) (*punch.IncompleteUpstreamDataError, error) {
	if err == nil {
		return nil, nil
	}
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}

	var partial *punch.IncompleteUpstreamDataError
	if errors.As(err, &partial) {
		return partial, nil
	}

	slog.Warn("punch source unavailable, classifying range as data incomplete",
		"start", utils.FormatDay(start),
		"end", utils.FormatDay(end),
		"error", err,
	)
	return &punch.IncompleteUpstreamDataError{
		Unavailable: []punch.DayRange{{Start: utils.Day(start), End: utils.Day(end)}},
		Cause:       err,
	}, nil
}

func (s *snapshot) facts(legajo string, day time.Time, defaultHours int) facts {
	f := facts{
		legajo:      legajo,
		day:         day,
		whitelisted: s.whitelisted[legajo],
		unavailable: s.unavailable.Covers(day),
	}

	if h, ok := s.holidays[day]; ok {
		f.holiday = &h
	}

	if list := s.exceptions[legajo]; len(list) > 0 {
		if x, ok := exception.FindOverlap(list, 0, day, day); ok {
			f.exception = &x
		}
	}

	if r, ok := s.punches[punchKey{legajo, day}]; ok {
		f.record = &r
	}

	if hours, ok := s.jornadas[legajo]; ok {
		f.expectedHours = hours
	} else {
		f.expectedHours = defaultHours
		f.jornadaDefaulted = true
	}

	return f
}
