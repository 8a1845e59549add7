// Package reconciliation classifies each (employee, day) pair as
// whitelisted, holiday, excepted, present, incomplete punch or absent.
package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/exception"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/jornada"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/punch"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/reconciliation"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/whitelist"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
	"github.com/cge-corrientes/huella-backend-go/internal/service/calendar"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	// DefaultJornadaHours applies to employees without a jornada configuration.
	DefaultJornadaHours int
	// Workers bounds the goroutines used by population-wide classification.
	Workers int
}

var _ reconciliation.Engine = (*Engine)(nil)

type Engine struct {
	whitelist  whitelist.WhitelistRepository
	calendar   *calendar.Resolver
	exceptions exception.ExceptionRepository
	jornadas   jornada.JornadaRepository
	punches    punch.Source
	cfg        Config
}

func NewEngine(
	whitelistRepo whitelist.WhitelistRepository,
	resolver *calendar.Resolver,
	exceptions exception.ExceptionRepository,
	jornadas jornada.JornadaRepository,
	punches punch.Source,
	cfg Config,
) *Engine {
	if cfg.DefaultJornadaHours <= 0 {
		cfg.DefaultJornadaHours = 8
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{
		whitelist:  whitelistRepo,
		calendar:   resolver,
		exceptions: exceptions,
		jornadas:   jornadas,
		punches:    punches,
		cfg:        cfg,
	}
}

// Classify resolves a single day from the registries. The punch source is
// not consulted: record is authoritative, nil meaning no punches.
func (e *Engine) Classify(ctx context.Context, legajo string, day time.Time, record *punch.DailyPunchRecord, jornadaHours *int) (reconciliation.ClassifiedDay, error) {
	day = utils.Day(day)
	f := facts{legajo: legajo, day: day, record: record}

	active, err := e.whitelist.GetActiveByLegajo(ctx, legajo)
	if err != nil {
		return reconciliation.ClassifiedDay{}, fmt.Errorf("check whitelist: %w", err)
	}
	f.whitelisted = active != nil

	if f.holiday, err = e.calendar.IsHoliday(ctx, day); err != nil {
		return reconciliation.ClassifiedDay{}, err
	}

	list, err := e.exceptions.ListByLegajo(ctx, legajo)
	if err != nil {
		return reconciliation.ClassifiedDay{}, fmt.Errorf("list exceptions: %w", err)
	}
	if x, ok := exception.FindOverlap(list, 0, day, day); ok {
		f.exception = &x
	}

	if jornadaHours != nil {
		f.expectedHours = *jornadaHours
	} else {
		cfg, err := e.jornadas.Get(ctx, legajo)
		switch {
		case err == nil:
			f.expectedHours = cfg.Hours
		case errors.Is(err, jornada.ErrJornadaNotFound):
			f.expectedHours = e.cfg.DefaultJornadaHours
			f.jornadaDefaulted = true
		default:
			return reconciliation.ClassifiedDay{}, fmt.Errorf("get jornada: %w", err)
		}
	}

	return classify(f), nil
}

// ClassifyRange returns exactly one entry per day of [start, end], ascending.
func (e *Engine) ClassifyRange(ctx context.Context, legajo string, start, end time.Time) ([]reconciliation.ClassifiedDay, error) {
	start, end = utils.Day(start), utils.Day(end)
	if end.Before(start) {
		return nil, reconciliation.ErrInvalidDateRange
	}

	snap, err := e.loadSnapshot(ctx, []string{legajo}, start, end)
	if err != nil {
		return nil, err
	}
	return e.classifyEmployee(snap, legajo, start, end), nil
}

func (e *Engine) classifyEmployee(snap *snapshot, legajo string, start, end time.Time) []reconciliation.ClassifiedDay {
	out := make([]reconciliation.ClassifiedDay, 0, utils.DaysInclusive(start, end))
	for day := range calendar.EnumerateDays(start, end) {
		out = append(out, classify(snap.facts(legajo, day, e.cfg.DefaultJornadaHours)))
	}
	return out
}

func (e *Engine) ClassifyDay(ctx context.Context, day time.Time, legajos []string) ([]reconciliation.ClassifiedDay, error) {
	days, err := e.ClassifyPopulationByDay(ctx, legajos, day, day)
	if err != nil {
		return nil, err
	}
	return days[0], nil
}

// ClassifyPopulationByDay loads one snapshot for the whole population and
// classifies each day on the worker pool. Within a day, results follow the
// order of legajos.
func (e *Engine) ClassifyPopulationByDay(ctx context.Context, legajos []string, start, end time.Time) ([][]reconciliation.ClassifiedDay, error) {
	start, end = utils.Day(start), utils.Day(end)
	if end.Before(start) {
		return nil, reconciliation.ErrInvalidDateRange
	}

	snap, err := e.loadSnapshot(ctx, legajos, start, end)
	if err != nil {
		return nil, err
	}

	out := make([][]reconciliation.ClassifiedDay, utils.DaysInclusive(start, end))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)

	i := 0
	for day := range calendar.EnumerateDays(start, end) {
		idx := i
		i++
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			row := make([]reconciliation.ClassifiedDay, 0, len(legajos))
			for _, legajo := range legajos {
				row = append(row, classify(snap.facts(legajo, day, e.cfg.DefaultJornadaHours)))
			}
			out[idx] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ClassifyPopulationByEmployee is keyed by legajo; every value satisfies the
// ClassifyRange contract.
func (e *Engine) ClassifyPopulationByEmployee(ctx context.Context, legajos []string, start, end time.Time) (map[string][]reconciliation.ClassifiedDay, error) {
	start, end = utils.Day(start), utils.Day(end)
	if end.Before(start) {
		return nil, reconciliation.ErrInvalidDateRange
	}

	snap, err := e.loadSnapshot(ctx, legajos, start, end)
	if err != nil {
		return nil, err
	}

	results := make([][]reconciliation.ClassifiedDay, len(legajos))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)

	for i, legajo := range legajos {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = e.classifyEmployee(snap, legajo, start, end)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string][]reconciliation.ClassifiedDay, len(legajos))
	for i, legajo := range legajos {
		out[legajo] = results[i]
	}
	return out, nil
}
