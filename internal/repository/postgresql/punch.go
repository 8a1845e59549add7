package postgresql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/punch"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/database"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
)

type punchSourceImpl struct {
	db *database.DB
}

// NewPunchSource reads huella.v_asistencia_diaria one calendar month at a
// time. A month that fails to load is reported as unavailable instead of
// failing the whole read.
func NewPunchSource(db *database.DB) punch.Source {
	return &punchSourceImpl{db: db}
}

const punchSelect = `
	SELECT legajo::text, dia,
		dia::timestamp + entrada::time,
		dia::timestamp + salida::time,
		COALESCE(total_marcas, 0)::int,
		horas_trabajadas::float8
	FROM huella.v_asistencia_diaria
`

// GetDailyPunches implements punch.Source.
func (s *punchSourceImpl) GetDailyPunches(ctx context.Context, legajo string, start, end time.Time) ([]punch.DailyPunchRecord, error) {
	query := punchSelect + `WHERE legajo::text = $1 AND dia BETWEEN $2 AND $3 ORDER BY dia`
	return s.readByMonth(ctx, start, end, func(r punch.DayRange) ([]punch.DailyPunchRecord, error) {
		return s.query(ctx, query, legajo, r.Start, r.End)
	})
}

// GetDailyPunchesForAll implements punch.Source.
func (s *punchSourceImpl) GetDailyPunchesForAll(ctx context.Context, start, end time.Time) ([]punch.DailyPunchRecord, error) {
	query := punchSelect + `WHERE dia BETWEEN $1 AND $2 ORDER BY dia, legajo`
	return s.readByMonth(ctx, start, end, func(r punch.DayRange) ([]punch.DailyPunchRecord, error) {
		return s.query(ctx, query, r.Start, r.End)
	})
}

func (s *punchSourceImpl) readByMonth(ctx context.Context, start, end time.Time, read func(punch.DayRange) ([]punch.DailyPunchRecord, error)) ([]punch.DailyPunchRecord, error) {
	var (
		records []punch.DailyPunchRecord
		missing *punch.IncompleteUpstreamDataError
	)

	for _, chunk := range punch.SplitByMonth(start, end) {
		rows, err := read(chunk)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Warn("punch view unavailable",
				"start", utils.FormatDay(chunk.Start),
				"end", utils.FormatDay(chunk.End),
				"error", err,
			)
			if missing == nil {
				missing = &punch.IncompleteUpstreamDataError{Cause: err}
			}
			missing.Unavailable = append(missing.Unavailable, chunk)
			continue
		}
		records = append(records, rows...)
	}

	if missing != nil {
		return records, missing
	}
	return records, nil
}

func (s *punchSourceImpl) query(ctx context.Context, query string, args ...any) ([]punch.DailyPunchRecord, error) {
	q := GetQuerier(ctx, s.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query daily punches: %w", err)
	}
	defer rows.Close()

	var records []punch.DailyPunchRecord
	for rows.Next() {
		var r punch.DailyPunchRecord
		if err := rows.Scan(&r.Legajo, &r.Day, &r.FirstIn, &r.LastOut, &r.TotalPunches, &r.WorkedHours); err != nil {
			return nil, fmt.Errorf("scan daily punch: %w", err)
		}
		r.Day = utils.Day(r.Day)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("read daily punches: %w", err)
	}
	return records, nil
}
