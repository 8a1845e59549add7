package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/holiday"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO huella.feriados (fecha, descripcion, tipo)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := q.QueryRow(ctx, query, h.Date, h.Description, h.Type).Scan(&h.ID)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return holiday.Holiday{}, holiday.ErrHolidayDateExists
		}
		return holiday.Holiday{}, fmt.Errorf("create holiday: %w", err)
	}
	return h, nil
}

// Update implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Update(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE huella.feriados
		SET fecha = $1, descripcion = $2, tipo = $3
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, h.Date, h.Description, h.Type, h.ID)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return holiday.Holiday{}, holiday.ErrHolidayDateExists
		}
		return holiday.Holiday{}, fmt.Errorf("update holiday %d: %w", h.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return h, nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM huella.feriados WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete holiday %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

const holidayColumns = `id, fecha, descripcion, tipo`

// GetByID implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id int64) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + ` FROM huella.feriados WHERE id = $1`

	h, err := scanHoliday(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("get holiday %d: %w", id, err)
	}
	return h, nil
}

// GetByDate implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + ` FROM huella.feriados WHERE fecha = $1`

	h, err := scanHoliday(q.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get holiday on %s: %w", date.Format(time.DateOnly), err)
	}
	return &h, nil
}

// ListBetween implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListBetween(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	query := `
		SELECT ` + holidayColumns + `
		FROM huella.feriados
		WHERE fecha BETWEEN $1 AND $2
		ORDER BY fecha
	`
	return r.list(ctx, query, start, end)
}

// ListByYear implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListByYear(ctx context.Context, year *int) ([]holiday.Holiday, error) {
	query := `
		SELECT ` + holidayColumns + `
		FROM huella.feriados
		WHERE $1::int IS NULL OR EXTRACT(YEAR FROM fecha)::int = $1::int
		ORDER BY fecha
	`
	return r.list(ctx, query, year)
}

// ListYears implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListYears(ctx context.Context) ([]int, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT DISTINCT EXTRACT(YEAR FROM fecha)::int AS anio
		FROM huella.feriados
		ORDER BY anio DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list holiday years: %w", err)
	}
	years, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("scan holiday years: %w", err)
	}
	return years, nil
}

func (r *holidayRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func scanHoliday(row pgx.Row) (holiday.Holiday, error) {
	var h holiday.Holiday
	err := row.Scan(&h.ID, &h.Date, &h.Description, &h.Type)
	h.Date = h.Date.UTC()
	return h, err
}
