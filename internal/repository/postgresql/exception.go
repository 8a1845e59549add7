package postgresql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/exception"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type exceptionRepositoryImpl struct {
	db *database.DB
}

func NewExceptionRepository(db *database.DB) exception.ExceptionRepository {
	return &exceptionRepositoryImpl{db: db}
}

const exceptionColumns = `id, legajo, tipo, fecha_inicio, fecha_fin, descripcion, created_by, created_at, updated_at`

// Create implements exception.ExceptionRepository.
func (r *exceptionRepositoryImpl) Create(ctx context.Context, e exception.Exception) (exception.Exception, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO huella.excepciones_asistencia (legajo, tipo, fecha_inicio, fecha_fin, descripcion, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + exceptionColumns

	saved, err := scanException(q.QueryRow(ctx, query,
		e.Legajo, e.Type, e.StartDate, e.EndDate, e.Description, e.CreatedBy,
	))
	if err != nil {
		if isPgError(err, pgExclusionViolation) {
			return exception.Exception{}, r.overlapError(ctx, e, fmt.Sprintf("create exception for %s", e.Legajo))
		}
		return exception.Exception{}, fmt.Errorf("create exception for %s: %w", e.Legajo, err)
	}
	return saved, nil
}

// Update implements exception.ExceptionRepository.
func (r *exceptionRepositoryImpl) Update(ctx context.Context, e exception.Exception) (exception.Exception, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE huella.excepciones_asistencia
		SET legajo = $1, tipo = $2, fecha_inicio = $3, fecha_fin = $4, descripcion = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + exceptionColumns

	saved, err := scanException(q.QueryRow(ctx, query,
		e.Legajo, e.Type, e.StartDate, e.EndDate, e.Description, e.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exception.Exception{}, exception.ErrExceptionNotFound
		}
		if isPgError(err, pgExclusionViolation) {
			return exception.Exception{}, r.overlapError(ctx, e, fmt.Sprintf("update exception %d", e.ID))
		}
		return exception.Exception{}, fmt.Errorf("update exception %d: %w", e.ID, err)
	}
	return saved, nil
}

// Delete implements exception.ExceptionRepository.
func (r *exceptionRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM huella.excepciones_asistencia WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete exception %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return exception.ErrExceptionNotFound
	}
	return nil
}

// GetByID implements exception.ExceptionRepository.
func (r *exceptionRepositoryImpl) GetByID(ctx context.Context, id int64) (exception.Exception, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + exceptionColumns + ` FROM huella.excepciones_asistencia WHERE id = $1`

	e, err := scanException(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exception.Exception{}, exception.ErrExceptionNotFound
		}
		return exception.Exception{}, fmt.Errorf("get exception %d: %w", id, err)
	}
	return e, nil
}

// ListByLegajo implements exception.ExceptionRepository.
func (r *exceptionRepositoryImpl) ListByLegajo(ctx context.Context, legajo string) ([]exception.Exception, error) {
	query := `
		SELECT ` + exceptionColumns + `
		FROM huella.excepciones_asistencia
		WHERE legajo = $1
		ORDER BY fecha_inicio
	`
	return r.list(ctx, query, legajo)
}

// ListAll implements exception.ExceptionRepository.
func (r *exceptionRepositoryImpl) ListAll(ctx context.Context) ([]exception.Exception, error) {
	query := `
		SELECT ` + exceptionColumns + `
		FROM huella.excepciones_asistencia
		ORDER BY fecha_inicio DESC, id DESC
	`
	return r.list(ctx, query)
}

// ListOverlapping implements exception.ExceptionRepository.
func (r *exceptionRepositoryImpl) ListOverlapping(ctx context.Context, start, end time.Time) ([]exception.Exception, error) {
	query := `
		SELECT ` + exceptionColumns + `
		FROM huella.excepciones_asistencia
		WHERE fecha_inicio <= $2 AND $1 <= fecha_fin
		ORDER BY legajo, fecha_inicio
	`
	return r.list(ctx, query, start, end)
}

// overlapError names the row the exclusion constraint matched. The surrounding
// transaction is aborted at this point, so the lookup runs on the pool.
func (r *exceptionRepositoryImpl) overlapError(ctx context.Context, e exception.Exception, op string) error {
	query := `
		SELECT ` + exceptionColumns + `
		FROM huella.excepciones_asistencia
		WHERE legajo = $1 AND id <> $2 AND fecha_inicio <= $4 AND $3 <= fecha_fin
		ORDER BY fecha_inicio
		LIMIT 1
	`
	conflict, err := scanException(r.db.QueryRow(ctx, query, e.Legajo, e.ID, e.StartDate, e.EndDate))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			slog.Warn("Failed to load conflicting exception", "legajo", e.Legajo, "error", err)
		}
		return fmt.Errorf("%s: %w", op, exception.ErrOverlappingException)
	}
	return fmt.Errorf("%s: %w", op, &exception.OverlapError{
		Legajo:         e.Legajo,
		CandidateStart: e.StartDate,
		CandidateEnd:   e.EndDate,
		Conflict:       conflict,
	})
}

// LockEmployee implements exception.ExceptionRepository.
func (r *exceptionRepositoryImpl) LockEmployee(ctx context.Context, legajo string) error {
	return lockEmployee(ctx, r.db, "excepciones_asistencia", legajo)
}

func (r *exceptionRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]exception.Exception, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exceptions: %w", err)
	}
	defer rows.Close()

	var exceptions []exception.Exception
	for rows.Next() {
		e, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exception: %w", err)
		}
		exceptions = append(exceptions, e)
	}
	return exceptions, rows.Err()
}

func scanException(row pgx.Row) (exception.Exception, error) {
	var e exception.Exception
	err := row.Scan(
		&e.ID, &e.Legajo, &e.Type, &e.StartDate, &e.EndDate,
		&e.Description, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}
