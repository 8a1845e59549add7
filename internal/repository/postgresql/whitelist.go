package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/whitelist"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type whitelistRepositoryImpl struct {
	db *database.DB
}

func NewWhitelistRepository(db *database.DB) whitelist.WhitelistRepository {
	return &whitelistRepositoryImpl{db: db}
}

const whitelistSelect = `
	SELECT w.id, w.legajo, w.motivo, w.activo, w.created_by, w.created_at,
		l.nombre, l.area, l.turno
	FROM huella.whitelist_empleados w
	LEFT JOIN huella.legajo l ON l.cod::text = w.legajo
`

// Create implements whitelist.WhitelistRepository.
func (r *whitelistRepositoryImpl) Create(ctx context.Context, entry whitelist.Entry) (whitelist.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO huella.whitelist_empleados (legajo, motivo, activo, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, entry.Legajo, entry.Motive, entry.Active, entry.CreatedBy).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return whitelist.Entry{}, fmt.Errorf("whitelist %s: %w", entry.Legajo, whitelist.ErrDuplicateActive)
		}
		return whitelist.Entry{}, fmt.Errorf("whitelist %s: %w", entry.Legajo, err)
	}
	return entry, nil
}

// GetByID implements whitelist.WhitelistRepository.
func (r *whitelistRepositoryImpl) GetByID(ctx context.Context, id int64) (whitelist.Entry, error) {
	q := GetQuerier(ctx, r.db)

	entry, err := scanEntry(q.QueryRow(ctx, whitelistSelect+` WHERE w.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return whitelist.Entry{}, whitelist.ErrWhitelistEntryNotFound
		}
		return whitelist.Entry{}, fmt.Errorf("get whitelist entry %d: %w", id, err)
	}
	return entry, nil
}

// GetActiveByLegajo implements whitelist.WhitelistRepository.
func (r *whitelistRepositoryImpl) GetActiveByLegajo(ctx context.Context, legajo string) (*whitelist.Entry, error) {
	q := GetQuerier(ctx, r.db)

	entry, err := scanEntry(q.QueryRow(ctx, whitelistSelect+` WHERE w.legajo = $1 AND w.activo LIMIT 1`, legajo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active whitelist entry for %s: %w", legajo, err)
	}
	return &entry, nil
}

// SetActive implements whitelist.WhitelistRepository.
func (r *whitelistRepositoryImpl) SetActive(ctx context.Context, id int64, active bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE huella.whitelist_empleados SET activo = $1 WHERE id = $2`, active, id)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return fmt.Errorf("activate whitelist entry %d: %w", id, whitelist.ErrDuplicateActive)
		}
		return fmt.Errorf("set whitelist entry %d active: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return whitelist.ErrWhitelistEntryNotFound
	}
	return nil
}

// UpdateMotive implements whitelist.WhitelistRepository.
func (r *whitelistRepositoryImpl) UpdateMotive(ctx context.Context, id int64, motive *string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE huella.whitelist_empleados SET motivo = $1 WHERE id = $2`, motive, id)
	if err != nil {
		return fmt.Errorf("update whitelist entry %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return whitelist.ErrWhitelistEntryNotFound
	}
	return nil
}

// Delete implements whitelist.WhitelistRepository.
func (r *whitelistRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM huella.whitelist_empleados WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete whitelist entry %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return whitelist.ErrWhitelistEntryNotFound
	}
	return nil
}

// List implements whitelist.WhitelistRepository.
func (r *whitelistRepositoryImpl) List(ctx context.Context) ([]whitelist.Entry, error) {
	return r.list(ctx, whitelistSelect+` ORDER BY w.created_at DESC, w.id DESC`)
}

// ListActive implements whitelist.WhitelistRepository.
func (r *whitelistRepositoryImpl) ListActive(ctx context.Context) ([]whitelist.Entry, error) {
	return r.list(ctx, whitelistSelect+` WHERE w.activo ORDER BY w.legajo`)
}

// LockEmployee implements whitelist.WhitelistRepository.
func (r *whitelistRepositoryImpl) LockEmployee(ctx context.Context, legajo string) error {
	return lockEmployee(ctx, r.db, "whitelist_empleados", legajo)
}

func (r *whitelistRepositoryImpl) list(ctx context.Context, query string) ([]whitelist.Entry, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list whitelist: %w", err)
	}
	defer rows.Close()

	var entries []whitelist.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan whitelist entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (whitelist.Entry, error) {
	var e whitelist.Entry
	err := row.Scan(
		&e.ID, &e.Legajo, &e.Motive, &e.Active, &e.CreatedBy, &e.CreatedAt,
		&e.Name, &e.Area, &e.Shift,
	)
	return e, err
}
