package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/jornada"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type jornadaRepositoryImpl struct {
	db *database.DB
}

func NewJornadaRepository(db *database.DB) jornada.JornadaRepository {
	return &jornadaRepositoryImpl{db: db}
}

const jornadaColumns = `id, legajo, horas_jornada, descripcion, vigente_desde, updated_at`

// Get implements jornada.JornadaRepository.
func (r *jornadaRepositoryImpl) Get(ctx context.Context, legajo string) (jornada.JornadaConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + jornadaColumns + ` FROM huella.config_jornada WHERE legajo = $1`

	cfg, err := scanJornada(q.QueryRow(ctx, query, legajo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return jornada.JornadaConfig{}, jornada.ErrJornadaNotFound
		}
		return jornada.JornadaConfig{}, fmt.Errorf("get jornada for %s: %w", legajo, err)
	}
	return cfg, nil
}

// ListAll implements jornada.JornadaRepository.
func (r *jornadaRepositoryImpl) ListAll(ctx context.Context) ([]jornada.JornadaConfig, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+jornadaColumns+` FROM huella.config_jornada ORDER BY legajo`)
	if err != nil {
		return nil, fmt.Errorf("list jornadas: %w", err)
	}
	defer rows.Close()

	var configs []jornada.JornadaConfig
	for rows.Next() {
		cfg, err := scanJornada(rows)
		if err != nil {
			return nil, fmt.Errorf("scan jornada: %w", err)
		}
		configs = append(configs, cfg)
	}
	return configs, rows.Err()
}

// Upsert implements jornada.JornadaRepository.
func (r *jornadaRepositoryImpl) Upsert(ctx context.Context, cfg jornada.JornadaConfig) (jornada.JornadaConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO huella.config_jornada (legajo, horas_jornada, descripcion, vigente_desde)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (legajo) DO UPDATE
		SET horas_jornada = EXCLUDED.horas_jornada,
			descripcion = EXCLUDED.descripcion,
			vigente_desde = EXCLUDED.vigente_desde,
			updated_at = NOW()
		RETURNING ` + jornadaColumns

	saved, err := scanJornada(q.QueryRow(ctx, query, cfg.Legajo, cfg.Hours, cfg.Description, cfg.EffectiveFrom))
	if err != nil {
		return jornada.JornadaConfig{}, fmt.Errorf("upsert jornada for %s: %w", cfg.Legajo, err)
	}
	return saved, nil
}

// Delete implements jornada.JornadaRepository.
func (r *jornadaRepositoryImpl) Delete(ctx context.Context, legajo string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM huella.config_jornada WHERE legajo = $1`, legajo)
	if err != nil {
		return fmt.Errorf("delete jornada for %s: %w", legajo, err)
	}
	if tag.RowsAffected() == 0 {
		return jornada.ErrJornadaNotFound
	}
	return nil
}

func scanJornada(row pgx.Row) (jornada.JornadaConfig, error) {
	var cfg jornada.JornadaConfig
	err := row.Scan(&cfg.ID, &cfg.Legajo, &cfg.Hours, &cfg.Description, &cfg.EffectiveFrom, &cfg.UpdatedAt)
	return cfg, err
}
