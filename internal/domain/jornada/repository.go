package jornada

import "context"

// JornadaRepository - interface for the config_jornada table
type JornadaRepository interface {
	// Get returns ErrJornadaNotFound when the employee has no configuration.
	Get(ctx context.Context, legajo string) (JornadaConfig, error)
	ListAll(ctx context.Context) ([]JornadaConfig, error)
	// Upsert inserts or replaces the configuration keyed by legajo.
	Upsert(ctx context.Context, cfg JornadaConfig) (JornadaConfig, error)
	Delete(ctx context.Context, legajo string) error
}
