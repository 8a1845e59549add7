package jornada

import "context"

type JornadaService interface {
	Get(ctx context.Context, legajo string) (JornadaConfig, error)
	// Resolve returns the hours in effect for legajo and whether the system
	// default was applied because no configuration exists.
	Resolve(ctx context.Context, legajo string) (hours int, defaulted bool, err error)
	Upsert(ctx context.Context, req UpsertJornadaRequest) (JornadaConfig, error)
	BulkUpsert(ctx context.Context, req BulkUpsertJornadaRequest) ([]JornadaConfig, error)
	Delete(ctx context.Context, legajo string) error
	ListEmployees(ctx context.Context) ([]EmployeeJornadaResponse, error)
}
