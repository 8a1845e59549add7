package jornada

import (
	"context"
	"testing"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/employee"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/jornada"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/whitelist"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
	"github.com/cge-corrientes/huella-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*JornadaServiceImpl, *memory.WhitelistRepository) {
	t.Helper()
	employees := memory.NewEmployeeRepository(
		employee.Employee{Legajo: "E100", Name: "Ana Benítez", Active: true},
		employee.Employee{Legajo: "E200", Name: "Bruno Cáceres", Active: true},
		employee.Employee{Legajo: "E300", Name: "Carla Duarte", Active: true},
	)
	wl := memory.NewWhitelistRepository()
	svc := NewJornadaService(memory.NewJornadaRepository(), employees, wl, memory.NewTransactor(), 8, time.UTC)
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC) }
	return svc, wl
}

func TestJornadaService_Resolve(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	hours, defaulted, err := svc.Resolve(ctx, "E100")
	require.NoError(t, err)
	assert.Equal(t, 8, hours)
	assert.True(t, defaulted)

	_, err = svc.Upsert(ctx, jornada.UpsertJornadaRequest{Legajo: "E100", Hours: 6})
	require.NoError(t, err)

	hours, defaulted, err = svc.Resolve(ctx, "E100")
	require.NoError(t, err)
	assert.Equal(t, 6, hours)
	assert.False(t, defaulted)
}

func TestJornadaService_Upsert(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	t.Run("defaults effective date to today", func(t *testing.T) {
		cfg, err := svc.Upsert(ctx, jornada.UpsertJornadaRequest{Legajo: "E100", Hours: 4})
		require.NoError(t, err)
		assert.Equal(t, "Media jornada", cfg.Description)
		assert.Equal(t, utils.MustDay("2024-03-05"), cfg.EffectiveFrom)
	})

	t.Run("replaces existing", func(t *testing.T) {
		from := "2024-04-01"
		cfg, err := svc.Upsert(ctx, jornada.UpsertJornadaRequest{Legajo: "E100", Hours: 6, EffectiveFrom: &from})
		require.NoError(t, err)
		assert.Equal(t, "Jornada reducida", cfg.Description)
		assert.Equal(t, utils.MustDay("2024-04-01"), cfg.EffectiveFrom)

		got, err := svc.Get(ctx, "E100")
		require.NoError(t, err)
		assert.Equal(t, 6, got.Hours)
	})

	t.Run("hours outside the allowed set", func(t *testing.T) {
		_, err := svc.Upsert(ctx, jornada.UpsertJornadaRequest{Legajo: "E100", Hours: 7})
		assert.Error(t, err)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := svc.Upsert(ctx, jornada.UpsertJornadaRequest{Legajo: "E999", Hours: 8})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestJornadaService_BulkUpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	saved, err := svc.BulkUpsert(ctx, jornada.BulkUpsertJornadaRequest{Items: []jornada.UpsertJornadaRequest{
		{Legajo: "E100", Hours: 6},
		{Legajo: "E200", Hours: 4},
	}})
	require.NoError(t, err)
	assert.Len(t, saved, 2)

	_, err = svc.BulkUpsert(ctx, jornada.BulkUpsertJornadaRequest{})
	assert.Error(t, err)

	require.NoError(t, svc.Delete(ctx, "E200"))
	assert.ErrorIs(t, svc.Delete(ctx, "E200"), jornada.ErrJornadaNotFound)
}

func TestJornadaService_ListEmployees(t *testing.T) {
	ctx := context.Background()
	svc, wl := newTestService(t)

	_, err := svc.Upsert(ctx, jornada.UpsertJornadaRequest{Legajo: "E100", Hours: 6})
	require.NoError(t, err)
	_, err = wl.Create(ctx, whitelist.Entry{Legajo: "E300", Active: true, CreatedBy: "sistema"})
	require.NoError(t, err)

	rows, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byLegajo := map[string]jornada.EmployeeJornadaResponse{}
	for _, r := range rows {
		byLegajo[r.Legajo] = r
	}
	assert.Equal(t, 6, byLegajo["E100"].Hours)
	assert.False(t, byLegajo["E100"].Defaulted)
	assert.Equal(t, 8, byLegajo["E200"].Hours)
	assert.True(t, byLegajo["E200"].Defaulted)
	assert.Nil(t, byLegajo["E200"].EffectiveFrom)
	assert.True(t, byLegajo["E300"].Whitelisted)
}
