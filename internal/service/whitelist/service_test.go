package whitelist_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/employee"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/whitelist"
	"github.com/cge-corrientes/huella-backend-go/internal/repository/memory"
	whitelistService "github.com/cge-corrientes/huella-backend-go/internal/service/whitelist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() whitelist.WhitelistService {
	employees := memory.NewEmployeeRepository(
		employee.Employee{Legajo: "E300", Name: "Carla Duarte", Active: true},
		employee.Employee{Legajo: "E301", Name: "Diego Espinoza", Active: true},
	)
	return whitelistService.NewWhitelistService(memory.NewWhitelistRepository(), employees, memory.NewTransactor())
}

func strPtr(s string) *string { return &s }

func TestWhitelistService_Add(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	entry, err := svc.Add(ctx, whitelist.AddWhitelistRequest{Legajo: "E300", Motive: strPtr("Autoridad superior")})
	require.NoError(t, err)
	assert.True(t, entry.Active)
	assert.Equal(t, whitelist.DefaultCreator, entry.CreatedBy)

	ok, err := svc.IsWhitelisted(ctx, "E300")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Add(ctx, whitelist.AddWhitelistRequest{Legajo: "E300", CreatedBy: "admin@cge.gob.ar"})
	require.Error(t, err)
	assert.ErrorIs(t, err, whitelist.ErrDuplicateActive)

	var dup *whitelist.DuplicateActiveError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, entry.ID, dup.Existing.ID)

	_, err = svc.Add(ctx, whitelist.AddWhitelistRequest{Legajo: "E999"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestWhitelistService_SetActive(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	first, err := svc.Add(ctx, whitelist.AddWhitelistRequest{Legajo: "E300"})
	require.NoError(t, err)

	deactivated, err := svc.SetActive(ctx, first.ID, false)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)

	ok, err := svc.IsWhitelisted(ctx, "E300")
	require.NoError(t, err)
	assert.False(t, ok, "inactive entries do not exempt")

	second, err := svc.Add(ctx, whitelist.AddWhitelistRequest{Legajo: "E300", Motive: strPtr("Licencia gremial")})
	require.NoError(t, err)

	_, err = svc.SetActive(ctx, first.ID, true)
	var dup *whitelist.DuplicateActiveError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, second.ID, dup.Existing.ID)

	// re-activating the active entry is a no-op
	again, err := svc.SetActive(ctx, second.ID, true)
	require.NoError(t, err)
	assert.True(t, again.Active)

	_, err = svc.SetActive(ctx, 999, true)
	assert.ErrorIs(t, err, whitelist.ErrWhitelistEntryNotFound)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)
}

func TestWhitelistService_UpdateMotiveAndRemove(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	entry, err := svc.Add(ctx, whitelist.AddWhitelistRequest{Legajo: "E301"})
	require.NoError(t, err)

	updated, err := svc.UpdateMotive(ctx, entry.ID, strPtr("Comisión externa"))
	require.NoError(t, err)
	require.NotNil(t, updated.Motive)
	assert.Equal(t, "Comisión externa", *updated.Motive)

	require.NoError(t, svc.Remove(ctx, entry.ID))
	assert.ErrorIs(t, svc.Remove(ctx, entry.ID), whitelist.ErrWhitelistEntryNotFound)

	ok, err := svc.IsWhitelisted(ctx, "E301")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWhitelistService_ConcurrentAdds(t *testing.T) {
	svc := newTestService()

	const writers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Add(context.Background(), whitelist.AddWhitelistRequest{Legajo: "E300"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, whitelist.ErrDuplicateActive):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, writers-1, rejected)
}
