package calendar_test

import (
	"context"
	"testing"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/holiday"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
	"github.com/cge-corrientes/huella-backend-go/internal/repository/memory"
	"github.com/cge-corrientes/huella-backend-go/internal/service/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(t *testing.T) (*calendar.Resolver, *memory.HolidayRepository) {
	t.Helper()
	repo := memory.NewHolidayRepository()
	return calendar.NewResolver(repo, []time.Weekday{time.Saturday, time.Sunday}), repo
}

func TestResolver_IsHoliday(t *testing.T) {
	ctx := context.Background()
	r, repo := newResolver(t)

	_, err := repo.Create(ctx, holiday.Holiday{
		Date:        utils.MustDay("2024-03-08"),
		Description: "Día de la Mujer",
		Type:        holiday.HolidayTypeAdministrative,
	})
	require.NoError(t, err)

	t.Run("registered holiday", func(t *testing.T) {
		h, err := r.IsHoliday(ctx, utils.MustDay("2024-03-08"))
		require.NoError(t, err)
		require.NotNil(t, h)
		assert.Equal(t, "Día de la Mujer", h.Description)
		assert.False(t, h.IsSynthetic())
	})

	t.Run("weekend is synthetic", func(t *testing.T) {
		h, err := r.IsHoliday(ctx, utils.MustDay("2024-03-09"))
		require.NoError(t, err)
		require.NotNil(t, h)
		assert.Equal(t, holiday.HolidayTypeWeekend, h.Type)
		assert.True(t, h.IsSynthetic())
		assert.Zero(t, h.ID)
	})

	t.Run("working day", func(t *testing.T) {
		h, err := r.IsHoliday(ctx, utils.MustDay("2024-03-05"))
		require.NoError(t, err)
		assert.Nil(t, h)
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		h, err := r.IsHoliday(ctx, time.Date(2024, 3, 8, 17, 45, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.NotNil(t, h)
	})
}

func TestResolver_HolidaysBetween(t *testing.T) {
	ctx := context.Background()
	r, repo := newResolver(t)

	// a registered holiday on a Saturday wins over the weekend entry
	_, err := repo.Create(ctx, holiday.Holiday{
		Date:        utils.MustDay("2024-03-23"),
		Description: "Feriado puente",
		Type:        holiday.HolidayTypeNational,
	})
	require.NoError(t, err)

	got, err := r.HolidaysBetween(ctx, utils.MustDay("2024-03-18"), utils.MustDay("2024-03-24"))
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, holiday.HolidayTypeNational, got[utils.MustDay("2024-03-23")].Type)
	assert.Equal(t, holiday.HolidayTypeWeekend, got[utils.MustDay("2024-03-24")].Type)
}

func TestEnumerateDays(t *testing.T) {
	seq := calendar.EnumerateDays(utils.MustDay("2024-02-27"), utils.MustDay("2024-03-02"))

	var first []string
	for d := range seq {
		first = append(first, utils.FormatDay(d))
	}
	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}, first)

	// restartable
	count := 0
	for range seq {
		count++
	}
	assert.Equal(t, 5, count)

	// early exit
	for d := range seq {
		assert.Equal(t, "2024-02-27", utils.FormatDay(d))
		break
	}

	empty := 0
	for range calendar.EnumerateDays(utils.MustDay("2024-03-02"), utils.MustDay("2024-03-01")) {
		empty++
	}
	assert.Zero(t, empty)
}

func TestParseWeekdays(t *testing.T) {
	days, err := calendar.ParseWeekdays("saturday, Domingo,sábado")
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, days)

	days, err = calendar.ParseWeekdays("")
	require.NoError(t, err)
	assert.Empty(t, days)

	_, err = calendar.ParseWeekdays("funday")
	assert.Error(t, err)
}
