package report

import (
	"context"
	"testing"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/employee"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/holiday"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/jornada"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/punch"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/report"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/whitelist"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
	"github.com/cge-corrientes/huella-backend-go/internal/repository/memory"
	"github.com/cge-corrientes/huella-backend-go/internal/service/calendar"
	"github.com/cge-corrientes/huella-backend-go/internal/service/reconciliation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc       *ReportServiceImpl
	employees *memory.EmployeeRepository
	holidays  *memory.HolidayRepository
	jornadas  *memory.JornadaRepository
	whitelist *memory.WhitelistRepository
	punches   *memory.PunchSource
}

var march = utils.MustDay("2024-03-01")

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		employees: memory.NewEmployeeRepository(
			employee.Employee{Legajo: "E100", Name: "Ana Benítez", Active: true},
			employee.Employee{Legajo: "E200", Name: "Bruno Cáceres", Active: true},
			employee.Employee{Legajo: "E300", Name: "Carla Duarte", Active: true},
			employee.Employee{Legajo: "E400", Name: "Darío Ferreyra", Active: false},
		),
		holidays:  memory.NewHolidayRepository(),
		jornadas:  memory.NewJornadaRepository(),
		whitelist: memory.NewWhitelistRepository(),
		punches:   memory.NewPunchSource(),
	}

	resolver := calendar.NewResolver(f.holidays, []time.Weekday{time.Saturday, time.Sunday})
	engine := reconciliation.NewEngine(f.whitelist, resolver, memory.NewExceptionRepository(), f.jornadas, f.punches,
		reconciliation.Config{DefaultJornadaHours: 8, Workers: 3})

	f.svc = NewReportService(engine, f.employees, time.UTC)
	f.svc.now = func() time.Time { return time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC) }

	_, err := f.holidays.Create(context.Background(), holiday.Holiday{
		Date: utils.MustDay("2024-03-08"), Description: "Día de la Mujer", Type: holiday.HolidayTypeAdministrative,
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) punch(legajo, day string, worked float64) {
	d := utils.MustDay(day)
	in, out := d.Add(8*time.Hour), d.Add(8*time.Hour+time.Duration(worked*float64(time.Hour)))
	f.punches.Put(punch.DailyPunchRecord{Legajo: legajo, Day: d, FirstIn: &in, LastOut: &out, TotalPunches: 2, WorkedHours: &worked})
}

func (f *fixture) oddPunch(legajo, day string) {
	d := utils.MustDay(day)
	in := d.Add(8 * time.Hour)
	f.punches.Put(punch.DailyPunchRecord{Legajo: legajo, Day: d, FirstIn: &in, TotalPunches: 1})
}

// punchWorkdays records a complete day for every weekday of March 2024
// except the 8th.
func (f *fixture) punchWorkdays(legajo string, worked float64) {
	for d := range calendar.EnumerateDays(march, utils.MustDay("2024-03-31")) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday || d.Day() == 8 {
			continue
		}
		f.punch(legajo, utils.FormatDay(d), worked)
	}
}

func TestReportService_MonthlySummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.jornadas.Upsert(ctx, jornada.JornadaConfig{Legajo: "E100", Hours: 6, Description: jornada.DescriptionFor(6)})
	require.NoError(t, err)
	f.punch("E100", "2024-03-04", 7.5)
	f.punch("E100", "2024-03-05", 6)
	f.oddPunch("E100", "2024-03-06")

	summary, err := f.svc.MonthlySummary(ctx, "E100", march)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.DaysWorked)
	assert.InDelta(t, 13.5, summary.TotalHours, 1e-9)
	require.NotNil(t, summary.AvgHoursPerDay)
	assert.InDelta(t, 6.75, *summary.AvgHoursPerDay, 1e-9)
	assert.Equal(t, 4, summary.TotalPunches)
	require.NotNil(t, summary.AvgCompliance)
	assert.InDelta(t, 1.125, *summary.AvgCompliance, 1e-9)
	assert.Equal(t, 1, summary.IncompleteDays)
	// 21 weekdays, one holiday, two present, one incomplete
	assert.Equal(t, 17, summary.AbsentDays)
	assert.False(t, summary.DataIncomplete)
}

func TestReportService_MonthlySummary_NoPresentDays(t *testing.T) {
	f := newFixture(t)

	summary, err := f.svc.MonthlySummary(context.Background(), "E200", march)
	require.NoError(t, err)

	assert.Zero(t, summary.DaysWorked)
	assert.Zero(t, summary.TotalHours)
	assert.Nil(t, summary.AvgHoursPerDay)
	assert.Nil(t, summary.AvgCompliance)
	assert.Equal(t, 20, summary.AbsentDays)

	_, err = f.svc.MonthlySummary(context.Background(), "E999", march)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestReportService_MonthlySummary_ClipsToToday(t *testing.T) {
	f := newFixture(t)

	april, err := f.svc.MonthlySummary(context.Background(), "E200", utils.MustDay("2024-04-20"))
	require.NoError(t, err)
	// April 1-15: eleven weekdays
	assert.Equal(t, 11, april.AbsentDays)
	assert.Equal(t, utils.MustDay("2024-04-01"), april.Month)

	may, err := f.svc.MonthlySummary(context.Background(), "E200", utils.MustDay("2024-05-01"))
	require.NoError(t, err)
	assert.Zero(t, may.AbsentDays)
	assert.Nil(t, may.AvgHoursPerDay)
}

func TestReportService_DailySystemStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.whitelist.Create(ctx, whitelist.Entry{Legajo: "E300", Active: true, CreatedBy: "sistema"})
	require.NoError(t, err)
	f.punch("E100", "2024-03-07", 8)
	f.punch("E200", "2024-03-07", 6)
	f.oddPunch("E200", "2024-03-06")

	stats, err := f.svc.DailySystemStats(ctx, utils.MustDay("2024-03-06"), utils.MustDay("2024-03-08"))
	require.NoError(t, err)
	require.Len(t, stats, 3)

	wed, thu, fri := stats[0], stats[1], stats[2]

	assert.Equal(t, utils.MustDay("2024-03-06"), wed.Date)
	assert.Equal(t, 0, wed.PresentCount)
	assert.Equal(t, 1, wed.AbsentCount)
	assert.Equal(t, 1, wed.IncompleteCount)
	assert.Nil(t, wed.AverageHours)

	assert.Equal(t, 2, thu.PresentCount)
	assert.Equal(t, 0, thu.AbsentCount, "whitelisted and inactive employees are not counted")
	require.NotNil(t, thu.AverageHours)
	assert.InDelta(t, 7.0, *thu.AverageHours, 1e-9)
	assert.Equal(t, 2, thu.EmployeesWithRecords)

	assert.Equal(t, 0, fri.PresentCount)
	assert.Equal(t, 0, fri.AbsentCount, "holiday is not an absence")

	_, err = f.svc.DailySystemStats(ctx, utils.MustDay("2024-03-08"), utils.MustDay("2024-03-07"))
	assert.ErrorIs(t, err, report.ErrInvalidDateRange)
}

func TestReportService_ProblematicEmployees(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.whitelist.Create(ctx, whitelist.Entry{Legajo: "E300", Active: true, CreatedBy: "sistema"})
	require.NoError(t, err)
	f.punchWorkdays("E200", 8)

	got, err := f.svc.ProblematicEmployees(ctx, march, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"E100"}, got)
	assert.NotContains(t, got, "E300")
	assert.NotContains(t, got, "E400")

	// strictly greater than: E100 has 20 absences
	got, err = f.svc.ProblematicEmployees(ctx, march, 20)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = f.svc.ProblematicEmployees(ctx, march, 19)
	require.NoError(t, err)
	assert.Equal(t, []string{"E100"}, got)

	_, err = f.svc.ProblematicEmployees(ctx, march, -1)
	assert.ErrorIs(t, err, report.ErrInvalidThreshold)
}

func TestReportService_ProblematicReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.punchWorkdays("E200", 4) // half the jornada every day
	f.punchWorkdays("E300", 8)
	f.oddPunch("E300", "2024-03-09")

	rows, err := f.svc.ProblematicReport(ctx, march, report.Thresholds{Absences: 3, CompliancePercent: 60, Incompletes: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "E100", rows[0].Legajo, "highest severity first")
	assert.True(t, rows[0].ExcessAbsences)
	assert.True(t, rows[0].LowCompliance)
	assert.False(t, rows[0].ExcessIncompletes)
	assert.Equal(t, 2, rows[0].ProblemCount)
	require.NotNil(t, rows[0].CompliancePercent)
	assert.InDelta(t, 0, *rows[0].CompliancePercent, 1e-9)
	assert.InDelta(t, 10*20+50, rows[0].Severity, 1e-9)

	assert.Equal(t, "E200", rows[1].Legajo)
	assert.False(t, rows[1].ExcessAbsences)
	assert.True(t, rows[1].LowCompliance)
	assert.Equal(t, 1, rows[1].ProblemCount)
	assert.InDelta(t, 50, *rows[1].CompliancePercent, 1e-9)
	assert.InDelta(t, 160, rows[1].ExpectedHours, 1e-9)
	assert.InDelta(t, 25, rows[1].Severity, 1e-9)
}

func TestReportService_LiquidationReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.whitelist.Create(ctx, whitelist.Entry{Legajo: "E300", Active: true, CreatedBy: "sistema"})
	require.NoError(t, err)
	f.punchWorkdays("E100", 8)
	f.punchWorkdays("E200", 6)

	rows, err := f.svc.LiquidationReport(ctx, march)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byLegajo := map[string]report.LiquidationRow{}
	for _, r := range rows {
		byLegajo[r.Legajo] = r
	}

	e100 := byLegajo["E100"]
	assert.Equal(t, 20, e100.DaysWorked)
	assert.Equal(t, report.CategoryComplete, e100.Category)
	require.NotNil(t, e100.FirstWorkedDay)
	assert.Equal(t, utils.MustDay("2024-03-01"), *e100.FirstWorkedDay)
	assert.Equal(t, utils.MustDay("2024-03-29"), *e100.LastWorkedDay)
	assert.Equal(t, 8, e100.JornadaHours)

	e200 := byLegajo["E200"]
	assert.InDelta(t, 75, *e200.CompliancePercent, 1e-9)
	assert.Equal(t, report.CategoryPartial, e200.Category)

	_, ok := byLegajo["E300"]
	assert.False(t, ok)
}

func TestCategoryFor(t *testing.T) {
	v := func(f float64) *float64 { return &f }
	assert.Equal(t, report.CategoryNoData, report.CategoryFor(nil))
	assert.Equal(t, report.CategoryComplete, report.CategoryFor(v(90)))
	assert.Equal(t, report.CategoryComplete, report.CategoryFor(v(130)))
	assert.Equal(t, report.CategoryPartial, report.CategoryFor(v(70)))
	assert.Equal(t, report.CategoryInsufficient, report.CategoryFor(v(69.9)))
}
