package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/employee"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/reconciliation"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/report"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
)

type ReportServiceImpl struct {
	engine    reconciliation.Engine
	employees employee.EmployeeRepository
	location  *time.Location
	now       func() time.Time
}

func NewReportService(engine reconciliation.Engine, employees employee.EmployeeRepository, location *time.Location) *ReportServiceImpl {
	if location == nil {
		location = time.UTC
	}
	return &ReportServiceImpl{
		engine:    engine,
		employees: employees,
		location:  location,
		now:       time.Now,
	}
}

var _ report.ReportService = (*ReportServiceImpl)(nil)

// period returns the days of month that have already started. ok is false
// for a month entirely in the future.
func (s *ReportServiceImpl) period(month time.Time) (start, end time.Time, ok bool) {
	start, end = utils.MonthBounds(month)
	today := utils.Day(s.now().In(s.location))
	if start.After(today) {
		return start, end, false
	}
	if end.After(today) {
		end = today
	}
	return start, end, true
}

func (s *ReportServiceImpl) MonthlySummary(ctx context.Context, legajo string, month time.Time) (report.MonthlySummary, error) {
	first, _ := utils.MonthBounds(month)

	if _, err := s.employees.GetByLegajo(ctx, legajo); err != nil {
		return report.MonthlySummary{}, fmt.Errorf("failed to get employee: %w", err)
	}

	start, end, ok := s.period(month)
	if !ok {
		return report.MonthlySummary{Legajo: legajo, Month: first}, nil
	}

	days, err := s.engine.ClassifyRange(ctx, legajo, start, end)
	if err != nil {
		return report.MonthlySummary{}, fmt.Errorf("failed to classify month: %w", err)
	}
	return tallyDays(days).summary(legajo, first), nil
}

func (s *ReportServiceImpl) DailySystemStats(ctx context.Context, start, end time.Time) ([]report.DailyStat, error) {
	start, end = utils.Day(start), utils.Day(end)
	if end.Before(start) {
		return nil, report.ErrInvalidDateRange
	}

	employees, err := s.employees.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	byDay, err := s.engine.ClassifyPopulationByDay(ctx, legajos(employees), start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to classify population: %w", err)
	}

	stats := make([]report.DailyStat, 0, len(byDay))
	for i, row := range byDay {
		stats = append(stats, dailyStat(start.AddDate(0, 0, i), row))
	}
	return stats, nil
}

func (s *ReportServiceImpl) ProblematicEmployees(ctx context.Context, month time.Time, absenceThreshold int) ([]string, error) {
	if absenceThreshold < 0 {
		return nil, report.ErrInvalidThreshold
	}

	_, tallies, err := s.tallyMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	out := []string{}
	for legajo, t := range tallies {
		if !t.whitelisted && t.absentDays > absenceThreshold {
			out = append(out, legajo)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *ReportServiceImpl) ProblematicReport(ctx context.Context, month time.Time, th report.Thresholds) ([]report.ProblematicEmployee, error) {
	if th.Absences < 0 || th.Incompletes < 0 || th.CompliancePercent < 0 {
		return nil, report.ErrInvalidThreshold
	}

	started := time.Now()
	employees, tallies, err := s.tallyMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	out := []report.ProblematicEmployee{}
	for _, emp := range employees {
		t, ok := tallies[emp.Legajo]
		if !ok || t.whitelisted {
			continue
		}

		compliance := t.compliancePercent()
		row := report.ProblematicEmployee{
			Legajo:            emp.Legajo,
			Name:              emp.Name,
			Area:              emp.Area,
			JornadaHours:      t.jornadaHours,
			DaysWorked:        t.daysWorked,
			AbsentDays:        t.absentDays,
			IncompleteDays:    t.incompleteDays,
			TotalHours:        t.totalHours,
			ExpectedHours:     t.expectedHours(),
			CompliancePercent: compliance,
			ExcessAbsences:    t.absentDays > th.Absences,
			LowCompliance:     compliance != nil && *compliance < th.CompliancePercent,
			ExcessIncompletes: t.incompleteDays > th.Incompletes,
		}
		for _, flag := range []bool{row.ExcessAbsences, row.LowCompliance, row.ExcessIncompletes} {
			if flag {
				row.ProblemCount++
			}
		}
		if row.ProblemCount == 0 {
			continue
		}
		row.Severity = severity(t)
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return out[i].Severity > out[j].Severity
		}
		return out[i].Legajo < out[j].Legajo
	})

	slog.Debug("problematic report generated",
		"month", month.Format(utils.MonthLayout),
		"employees", len(employees),
		"flagged", len(out),
		"duration", time.Since(started),
	)
	return out, nil
}

func (s *ReportServiceImpl) LiquidationReport(ctx context.Context, month time.Time) ([]report.LiquidationRow, error) {
	employees, tallies, err := s.tallyMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	out := make([]report.LiquidationRow, 0, len(employees))
	for _, emp := range employees {
		t, ok := tallies[emp.Legajo]
		if !ok || t.whitelisted {
			continue
		}
		compliance := t.compliancePercent()
		out = append(out, report.LiquidationRow{
			Legajo:            emp.Legajo,
			Name:              emp.Name,
			Area:              emp.Area,
			Shift:             emp.Shift,
			DaysWorked:        t.daysWorked,
			TotalHours:        t.totalHours,
			AvgHoursPerDay:    t.avgHoursPerDay(),
			AbsentDays:        t.absentDays,
			IncompleteDays:    t.incompleteDays,
			FirstWorkedDay:    t.firstWorked,
			LastWorkedDay:     t.lastWorked,
			JornadaHours:      t.jornadaHours,
			ExpectedHours:     t.expectedHours(),
			CompliancePercent: compliance,
			Category:          report.CategoryFor(compliance),
			DataIncomplete:    t.dataIncomplete,
		})
	}
	return out, nil
}

// tallyMonth classifies every active employee over the elapsed part of month.
func (s *ReportServiceImpl) tallyMonth(ctx context.Context, month time.Time) ([]employee.Employee, map[string]tally, error) {
	employees, err := s.employees.ListActive(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	start, end, ok := s.period(month)
	if !ok || len(employees) == 0 {
		return employees, map[string]tally{}, nil
	}

	byEmployee, err := s.engine.ClassifyPopulationByEmployee(ctx, legajos(employees), start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to classify population: %w", err)
	}

	tallies := make(map[string]tally, len(byEmployee))
	for legajo, days := range byEmployee {
		tallies[legajo] = tallyDays(days)
	}
	return employees, tallies, nil
}

func legajos(employees []employee.Employee) []string {
	out := make([]string, 0, len(employees))
	for _, e := range employees {
		out = append(out, e.Legajo)
	}
	return out
}
