package report

import (
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/reconciliation"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/report"
)

// tally accumulates one employee's classified days.
type tally struct {
	daysWorked     int
	absentDays     int
	incompleteDays int
	businessDays   int
	totalPunches   int
	totalHours     float64
	ratioSum       float64
	ratioCount     int
	jornadaHours   int
	firstWorked    *time.Time
	lastWorked     *time.Time
	whitelisted    bool
	dataIncomplete bool
}

func tallyDays(days []reconciliation.ClassifiedDay) tally {
	var t tally
	if len(days) > 0 {
		t.jornadaHours = int(days[0].ExpectedHours)
	}

	for _, d := range days {
		if d.DataIncomplete {
			t.dataIncomplete = true
		}
		if d.Counts() {
			t.businessDays++
		}

		switch d.Classification {
		case reconciliation.ClassificationWhitelisted:
			t.whitelisted = true
		case reconciliation.ClassificationPresent:
			t.daysWorked++
			t.totalPunches += d.TotalPunches
			if d.WorkedHours != nil {
				t.totalHours += *d.WorkedHours
			}
			if d.ComplianceRatio != nil {
				t.ratioSum += *d.ComplianceRatio
				t.ratioCount++
			}
			day := d.Date
			if t.firstWorked == nil {
				t.firstWorked = &day
			}
			t.lastWorked = &day
		case reconciliation.ClassificationAbsent:
			t.absentDays++
		case reconciliation.ClassificationIncompletePunch:
			t.incompleteDays++
		}
	}
	return t
}

func (t tally) avgHoursPerDay() *float64 {
	if t.daysWorked == 0 {
		return nil
	}
	v := t.totalHours / float64(t.daysWorked)
	return &v
}

func (t tally) avgCompliance() *float64 {
	if t.ratioCount == 0 {
		return nil
	}
	v := t.ratioSum / float64(t.ratioCount)
	return &v
}

// expectedHours is the jornada times every day that counts for attendance.
func (t tally) expectedHours() float64 {
	return float64(t.jornadaHours * t.businessDays)
}

func (t tally) compliancePercent() *float64 {
	expected := t.expectedHours()
	if expected == 0 {
		return nil
	}
	v := t.totalHours / expected * 100
	return &v
}

func (t tally) summary(legajo string, month time.Time) report.MonthlySummary {
	return report.MonthlySummary{
		Legajo:         legajo,
		Month:          month,
		DaysWorked:     t.daysWorked,
		TotalHours:     t.totalHours,
		AvgHoursPerDay: t.avgHoursPerDay(),
		TotalPunches:   t.totalPunches,
		AvgCompliance:  t.avgCompliance(),
		AbsentDays:     t.absentDays,
		IncompleteDays: t.incompleteDays,
		DataIncomplete: t.dataIncomplete,
	}
}

// severity ranks problematic employees: absences weigh most, then
// incomplete punches, then the compliance shortfall.
func severity(t tally) float64 {
	s := 10*float64(t.absentDays) + 5*float64(t.incompleteDays)
	if c := t.compliancePercent(); c != nil && *c < 100 {
		s += (100 - *c) / 2
	}
	return s
}

func dailyStat(day time.Time, row []reconciliation.ClassifiedDay) report.DailyStat {
	stat := report.DailyStat{Date: day}
	var hours float64
	for _, d := range row {
		if d.DataIncomplete {
			stat.DataIncomplete = true
		}
		switch d.Classification {
		case reconciliation.ClassificationPresent:
			stat.PresentCount++
			if d.WorkedHours != nil {
				hours += *d.WorkedHours
			}
		case reconciliation.ClassificationAbsent:
			stat.AbsentCount++
		case reconciliation.ClassificationIncompletePunch:
			stat.IncompleteCount++
		}
	}
	stat.EmployeesWithRecords = stat.PresentCount + stat.IncompleteCount
	if stat.PresentCount > 0 {
		avg := hours / float64(stat.PresentCount)
		stat.AverageHours = &avg
	}
	return stat
}
