package report

import "time"

// MonthlySummary aggregates the Present days of one employee in one month.
// Averages are nil when there are no Present days.
type MonthlySummary struct {
	Legajo         string
	Month          time.Time
	DaysWorked     int
	TotalHours     float64
	AvgHoursPerDay *float64
	TotalPunches   int
	AvgCompliance  *float64
	AbsentDays     int
	IncompleteDays int
	DataIncomplete bool
}

// DailyStat counts Present and Absent days across the tracked population.
type DailyStat struct {
	Date                 time.Time
	PresentCount         int
	AbsentCount          int
	IncompleteCount      int
	AverageHours         *float64
	EmployeesWithRecords int
	DataIncomplete       bool
}

// Thresholds are caller-owned limits for the problematic report. A problem
// is raised when a count strictly exceeds its limit or compliance falls
// strictly below CompliancePercent.
type Thresholds struct {
	Absences          int
	CompliancePercent float64
	Incompletes       int
}

type ProblematicEmployee struct {
	Legajo            string
	Name              string
	Area              *string
	JornadaHours      int
	DaysWorked        int
	AbsentDays        int
	IncompleteDays    int
	TotalHours        float64
	ExpectedHours     float64
	CompliancePercent *float64

	ExcessAbsences    bool
	LowCompliance     bool
	ExcessIncompletes bool

	ProblemCount int
	Severity     float64
}

type Category string

const (
	CategoryComplete     Category = "Completo"
	CategoryPartial      Category = "Parcial"
	CategoryInsufficient Category = "Insuficiente"
	CategoryNoData       Category = "Sin datos"
)

// CategoryFor buckets a compliance percentage for the liquidation report.
func CategoryFor(compliance *float64) Category {
	switch {
	case compliance == nil:
		return CategoryNoData
	case *compliance >= 90:
		return CategoryComplete
	case *compliance >= 70:
		return CategoryPartial
	default:
		return CategoryInsufficient
	}
}

type LiquidationRow struct {
	Legajo            string
	Name              string
	Area              *string
	Shift             *string
	DaysWorked        int
	TotalHours        float64
	AvgHoursPerDay    *float64
	AbsentDays        int
	IncompleteDays    int
	FirstWorkedDay    *time.Time
	LastWorkedDay     *time.Time
	JornadaHours      int
	ExpectedHours     float64
	CompliancePercent *float64
	Category          Category
	DataIncomplete    bool
}
