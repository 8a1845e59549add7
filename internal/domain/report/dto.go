package report

import (
	"fmt"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/pkg/validator"
)

type MonthRequest struct {
	Month string `json:"mes"` // YYYY-MM
}

func (r *MonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs.Add("mes", "mes must be in YYYY-MM format")
	}

	return errs.Err()
}

type DailyStatsRequest struct {
	StartDate string `json:"desde"`
	EndDate   string `json:"hasta"`

	// MaxDays caps the range length; zero applies validator.DefaultMaxRangeDays.
	MaxDays int `json:"-"`
}

func (r *DailyStatsRequest) Validate() error {
	var errs validator.ValidationErrors

	s, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs.Add("desde", "desde must be in YYYY-MM-DD format")
	}
	e, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs.Add("hasta", "hasta must be in YYYY-MM-DD format")
	}
	if okStart && okEnd && s.After(e) {
		errs.Add("hasta", "hasta must not be before desde")
	} else if okStart && okEnd {
		if limit, over := validator.ExceedsRange(s, e, r.MaxDays); over {
			errs.Add("hasta", fmt.Sprintf("range must not exceed %d days", limit))
		}
	}

	return errs.Err()
}

type MonthlySummaryResponse struct {
	Legajo         string   `json:"legajo"`
	Month          string   `json:"mes"`
	DaysWorked     int      `json:"dias_trabajados"`
	TotalHours     float64  `json:"total_horas"`
	AvgHoursPerDay *float64 `json:"promedio_horas_dia"`
	TotalPunches   int      `json:"total_marcas"`
	AvgCompliance  *float64 `json:"cumplimiento_promedio"`
	AbsentDays     int      `json:"dias_ausente"`
	IncompleteDays int      `json:"dias_incompletos"`
	DataIncomplete bool     `json:"datos_incompletos"`
}

func NewMonthlySummaryResponse(s MonthlySummary) MonthlySummaryResponse {
	return MonthlySummaryResponse{
		Legajo:         s.Legajo,
		Month:          s.Month.Format("2006-01"),
		DaysWorked:     s.DaysWorked,
		TotalHours:     s.TotalHours,
		AvgHoursPerDay: s.AvgHoursPerDay,
		TotalPunches:   s.TotalPunches,
		AvgCompliance:  s.AvgCompliance,
		AbsentDays:     s.AbsentDays,
		IncompleteDays: s.IncompleteDays,
		DataIncomplete: s.DataIncomplete,
	}
}

type DailyStatResponse struct {
	Date                 string   `json:"fecha"`
	PresentCount         int      `json:"presentes"`
	AbsentCount          int      `json:"ausentes"`
	IncompleteCount      int      `json:"incompletos"`
	AverageHours         *float64 `json:"promedio_horas"`
	EmployeesWithRecords int      `json:"empleados_con_registro"`
	DataIncomplete       bool     `json:"datos_incompletos"`
}

func NewDailyStatResponses(stats []DailyStat) []DailyStatResponse {
	out := make([]DailyStatResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, DailyStatResponse{
			Date:                 s.Date.Format(time.DateOnly),
			PresentCount:         s.PresentCount,
			AbsentCount:          s.AbsentCount,
			IncompleteCount:      s.IncompleteCount,
			AverageHours:         s.AverageHours,
			EmployeesWithRecords: s.EmployeesWithRecords,
			DataIncomplete:       s.DataIncomplete,
		})
	}
	return out
}

type ProblematicEmployeeResponse struct {
	Legajo            string   `json:"legajo"`
	Name              string   `json:"nombre"`
	Area              *string  `json:"area"`
	JornadaHours      int      `json:"horas_jornada"`
	DaysWorked        int      `json:"dias_trabajados"`
	AbsentDays        int      `json:"dias_ausente"`
	IncompleteDays    int      `json:"dias_incompletos"`
	TotalHours        float64  `json:"total_horas"`
	ExpectedHours     float64  `json:"horas_esperadas"`
	CompliancePercent *float64 `json:"porcentaje_cumplimiento"`
	ExcessAbsences    bool     `json:"exceso_ausencias"`
	LowCompliance     bool     `json:"bajo_cumplimiento"`
	ExcessIncompletes bool     `json:"exceso_incompletos"`
	ProblemCount      int      `json:"cantidad_problemas"`
	Severity          float64  `json:"severidad"`
}

func NewProblematicEmployeeResponses(rows []ProblematicEmployee) []ProblematicEmployeeResponse {
	out := make([]ProblematicEmployeeResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, ProblematicEmployeeResponse(p))
	}
	return out
}

type LiquidationRowResponse struct {
	Legajo            string   `json:"legajo"`
	Name              string   `json:"nombre"`
	Area              *string  `json:"area"`
	Shift             *string  `json:"turno"`
	DaysWorked        int      `json:"dias_trabajados"`
	TotalHours        float64  `json:"total_horas"`
	AvgHoursPerDay    *float64 `json:"promedio_horas_dia"`
	AbsentDays        int      `json:"dias_ausente"`
	IncompleteDays    int      `json:"dias_incompletos"`
	FirstWorkedDay    *string  `json:"primer_dia"`
	LastWorkedDay     *string  `json:"ultimo_dia"`
	JornadaHours      int      `json:"horas_jornada"`
	ExpectedHours     float64  `json:"horas_esperadas"`
	CompliancePercent *float64 `json:"porcentaje_cumplimiento"`
	Category          string   `json:"categoria"`
	DataIncomplete    bool     `json:"datos_incompletos"`
}

func NewLiquidationResponses(rows []LiquidationRow) []LiquidationRowResponse {
	out := make([]LiquidationRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, LiquidationRowResponse{
			Legajo:            r.Legajo,
			Name:              r.Name,
			Area:              r.Area,
			Shift:             r.Shift,
			DaysWorked:        r.DaysWorked,
			TotalHours:        r.TotalHours,
			AvgHoursPerDay:    r.AvgHoursPerDay,
			AbsentDays:        r.AbsentDays,
			IncompleteDays:    r.IncompleteDays,
			FirstWorkedDay:    formatOptionalDay(r.FirstWorkedDay),
			LastWorkedDay:     formatOptionalDay(r.LastWorkedDay),
			JornadaHours:      r.JornadaHours,
			ExpectedHours:     r.ExpectedHours,
			CompliancePercent: r.CompliancePercent,
			Category:          string(r.Category),
			DataIncomplete:    r.DataIncomplete,
		})
	}
	return out
}

func formatOptionalDay(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}
