package reconciliation

import (
	"fmt"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/pkg/validator"
)

type ClassifyRangeRequest struct {
	Legajo    string `json:"legajo"`
	StartDate string `json:"desde"`
	EndDate   string `json:"hasta"`

	// MaxDays caps the range length; zero applies validator.DefaultMaxRangeDays.
	MaxDays int `json:"-"`
}

func (r *ClassifyRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLegajo(r.Legajo) {
		errs.Add("legajo", "legajo is required and must be alphanumeric")
	}
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

type ClassifiedDayResponse struct {
	Legajo             string   `json:"legajo"`
	Date               string   `json:"fecha"`
	Classification     string   `json:"clasificacion"`
	WorkedHours        *float64 `json:"horas_trabajadas"`
	ExpectedHours      float64  `json:"horas_esperadas"`
	ComplianceRatio    *float64 `json:"cumplimiento"`
	TotalPunches       int      `json:"total_marcas"`
	DataIncomplete     bool     `json:"datos_incompletos"`
	JornadaDefaulted   bool     `json:"jornada_por_defecto"`
	HolidayDescription *string  `json:"feriado,omitempty"`
	ExceptionID        *int64   `json:"excepcion_id,omitempty"`
	ExceptionType      *string  `json:"excepcion_tipo,omitempty"`
}

func NewClassifiedDayResponse(d ClassifiedDay) ClassifiedDayResponse {
	resp := ClassifiedDayResponse{
		Legajo:           d.Legajo,
		Date:             d.Date.Format(time.DateOnly),
		Classification:   string(d.Classification),
		WorkedHours:      d.WorkedHours,
		ExpectedHours:    d.ExpectedHours,
		ComplianceRatio:  d.ComplianceRatio,
		TotalPunches:     d.TotalPunches,
		DataIncomplete:   d.DataIncomplete,
		JornadaDefaulted: d.JornadaDefaulted,
	}
	if d.Holiday != nil {
		resp.HolidayDescription = &d.Holiday.Description
	}
	if d.Exception != nil {
		t := string(d.Exception.Type)
		resp.ExceptionID = &d.Exception.ID
		resp.ExceptionType = &t
	}
	return resp
}

func NewClassifiedDayResponses(days []ClassifiedDay) []ClassifiedDayResponse {
	out := make([]ClassifiedDayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, NewClassifiedDayResponse(d))
	}
	return out
}
