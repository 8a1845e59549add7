package jornada

import (
	"strconv"

	"github.com/cge-corrientes/huella-backend-go/internal/pkg/validator"
)

type UpsertJornadaRequest struct {
	Legajo        string  `json:"legajo"`
	Hours         int     `json:"horas_jornada"`
	EffectiveFrom *string `json:"vigente_desde,omitempty"` // YYYY-MM-DD, defaults to today
}

func (r *UpsertJornadaRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLegajo(r.Legajo) {
		errs.Add("legajo", "legajo is required and must be alphanumeric")
	}
	if !IsAllowedHours(r.Hours) {
		errs.Add("horas_jornada", "horas_jornada must be one of: 4, 6, 8")
	}
	if r.EffectiveFrom != nil && *r.EffectiveFrom != "" {
		if _, ok := validator.IsValidDate(*r.EffectiveFrom); !ok {
			errs.Add("vigente_desde", "vigente_desde must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

type BulkUpsertJornadaRequest struct {
	Items []UpsertJornadaRequest `json:"items"`
}

func (r *BulkUpsertJornadaRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Items) == 0 {
		errs.Add("items", "at least one item is required")
	}
	for i := range r.Items {
		if err := r.Items[i].Validate(); err != nil {
			errs.Add("items["+strconv.Itoa(i)+"]", err.Error())
		}
	}

	return errs.Err()
}

type JornadaResponse struct {
	ID            int64  `json:"id"`
	Legajo        string `json:"legajo"`
	Hours         int    `json:"horas_jornada"`
	Description   string `json:"descripcion"`
	EffectiveFrom string `json:"vigente_desde"`
}

func NewJornadaResponse(cfg JornadaConfig) JornadaResponse {
	return JornadaResponse{
		ID:            cfg.ID,
		Legajo:        cfg.Legajo,
		Hours:         cfg.Hours,
		Description:   cfg.Description,
		EffectiveFrom: cfg.EffectiveFrom.Format("2006-01-02"),
	}
}

// EmployeeJornadaResponse is one row of the jornada configuration screen:
// every active employee with the jornada in effect and whitelist membership.
type EmployeeJornadaResponse struct {
	Legajo        string  `json:"legajo"`
	Name          string  `json:"nombre"`
	Area          *string `json:"area"`
	Shift         *string `json:"turno"`
	DNI           *string `json:"dni"`
	Hours         int     `json:"horas_jornada"`
	Description   string  `json:"tipo_jornada"`
	EffectiveFrom *string `json:"vigente_desde"`
	Defaulted     bool    `json:"por_defecto"`
	Whitelisted   bool    `json:"en_whitelist"`
}
