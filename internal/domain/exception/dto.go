package exception

import (
	"strings"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/pkg/validator"
)

type CreateExceptionRequest struct {
	Legajo      string  `json:"legajo"`
	Type        string  `json:"tipo"`
	StartDate   string  `json:"fecha_inicio"`
	EndDate     string  `json:"fecha_fin"`
	Description *string `json:"descripcion,omitempty"`
	CreatedBy   string  `json:"-"`
}

func (r *CreateExceptionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLegajo(r.Legajo) {
		errs.Add("legajo", "legajo is required and must be alphanumeric")
	}
	if !IsValidType(r.Type) {
		errs.Add("tipo", "tipo must be one of: "+strings.Join(Types, ", "))
	}
	validateInterval(&errs, r.StartDate, r.EndDate)

	return errs.Err()
}

// UpdateExceptionRequest is a partial update; nil fields keep their value.
type UpdateExceptionRequest struct {
	ID          int64   `json:"-"`
	Legajo      *string `json:"legajo,omitempty"`
	Type        *string `json:"tipo,omitempty"`
	StartDate   *string `json:"fecha_inicio,omitempty"`
	EndDate     *string `json:"fecha_fin,omitempty"`
	Description *string `json:"descripcion,omitempty"`
}

func (r *UpdateExceptionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Legajo != nil && !validator.IsValidLegajo(*r.Legajo) {
		errs.Add("legajo", "legajo must be alphanumeric")
	}
	if r.Type != nil && !IsValidType(*r.Type) {
		errs.Add("tipo", "tipo must be one of: "+strings.Join(Types, ", "))
	}
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs.Add("fecha_inicio", "fecha_inicio must be in YYYY-MM-DD format")
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs.Add("fecha_fin", "fecha_fin must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

func validateInterval(errs *validator.ValidationErrors, start, end string) {
	s, okStart := validator.IsValidDate(start)
	if !okStart {
		errs.Add("fecha_inicio", "fecha_inicio must be in YYYY-MM-DD format")
	}
	e, okEnd := validator.IsValidDate(end)
	if !okEnd {
		errs.Add("fecha_fin", "fecha_fin must be in YYYY-MM-DD format")
	}
	if okStart && okEnd && s.After(e) {
		errs.Add("fecha_fin", "fecha_fin must not be before fecha_inicio")
	}
}

type ExceptionResponse struct {
	ID          int64     `json:"id"`
	Legajo      string    `json:"legajo"`
	Type        string    `json:"tipo"`
	StartDate   string    `json:"fecha_inicio"`
	EndDate     string    `json:"fecha_fin"`
	Days        int       `json:"dias"`
	Description *string   `json:"descripcion"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewExceptionResponse(e Exception) ExceptionResponse {
	return ExceptionResponse{
		ID:          e.ID,
		Legajo:      e.Legajo,
		Type:        string(e.Type),
		StartDate:   e.StartDate.Format("2006-01-02"),
		EndDate:     e.EndDate.Format("2006-01-02"),
		Days:        e.Days(),
		Description: e.Description,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ConflictDetails is the error payload returned for an overlapping write.
func ConflictDetails(err *OverlapError) map[string]any {
	return map[string]any{
		"legajo":       err.Conflict.Legajo,
		"conflict_id":  err.Conflict.ID,
		"tipo":         string(err.Conflict.Type),
		"fecha_inicio": err.Conflict.StartDate.Format("2006-01-02"),
		"fecha_fin":    err.Conflict.EndDate.Format("2006-01-02"),
	}
}
