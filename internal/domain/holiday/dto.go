package holiday

import (
	"strings"

	"github.com/cge-corrientes/huella-backend-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Date        string `json:"fecha"`
	Description string `json:"descripcion"`
	Type        string `json:"tipo"`
}

func (r *CreateHolidayRequest) Validate() error {
	return validateHolidayFields(r.Date, r.Description, r.Type)
}

type UpdateHolidayRequest struct {
	ID          int64  `json:"-"`
	Date        string `json:"fecha"`
	Description string `json:"descripcion"`
	Type        string `json:"tipo"`
}

func (r *UpdateHolidayRequest) Validate() error {
	return validateHolidayFields(r.Date, r.Description, r.Type)
}

func validateHolidayFields(date, description, holidayType string) error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(date); !ok {
		errs.Add("fecha", "fecha must be in YYYY-MM-DD format")
	}
	if validator.IsEmpty(description) {
		errs.Add("descripcion", "descripcion is required")
	}
	if !validator.IsInSlice(holidayType, Types) {
		errs.Add("tipo", "tipo must be one of: "+strings.Join(Types, ", "))
	}

	return errs.Err()
}

type HolidayResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"fecha"`
	Description string `json:"descripcion"`
	Type        string `json:"tipo"`
	Weekday     string `json:"dia_semana"`
	Year        int    `json:"anio"`
}

func NewHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Date:        h.Date.Format("2006-01-02"),
		Description: h.Description,
		Type:        string(h.Type),
		Weekday:     h.Weekday(),
		Year:        h.Date.Year(),
	}
}
