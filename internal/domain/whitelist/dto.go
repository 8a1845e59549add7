package whitelist

import (
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/pkg/validator"
)

type AddWhitelistRequest struct {
	Legajo    string  `json:"legajo"`
	Motive    *string `json:"motivo,omitempty"`
	CreatedBy string  `json:"-"`
}

func (r *AddWhitelistRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLegajo(r.Legajo) {
		errs.Add("legajo", "legajo is required and must be alphanumeric")
	}

	return errs.Err()
}

type SetActiveRequest struct {
	Active *bool `json:"activo"`
}

func (r *SetActiveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Active == nil {
		errs.Add("activo", "activo is required")
	}

	return errs.Err()
}

type UpdateMotiveRequest struct {
	Motive *string `json:"motivo"`
}

type EntryResponse struct {
	ID        int64     `json:"id"`
	Legajo    string    `json:"legajo"`
	Name      *string   `json:"nombre"`
	Area      *string   `json:"area"`
	Shift     *string   `json:"turno"`
	Motive    *string   `json:"motivo"`
	Active    bool      `json:"activo"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func NewEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Legajo:    e.Legajo,
		Name:      e.Name,
		Area:      e.Area,
		Shift:     e.Shift,
		Motive:    e.Motive,
		Active:    e.Active,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
	}
}
