package http

import (
	"net/http"
	"strings"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/employee"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/reconciliation"
	"github.com/cge-corrientes/huella-backend-go/internal/handler/http/response"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ClassifyRange(w http.ResponseWriter, r *http.Request)
	ClassifyDay(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	engine       reconciliation.Engine
	employees    employee.EmployeeRepository
	maxRangeDays int
}

// NewAttendanceHandler builds the attendance endpoints. maxRangeDays caps the
// ranges clients may request.
func NewAttendanceHandler(engine reconciliation.Engine, employees employee.EmployeeRepository, maxRangeDays int) AttendanceHandler {
	return &attendanceHandlerImpl{engine: engine, employees: employees, maxRangeDays: maxRangeDays}
}

// ClassifyRange handles GET /attendance/{legajo}?desde=YYYY-MM-DD&hasta=YYYY-MM-DD
func (h *attendanceHandlerImpl) ClassifyRange(w http.ResponseWriter, r *http.Request) {
	req := reconciliation.ClassifyRangeRequest{
		Legajo:    chi.URLParam(r, "legajo"),
		StartDate: r.URL.Query().Get("desde"),
		EndDate:   r.URL.Query().Get("hasta"),
		MaxDays:   h.maxRangeDays,
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	days, err := h.engine.ClassifyRange(r.Context(), req.Legajo, utils.MustDay(req.StartDate), utils.MustDay(req.EndDate))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reconciliation.NewClassifiedDayResponses(days))
}

// ClassifyDay handles GET /attendance/day/{fecha}?legajos=A,B. Without
// legajos every active employee is classified.
func (h *attendanceHandlerImpl) ClassifyDay(w http.ResponseWriter, r *http.Request) {
	day, ok := validator.IsValidDate(chi.URLParam(r, "fecha"))
	if !ok {
		var errs validator.ValidationErrors
		errs.Add("fecha", "fecha must be in YYYY-MM-DD format")
		response.HandleError(w, errs)
		return
	}

	var legajos []string
	if raw := r.URL.Query().Get("legajos"); raw != "" {
		for _, l := range strings.Split(raw, ",") {
			if l = strings.TrimSpace(l); l != "" {
				legajos = append(legajos, l)
			}
		}
	} else {
		active, err := h.employees.ListActive(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}
		for _, e := range active {
			legajos = append(legajos, e.Legajo)
		}
	}

	days, err := h.engine.ClassifyDay(r.Context(), day, legajos)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reconciliation.NewClassifiedDayResponses(days))
}
