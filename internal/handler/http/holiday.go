package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/holiday"
	"github.com/cge-corrientes/huella-backend-go/internal/handler/http/response"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/validator"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Years(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
}

func NewHolidayHandler(holidayService holiday.HolidayService) HolidayHandler {
	return &holidayHandlerImpl{holidayService: holidayService}
}

// List handles GET /holidays?anio=YYYY
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var errs validator.ValidationErrors
	var year *int
	if r.URL.Query().Has("anio") {
		y := queryInt(r, "anio", 0, &errs)
		year = &y
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	holidays, err := h.holidayService.List(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mapSlice(holidays, holiday.NewHolidayResponse))
}

// Years handles GET /holidays/years
func (h *holidayHandlerImpl) Years(w http.ResponseWriter, r *http.Request) {
	years, err := h.holidayService.Years(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, years)
}

// Get handles GET /holidays/{id}
func (h *holidayHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	hol, err := h.holidayService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holiday.NewHolidayResponse(hol))
}

// Create handles POST /holidays
func (h *holidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateHoliday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	hol, err := h.holidayService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created successfully", holiday.NewHolidayResponse(hol))
}

// Update handles PUT /holidays/{id}
func (h *holidayHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req holiday.UpdateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateHoliday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	hol, err := h.holidayService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday updated successfully", holiday.NewHolidayResponse(hol))
}

// Delete handles DELETE /holidays/{id}
func (h *holidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.holidayService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted successfully", nil)
}
