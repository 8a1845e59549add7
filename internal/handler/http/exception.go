package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/exception"
	"github.com/cge-corrientes/huella-backend-go/internal/handler/http/middleware"
	"github.com/cge-corrientes/huella-backend-go/internal/handler/http/response"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/validator"
)

type ExceptionHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type exceptionHandlerImpl struct {
	exceptionService exception.ExceptionService
}

func NewExceptionHandler(exceptionService exception.ExceptionService) ExceptionHandler {
	return &exceptionHandlerImpl{exceptionService: exceptionService}
}

// List handles GET /exceptions with optional ?legajo= or ?fecha= filters.
func (h *exceptionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var (
		items []exception.Exception
		err   error
	)
	switch {
	case q.Get("fecha") != "":
		day, ok := validator.IsValidDate(q.Get("fecha"))
		if !ok {
			var errs validator.ValidationErrors
			errs.Add("fecha", "fecha must be in YYYY-MM-DD format")
			response.HandleError(w, errs)
			return
		}
		items, err = h.exceptionService.ListCurrent(ctx, day)
	case q.Get("legajo") != "":
		items, err = h.exceptionService.ListFor(ctx, q.Get("legajo"))
	default:
		items, err = h.exceptionService.List(ctx)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mapSlice(items, exception.NewExceptionResponse))
}

// Get handles GET /exceptions/{id}
func (h *exceptionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	e, err := h.exceptionService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, exception.NewExceptionResponse(e))
}

// Create handles POST /exceptions
func (h *exceptionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req exception.CreateExceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateException decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CreatedBy = middleware.Creator(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	e, err := h.exceptionService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Exception created successfully", exception.NewExceptionResponse(e))
}

// Update handles PATCH /exceptions/{id}
func (h *exceptionHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req exception.UpdateExceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateException decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	e, err := h.exceptionService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Exception updated successfully", exception.NewExceptionResponse(e))
}

// Delete handles DELETE /exceptions/{id}
func (h *exceptionHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.exceptionService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Exception deleted successfully", nil)
}
