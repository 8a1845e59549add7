package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/jornada"
	"github.com/cge-corrientes/huella-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type JornadaHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	BulkUpsert(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type jornadaHandlerImpl struct {
	jornadaService jornada.JornadaService
}

func NewJornadaHandler(jornadaService jornada.JornadaService) JornadaHandler {
	return &jornadaHandlerImpl{jornadaService: jornadaService}
}

// ListEmployees handles GET /jornadas
func (h *jornadaHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	rows, err := h.jornadaService.ListEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rows)
}

// Get handles GET /jornadas/{legajo}
func (h *jornadaHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.jornadaService.Get(r.Context(), chi.URLParam(r, "legajo"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, jornada.NewJornadaResponse(cfg))
}

// Upsert handles PUT /jornadas/{legajo}
func (h *jornadaHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req jornada.UpsertJornadaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertJornada decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Legajo = chi.URLParam(r, "legajo")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	cfg, err := h.jornadaService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Jornada saved successfully", jornada.NewJornadaResponse(cfg))
}

// BulkUpsert handles POST /jornadas/bulk
func (h *jornadaHandlerImpl) BulkUpsert(w http.ResponseWriter, r *http.Request) {
	var req jornada.BulkUpsertJornadaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BulkUpsertJornada decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	saved, err := h.jornadaService.BulkUpsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Jornadas saved successfully", mapSlice(saved, jornada.NewJornadaResponse))
}

// Delete handles DELETE /jornadas/{legajo}
func (h *jornadaHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.jornadaService.Delete(r.Context(), chi.URLParam(r, "legajo")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Jornada deleted successfully", nil)
}
