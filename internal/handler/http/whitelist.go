package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/whitelist"
	"github.com/cge-corrientes/huella-backend-go/internal/handler/http/middleware"
	"github.com/cge-corrientes/huella-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WhitelistHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Check(w http.ResponseWriter, r *http.Request)
	Add(w http.ResponseWriter, r *http.Request)
	SetActive(w http.ResponseWriter, r *http.Request)
	UpdateMotive(w http.ResponseWriter, r *http.Request)
	Remove(w http.ResponseWriter, r *http.Request)
}

type whitelistHandlerImpl struct {
	whitelistService whitelist.WhitelistService
}

func NewWhitelistHandler(whitelistService whitelist.WhitelistService) WhitelistHandler {
	return &whitelistHandlerImpl{whitelistService: whitelistService}
}

// List handles GET /whitelist?activos=true
func (h *whitelistHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var (
		entries []whitelist.Entry
		err     error
	)
	if queryBool(r, "activos") {
		entries, err = h.whitelistService.ListActive(r.Context())
	} else {
		entries, err = h.whitelistService.List(r.Context())
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mapSlice(entries, whitelist.NewEntryResponse))
}

// Check handles GET /whitelist/legajo/{legajo}
func (h *whitelistHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	legajo := chi.URLParam(r, "legajo")
	ok, err := h.whitelistService.IsWhitelisted(r.Context(), legajo)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]any{"legajo": legajo, "en_whitelist": ok})
}

// Add handles POST /whitelist
func (h *whitelistHandlerImpl) Add(w http.ResponseWriter, r *http.Request) {
	var req whitelist.AddWhitelistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddWhitelist decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CreatedBy = middleware.Creator(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	entry, err := h.whitelistService.Add(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee added to whitelist", whitelist.NewEntryResponse(entry))
}

// SetActive handles PATCH /whitelist/{id}/estado
func (h *whitelistHandlerImpl) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req whitelist.SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetActive decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	entry, err := h.whitelistService.SetActive(r.Context(), id, *req.Active)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Whitelist entry updated", whitelist.NewEntryResponse(entry))
}

// UpdateMotive handles PATCH /whitelist/{id}/motivo
func (h *whitelistHandlerImpl) UpdateMotive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req whitelist.UpdateMotiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateMotive decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := h.whitelistService.UpdateMotive(r.Context(), id, req.Motive)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Whitelist entry updated", whitelist.NewEntryResponse(entry))
}

// Remove handles DELETE /whitelist/{id}
func (h *whitelistHandlerImpl) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.whitelistService.Remove(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Whitelist entry removed", nil)
}
