package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/pattern"
	"github.com/shiftclock/shiftclock-backend-go/internal/handler/http/response"
)

type PatternHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
}

type PatternHandlerImpl struct {
	patternService pattern.Service
}

func NewPatternHandler(patternService pattern.Service) PatternHandler {
	return &PatternHandlerImpl{patternService: patternService}
}

// Create implements PatternHandler.
func (h *PatternHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq pattern.CreatePatternRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create pattern decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	patternResponse, err := h.patternService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create pattern service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pattern created successfully", patternResponse)
}

// Get implements PatternHandler.
func (h *PatternHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	patternResponse, err := h.patternService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, patternResponse)
}

// List implements PatternHandler.
func (h *PatternHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	patterns, err := h.patternService.List(r.Context())
	if err != nil {
		slog.Error("List patterns service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, patterns)
}

// Update implements PatternHandler.
func (h *PatternHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq pattern.UpdatePatternRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update pattern decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	patternResponse, err := h.patternService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update pattern service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pattern updated successfully", patternResponse)
}

// Delete implements PatternHandler.
func (h *PatternHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.patternService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pattern deleted successfully", nil)
}

// Preview implements PatternHandler. Query params: start (YYYY-MM-DD) and
// months; nothing is persisted.
func (h *PatternHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	months := 1
	if raw := r.URL.Query().Get("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "months must be a number", nil)
			return
		}
		months = parsed
	}

	previewReq := pattern.PreviewRequest{
		PatternID: chi.URLParam(r, "id"),
		StartDate: r.URL.Query().Get("start"),
		Months:    months,
	}

	previewResponse, err := h.patternService.Preview(r.Context(), previewReq)
	if err != nil {
		slog.Error("Preview pattern service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, previewResponse)
}
