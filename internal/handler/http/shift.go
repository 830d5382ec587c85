package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/shift"
	"github.com/shiftclock/shiftclock-backend-go/internal/handler/http/response"
)

type ShiftHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Transition(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
}

type ShiftHandlerImpl struct {
	shiftService shift.Service
}

func NewShiftHandler(shiftService shift.Service) ShiftHandler {
	return &ShiftHandlerImpl{shiftService: shiftService}
}

// Create implements ShiftHandler.
func (h *ShiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq shift.CreateShiftRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	shiftResponse, err := h.shiftService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create shift service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created successfully", shiftResponse)
}

// Get implements ShiftHandler.
func (h *ShiftHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	shiftResponse, err := h.shiftService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shiftResponse)
}

// List implements ShiftHandler. Query params: from and to (YYYY-MM-DD),
// both inclusive.
func (h *ShiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	listReq := shift.ListRequest{
		FromDate: r.URL.Query().Get("from"),
		ToDate:   r.URL.Query().Get("to"),
	}

	shifts, err := h.shiftService.List(r.Context(), listReq)
	if err != nil {
		slog.Error("List shifts service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, shifts)
}

// Update implements ShiftHandler.
func (h *ShiftHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq shift.UpdateShiftRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	shiftResponse, err := h.shiftService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update shift service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated successfully", shiftResponse)
}

// Transition implements ShiftHandler.
func (h *ShiftHandlerImpl) Transition(w http.ResponseWriter, r *http.Request) {
	var transitionReq shift.TransitionRequest

	if err := json.NewDecoder(r.Body).Decode(&transitionReq); err != nil {
		slog.Error("Transition shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	transitionReq.ID = chi.URLParam(r, "id")

	shiftResponse, err := h.shiftService.Transition(r.Context(), transitionReq)
	if err != nil {
		slog.Error("Transition shift service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift status updated successfully", shiftResponse)
}

// Delete implements ShiftHandler.
func (h *ShiftHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.shiftService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted successfully", nil)
}

// Generate implements ShiftHandler.
func (h *ShiftHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var generateReq shift.GenerateRequest

	if err := json.NewDecoder(r.Body).Decode(&generateReq); err != nil {
		slog.Error("Generate shifts decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	generateReq.PatternID = chi.URLParam(r, "id")

	generateResponse, err := h.shiftService.Generate(r.Context(), generateReq)
	if err != nil {
		slog.Error("Generate shifts service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Shifts generated",
		"pattern_id", generateResponse.PatternID,
		"created", len(generateResponse.Created),
		"skipped", generateResponse.Skipped)
	response.Created(w, "Shifts generated successfully", generateResponse)
}
