package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/pay"
	"github.com/shiftclock/shiftclock-backend-go/internal/handler/http/response"
)

type PayHandler interface {
	CreateRuleset(w http.ResponseWriter, r *http.Request)
	GetRuleset(w http.ResponseWriter, r *http.Request)
	ListRulesets(w http.ResponseWriter, r *http.Request)
	UpdateRuleset(w http.ResponseWriter, r *http.Request)
	DeleteRuleset(w http.ResponseWriter, r *http.Request)
	AggregateRange(w http.ResponseWriter, r *http.Request)
	AggregatePeriod(w http.ResponseWriter, r *http.Request)
}

type PayHandlerImpl struct {
	payService pay.Service
}

func NewPayHandler(payService pay.Service) PayHandler {
	return &PayHandlerImpl{payService: payService}
}

// CreateRuleset implements PayHandler.
func (h *PayHandlerImpl) CreateRuleset(w http.ResponseWriter, r *http.Request) {
	var createReq pay.CreateRulesetRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create ruleset decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rulesetResponse, err := h.payService.CreateRuleset(r.Context(), createReq)
	if err != nil {
		slog.Error("Create ruleset service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Ruleset created successfully", rulesetResponse)
}

// GetRuleset implements PayHandler.
func (h *PayHandlerImpl) GetRuleset(w http.ResponseWriter, r *http.Request) {
	rulesetResponse, err := h.payService.GetRuleset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rulesetResponse)
}

// ListRulesets implements PayHandler.
func (h *PayHandlerImpl) ListRulesets(w http.ResponseWriter, r *http.Request) {
	rulesets, err := h.payService.ListRulesets(r.Context())
	if err != nil {
		slog.Error("List rulesets service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, rulesets)
}

// UpdateRuleset implements PayHandler.
func (h *PayHandlerImpl) UpdateRuleset(w http.ResponseWriter, r *http.Request) {
	var updateReq pay.UpdateRulesetRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update ruleset decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	rulesetResponse, err := h.payService.UpdateRuleset(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update ruleset service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ruleset updated successfully", rulesetResponse)
}

// DeleteRuleset implements PayHandler.
func (h *PayHandlerImpl) DeleteRuleset(w http.ResponseWriter, r *http.Request) {
	if err := h.payService.DeleteRuleset(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ruleset deleted successfully", nil)
}

// AggregateRange implements PayHandler.
func (h *PayHandlerImpl) AggregateRange(w http.ResponseWriter, r *http.Request) {
	var aggregateReq pay.AggregateRangeRequest

	if err := json.NewDecoder(r.Body).Decode(&aggregateReq); err != nil {
		slog.Error("Aggregate range decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	periodResponse, err := h.payService.AggregateRange(r.Context(), aggregateReq)
	if err != nil {
		slog.Error("Aggregate range service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, periodResponse)
}

// AggregatePeriod implements PayHandler.
func (h *PayHandlerImpl) AggregatePeriod(w http.ResponseWriter, r *http.Request) {
	var aggregateReq pay.AggregatePeriodRequest

	if err := json.NewDecoder(r.Body).Decode(&aggregateReq); err != nil {
		slog.Error("Aggregate period decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	periodResponse, err := h.payService.AggregatePeriod(r.Context(), aggregateReq)
	if err != nil {
		slog.Error("Aggregate period service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, periodResponse)
}
