// Package handler exposes the fund API over HTTP. It owns request parsing
// and validation; the service assumes validated input and re-checks only as
// programming-error assertions.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fundsight/internal/fund/models"
	"fundsight/internal/fund/service"
	"fundsight/pkg/platform/httputil"
)

// Handler serves the fund routes.
type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// singleDomainRoutes maps the per-domain convenience paths onto the enum.
var singleDomainRoutes = map[string]models.Domain{
	"basic-info":  models.DomainBasicInfo,
	"performance": models.DomainPerformance,
	"fees":        models.DomainFees,
	"ratings":     models.DomainRatings,
	"risk":        models.DomainRisk,
	"flows":       models.DomainFlows,
	"assets":      models.DomainAssets,
}

// Register mounts the fund routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/funds", func(r chi.Router) {
		r.Get("/", h.handleListFunds)
		r.Post("/domains", h.handleAggregate)
		r.Post("/domains/{domain}", h.handleSingleDomain)
		r.Get("/{id}", h.handleGetFund)
	})
}

func (h *Handler) handleAggregate(w http.ResponseWriter, r *http.Request) {
	var req models.AggregateRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	aggregation, err := h.svc.Aggregate(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, aggregation)
}

// handleSingleDomain serves the per-domain endpoints through the same
// aggregation core with a one-element domain set.
func (h *Handler) handleSingleDomain(w http.ResponseWriter, r *http.Request) {
	domain, ok := singleDomainRoutes[chi.URLParam(r, "domain")]
	if !ok {
		http.NotFound(w, r)
		return
	}

	var req models.AggregateRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	req.Domains = []string{domain.String()}

	aggregation, err := h.svc.Aggregate(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, aggregation)
}

func (h *Handler) handleListFunds(w http.ResponseWriter, r *http.Request) {
	req, err := parseListRequest(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	page, err := h.svc.ListFunds(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) handleGetFund(w http.ResponseWriter, r *http.Request) {
	id, err := parseFundID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	detail, err := h.svc.GetFund(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, detail)
}
