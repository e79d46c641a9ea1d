package handlers

import (
	"net/http"
)

func (h *Handler) Initialize(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContextWithTimeout(r, h.SeedTimeout)
	defer cancel()

	res, err := h.TransactionsController.Initialize(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, res, http.StatusOK)
}

func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	statistics, err := h.TransactionsController.GetStatistics(ctx, r.URL.Query().Get("month"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, statistics, http.StatusOK)
}

func (h *Handler) GetBarChart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	barChart, err := h.TransactionsController.GetBarChart(ctx, r.URL.Query().Get("month"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, barChart, http.StatusOK)
}

func (h *Handler) GetPieChart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	pieChart, err := h.TransactionsController.GetPieChart(ctx, r.URL.Query().Get("month"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, pieChart, http.StatusOK)
}

func (h *Handler) GetFinalResponse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	finalResponse, err := h.TransactionsController.GetFinalResponse(ctx, r.URL.Query().Get("month"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, finalResponse, http.StatusOK)
}
