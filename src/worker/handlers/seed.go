package handlers

import (
	"context"
	"net/http"
)

func (h *Handler) ReloadSeed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.RequestTimeout)
	defer cancel()

	res, err := h.Controller.Reseed(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, res, http.StatusOK)
}
