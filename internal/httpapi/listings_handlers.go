package httpapi

import (
	"net/http"
	"time"

	"vagasboard-engine/internal/board"
	"vagasboard-engine/internal/config"
	"vagasboard-engine/internal/kombo"
)

type ListingsHandler struct {
	Deps
}

// List serves the normalized listings as JSON. ?filtered=1 applies the
// configured board filters (location, category, positions, recency).
func (h ListingsHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)

	listings, err := h.fetchListings(r.Context(), cfg)
	if err != nil {
		status := http.StatusBadGateway
		code := string(kombo.KindOf(err))
		if kombo.KindOf(err) == kombo.ErrInvalidInput {
			status = http.StatusInternalServerError
		}
		msg := "feed unavailable"
		if h.authorize(r) {
			msg = err.Error()
		}
		WriteError(w, r, status, code, msg)
		return
	}

	total := len(listings)
	if q := r.URL.Query().Get("filtered"); q == "1" || q == "true" {
		listings = board.ApplyFilters(listings, cfg.Board.Normalized(), time.Now())
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"listings": listings,
		"count":    len(listings),
		"total":    total,
	})
}

// Status reports the last feed fetch outcome.
func (h ListingsHandler) Status(w http.ResponseWriter, r *http.Request) {
	st, _ := h.FetchStatus.Load().(FetchStatus)
	writeJSON(w, st)
}
