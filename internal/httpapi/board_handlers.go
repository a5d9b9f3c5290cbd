package httpapi

import (
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"vagasboard-engine/internal/board"
	"vagasboard-engine/internal/config"
)

type BoardHandler struct {
	Deps
}

// overrideSettings applies per-request presentation overrides. Only board
// appearance and filters can change this way; the cache TTL and the account
// stay config-owned.
func overrideSettings(s board.Settings, q url.Values) board.Settings {
	if v := q.Get("layout"); v != "" {
		s.Layout = v
	}
	if v := q.Get("columns"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.Columns = n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.Limit = n
		}
	}
	if v := q.Get("location"); v != "" {
		s.FilterLocation = v
	}
	if v := q.Get("category"); v != "" {
		s.FilterCategory = v
	}
	if v := q.Get("min_positions"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.MinPositions = n
		}
	}
	if v := q.Get("recency_days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.RecencyDays = n
		}
	}
	return s
}

// Render serves the board markup. Feed failures are logged; the rendered
// error detail is shown only to requests carrying the operator token, all
// other visitors get an empty response so a broken feed never defaces the
// page embedding the board.
func (h BoardHandler) Render(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	s := overrideSettings(cfg.Board, r.URL.Query()).Normalized()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	listings, err := h.fetchListings(r.Context(), cfg)
	if err != nil {
		reqID := RequestIDFrom(r.Context())
		log.Printf("level=error msg=\"feed fetch\" request_id=%s cid=%s err=%v", reqID, cfg.Provider.CID, err)
		if h.authorize(r) {
			_ = h.Renderer.RenderError(w, err.Error())
		}
		return
	}

	listings = board.ApplyFilters(listings, s, time.Now())
	if len(listings) == 0 {
		_ = h.Renderer.RenderEmpty(w, s)
		return
	}

	if err := h.Renderer.Render(w, listings, s, cfg.Provider.CID); err != nil {
		log.Printf("level=error msg=\"board render\" err=%v", err)
	}
}
