package httpapi

import (
	"net/http"

	"vagasboard-engine/internal/config"
	"vagasboard-engine/internal/events"
)

type CacheHandler struct {
	Deps
}

// Info reports whether a cache entry exists for the configured account and
// when it expires.
func (h CacheHandler) Info(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		WriteError(w, r, http.StatusUnauthorized, "unauthorized", "operator token required")
		return
	}
	cfg := h.CfgVal.Load().(config.Config)

	info, ok, err := h.Gateway.EntryInfo(r.Context(), cfg.Provider.CID, cfg.Provider.Limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "cache_error", err.Error())
		return
	}
	if !ok {
		WriteJSON(w, http.StatusOK, map[string]any{"cached": false})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"cached": true, "entry": info})
}

// Clear purges cached listings. ?cid= limits the purge to one account;
// without it every entry goes. Operator only.
func (h CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		WriteError(w, r, http.StatusUnauthorized, "unauthorized", "operator token required")
		return
	}

	var (
		removed int
		err     error
	)
	cid := r.URL.Query().Get("cid")
	if cid != "" {
		removed, err = h.Gateway.ClearForCID(r.Context(), cid)
	} else {
		removed, err = h.Gateway.Clear(r.Context())
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "cache_error", err.Error())
		return
	}

	if h.Hub != nil {
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeCacheCleared, 1, map[string]any{
			"cid":     cid,
			"removed": removed,
		}))
	}

	WriteJSON(w, http.StatusOK, map[string]any{"removed": removed})
}
