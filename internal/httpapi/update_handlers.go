package httpapi

import (
	"net/http"
)

type UpdateHandler struct {
	Deps
}

// Check reports the latest published release. ?force=1 bypasses the cached
// verdict.
func (h UpdateHandler) Check(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		WriteError(w, r, http.StatusUnauthorized, "unauthorized", "operator token required")
		return
	}
	if h.Checker == nil {
		WriteError(w, r, http.StatusNotFound, "updater_disabled", "update checks are disabled")
		return
	}

	force := r.URL.Query().Get("force") == "1"
	rel, err := h.Checker.Check(r.Context(), force)
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "update_check_failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, rel)
}
