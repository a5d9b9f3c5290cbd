package httpapi

import (
	"io/fs"
	"net/http"

	"vagasboard-engine/internal/board"
)

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Board markup
	bh := BoardHandler{Deps: d}
	mux.HandleFunc("/board", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: bh.Render,
	}))

	// Listings JSON
	lh := ListingsHandler{Deps: d}
	mux.HandleFunc("/listings", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.List,
	}))
	mux.HandleFunc("/listings/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.Status,
	}))

	// Cache
	cah := CacheHandler{Deps: d}
	mux.HandleFunc("/cache/info", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cah.Info,
	}))
	mux.HandleFunc("/cache/clear", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: cah.Clear,
	}))

	// Config
	ch := ConfigHandler{Deps: d}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Updates
	uh := UpdateHandler{Deps: d}
	mux.HandleFunc("/update/check", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: uh.Check,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Widget JS/CSS
	if sub, err := fs.Sub(board.AssetFS(), "assets"); err == nil {
		mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))
	}

	return mux
}
