package httpapi

import (
	"net/http"
	"sync/atomic"

	"vagasboard-engine/internal/board"
	"vagasboard-engine/internal/cache"
	"vagasboard-engine/internal/config"
	"vagasboard-engine/internal/events"
	"vagasboard-engine/internal/kombo"
	"vagasboard-engine/internal/updater"
)

type Deps struct {
	Gateway  *cache.Gateway
	Client   *kombo.Client
	Renderer *board.Renderer

	Hub *events.Hub

	// Atomic stores
	CfgVal      *atomic.Value // stores config.Config
	FetchStatus *atomic.Value // stores httpapi.FetchStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	Checker *updater.Checker

	// OperatorToken resolves the token that gates operator endpoints.
	// Nil or erroring means nobody is an operator.
	OperatorToken func() (string, error)
}

// authorize reports whether the request carries the operator token, via
// Authorization: Bearer, X-Operator-Token, or ?token=.
func (d Deps) authorize(r *http.Request) bool {
	if d.OperatorToken == nil {
		return false
	}
	want, err := d.OperatorToken()
	if err != nil || want == "" {
		return false
	}

	got := r.Header.Get("X-Operator-Token")
	if got == "" {
		const bearer = "Bearer "
		if auth := r.Header.Get("Authorization"); len(auth) > len(bearer) && auth[:len(bearer)] == bearer {
			got = auth[len(bearer):]
		}
	}
	if got == "" {
		got = r.URL.Query().Get("token")
	}
	return got != "" && got == want
}
