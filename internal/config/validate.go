package config

import (
	"fmt"
	"strings"

	"vagasboard-engine/internal/board"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything an operator
// should fix before the board goes live.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.Provider.CID = strings.TrimSpace(out.Provider.CID)
	out.Provider.FeedBaseURL = strings.TrimSpace(out.Provider.FeedBaseURL)
	out.Cache.Backend = strings.ToLower(strings.TrimSpace(out.Cache.Backend))
	if out.Cache.Backend == "" {
		out.Cache.Backend = BackendSQLite
	}
	out.Board = out.Board.Normalized()

	if out.Provider.CID == "" {
		res.addErr("provider.cid is required; listings cannot be fetched without an account code")
	}
	if out.Provider.Limit < 0 {
		res.addErr("provider.limit must be >= 0 (0 means no limit)")
	}

	switch out.Cache.Backend {
	case BackendSQLite, BackendRedis:
	default:
		res.addErr("cache.backend must be %q or %q", BackendSQLite, BackendRedis)
	}
	if out.Cache.Backend == BackendRedis && strings.TrimSpace(out.Cache.Redis.Address) == "" {
		res.addErr("cache.redis.address is required when cache.backend=redis")
	}
	if out.Cache.TTLMinutes != 0 && (out.Cache.TTLMinutes < 1 || out.Cache.TTLMinutes > 1440) {
		res.addWarn("cache.ttl_minutes %d is outside 1..1440 and will be clamped", out.Cache.TTLMinutes)
	}

	switch cfg.Board.Layout {
	case "", board.LayoutGrid, board.LayoutList, board.LayoutAccordion:
	default:
		res.addWarn("board.layout %q is unknown; falling back to %q", cfg.Board.Layout, board.LayoutGrid)
	}
	if cfg.Board.Columns != 0 && (cfg.Board.Columns < 1 || cfg.Board.Columns > 4) {
		res.addWarn("board.columns %d is outside 1..4 and will be clamped", cfg.Board.Columns)
	}
	for _, f := range cfg.Board.ClientFilterFields {
		switch f {
		case board.FieldLocation, board.FieldArea:
		default:
			res.addWarn("board.client_filter_fields contains unknown field %q", f)
		}
	}

	if out.Updater.Enabled {
		if strings.TrimSpace(out.Updater.Repo) == "" {
			res.addErr("updater.repo is required when updater.enabled=true (owner/name)")
		} else if !strings.Contains(out.Updater.Repo, "/") {
			res.addErr("updater.repo must be owner/name, got %q", out.Updater.Repo)
		}
		if out.Updater.IntervalHours <= 0 {
			out.Updater.IntervalHours = 12
		}
	}

	return out, res
}
