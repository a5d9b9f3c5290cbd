package board

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"vagasboard-engine/internal/domain"
	"vagasboard-engine/internal/kombo"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed assets/*
var assetFS embed.FS

// AssetFS exposes the embedded widget JS/CSS for the HTTP layer.
func AssetFS() embed.FS { return assetFS }

// Renderer produces the board markup for one of the three layouts.
type Renderer struct {
	tmpl *template.Template
}

var templateFuncs = template.FuncMap{
	// dict pairs up keys and values so nested templates can receive both
	// the page and the current item.
	"dict": func(pairs ...any) (map[string]any, error) {
		if len(pairs)%2 != 0 {
			return nil, fmt.Errorf("dict: odd argument count %d", len(pairs))
		}
		m := make(map[string]any, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			key, ok := pairs[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict: key %d is not a string", i)
			}
			m[key] = pairs[i+1]
		}
		return m, nil
	},
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("board").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse board templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// item is one listing prepared for the templates: resolved application URL
// plus the lowercase data-* attribute values the client-side filters match
// against.
type item struct {
	domain.Listing
	ApplyURL     string
	DataLocation string
	DataCity     string
	DataState    string
	DataArea     string
	PanelID      string
}

type pageData struct {
	Settings Settings
	Items    []item
	BoardID  string
}

// Render writes the board markup for already-filtered listings. Settings are
// normalized first, so callers can pass raw widget configuration.
func (r *Renderer) Render(w io.Writer, listings []domain.Listing, s Settings, cid string) error {
	s = s.Normalized()

	data := pageData{
		Settings: s,
		Items:    make([]item, 0, len(listings)),
		BoardID:  "vagas-board",
	}

	for i, l := range listings {
		data.Items = append(data.Items, item{
			Listing:      l,
			ApplyURL:     ApplyURL(s, cid, l),
			DataLocation: strings.ToLower(l.Location),
			DataCity:     strings.ToLower(l.City),
			DataState:    strings.ToLower(l.State),
			DataArea:     strings.ToLower(l.ActivityArea),
			PanelID:      fmt.Sprintf("%s-%d", data.BoardID, i),
		})
	}

	return r.tmpl.ExecuteTemplate(w, "board", data)
}

// RenderEmpty writes the configured empty-state message.
func (r *Renderer) RenderEmpty(w io.Writer, s Settings) error {
	return r.tmpl.ExecuteTemplate(w, "empty", s.Normalized())
}

// RenderError writes an error block. Callers must only use this for
// operator-facing responses; anonymous visitors get nothing on failure.
func (r *Renderer) RenderError(w io.Writer, message string) error {
	return r.tmpl.ExecuteTemplate(w, "error", message)
}

// ApplyURL resolves the application link for one listing: a configured
// custom URL (with the job code appended) wins, then the listing's own link,
// then the provider's registration page.
func ApplyURL(s Settings, cid string, l domain.Listing) string {
	if s.CustomApplyURL != "" {
		u := s.CustomApplyURL
		if l.Code != "" {
			sep := "?"
			if strings.Contains(u, "?") {
				sep = "&"
			}
			u += sep + "vaga=" + url.QueryEscape(l.Code)
		}
		return u
	}
	if l.Link != "" {
		return l.Link
	}
	return kombo.ApplicationURL(cid, l.Code)
}
