// Package board turns normalized listings into the rendered job board:
// presentation-time filters, three layouts, and the client-side filter
// wiring.
package board

// Layouts.
const (
	LayoutGrid      = "grid"
	LayoutList      = "list"
	LayoutAccordion = "accordion"
)

// Client-filter field names.
const (
	FieldLocation = "location"
	FieldArea     = "area"
)

// Settings is the configuration bundle the board consumes alongside the
// listings. Zero values mean "no filter" / "default".
type Settings struct {
	Layout  string `yaml:"layout" json:"layout"` // grid | list | accordion
	Columns int    `yaml:"columns" json:"columns"`
	Limit   int    `yaml:"limit" json:"limit"` // 0 = all

	ShowBranch    bool `yaml:"show_branch" json:"showBranch"`
	ShowCity      bool `yaml:"show_city" json:"showCity"`
	ShowPositions bool `yaml:"show_positions" json:"showPositions"`
	ShowOpenDate  bool `yaml:"show_open_date" json:"showOpenDate"`

	// Presentation-time filters, applied server-side before rendering.
	FilterLocation string `yaml:"filter_location" json:"filterLocation"` // substring, case-insensitive
	FilterCategory string `yaml:"filter_category" json:"filterCategory"` // substring against activity area
	MinPositions   int    `yaml:"min_positions" json:"minPositions"`
	RecencyDays    int    `yaml:"recency_days" json:"recencyDays"` // 0 = no window

	CacheTTLMinutes int `yaml:"cache_ttl_minutes" json:"cacheTTLMinutes"`

	EmptyMessage string `yaml:"empty_message" json:"emptyMessage"`

	// Interactive filters rendered above the board for visitors.
	EnableClientFilters bool     `yaml:"enable_client_filters" json:"enableClientFilters"`
	ClientFilterFields  []string `yaml:"client_filter_fields" json:"clientFilterFields"` // subset of {location, area}
	FilterLabelLocation string   `yaml:"filter_label_location" json:"filterLabelLocation"`
	FilterLabelArea     string   `yaml:"filter_label_area" json:"filterLabelArea"`
	FilterResetText     string   `yaml:"filter_reset_text" json:"filterResetText"`

	ButtonText     string `yaml:"button_text" json:"buttonText"`
	CustomApplyURL string `yaml:"custom_apply_url" json:"customApplyURL"`
	CustomClass    string `yaml:"custom_class" json:"customClass"`
}

// Normalized returns a copy with defaults filled in.
func (s Settings) Normalized() Settings {
	out := s
	switch out.Layout {
	case LayoutGrid, LayoutList, LayoutAccordion:
	default:
		out.Layout = LayoutGrid
	}
	if out.Columns < 1 || out.Columns > 4 {
		out.Columns = 3
	}
	if out.CacheTTLMinutes <= 0 {
		out.CacheTTLMinutes = 30
	}
	if out.EmptyMessage == "" {
		out.EmptyMessage = "No momento nao ha vagas disponiveis."
	}
	if out.ButtonText == "" {
		out.ButtonText = "Candidatar-se"
	}
	if out.FilterLabelLocation == "" {
		out.FilterLabelLocation = "Filtrar por cidade"
	}
	if out.FilterLabelArea == "" {
		out.FilterLabelArea = "Filtrar por area"
	}
	if out.FilterResetText == "" {
		out.FilterResetText = "Limpar Filtros"
	}
	if len(out.ClientFilterFields) == 0 {
		out.ClientFilterFields = []string{FieldLocation, FieldArea}
	}
	return out
}

// HasClientFilterField reports whether an interactive filter field is on.
func (s Settings) HasClientFilterField(name string) bool {
	for _, f := range s.ClientFilterFields {
		if f == name {
			return true
		}
	}
	return false
}
