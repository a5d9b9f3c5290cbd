package kombo

import (
	"encoding/xml"
	"time"

	"vagasboard-engine/internal/domain"
)

// Candidate tag names per field, in priority order. Lookup is
// case-insensitive (tagMap lowercases names).
var (
	titleTags     = []string{"title", "titulo", "vaga", "cargo"}
	descTags      = []string{"description", "descricao"}
	codeTags      = []string{"codigo", "code", "id", "guid"}
	cityTags      = []string{"cidade", "city", "location"}
	stateTags     = []string{"estado", "uf", "state"}
	branchTags    = []string{"ramo", "ramo_atividade", "area", "setor"}
	positionsTags = []string{"num_vagas", "vagas", "quantidade", "qty"}
	dateTags      = []string{"pubdate", "data_abertura", "data", "date"}
	linkTags      = []string{"link", "url"}
)

// Layouts tried, in order, when reformatting the opening date. The feed has
// shipped RSS pubDates, bare dates and already-Brazilian-formatted dates.
var openedAtLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// Parse turns raw feed bytes into normalized listings. A structurally invalid
// document yields a FeedError(ErrXMLMalformed); a document with no
// recognizable items yields an empty slice. Items without a usable title are
// dropped silently. Parsing is stateless: the same bytes always produce the
// same listings.
func Parse(raw []byte) ([]domain.Listing, error) {
	raw = FixEncoding(raw)

	var doc xmlDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, &FeedError{Kind: ErrXMLMalformed, Detail: "invalid feed document", Err: err}
	}

	items := doc.items()
	listings := make([]domain.Listing, 0, len(items))

	for _, item := range items {
		if l, ok := parseItem(item); ok {
			listings = append(listings, l)
		}
	}

	return listings, nil
}

func parseItem(item xmlItem) (domain.Listing, bool) {
	tags := newTagMap(item)

	title := CleanHTML(tags.get(titleTags...))
	if title == "" {
		return domain.Listing{}, false
	}

	rawDesc := tags.get(descTags...)
	description := CleanHTML(rawDesc)

	// Values recovered from the description take priority over the
	// same-meaning structured tags. The upstream feed fills the tags
	// unreliably; the description labels, when present, are authoritative.
	info := ExtractFromDescription(description)

	city := info.City
	if city == "" {
		city = tags.get(cityTags...)
	}
	state := info.State
	if state == "" {
		state = tags.get(stateTags...)
	}
	branch := info.Branch
	if branch == "" {
		branch = tags.get(branchTags...)
	}
	positions := info.Positions
	if positions == 0 {
		positions = atoiLoose(tags.get(positionsTags...))
	}
	if positions < 1 {
		positions = 1
	}

	openedAt := tags.get(dateTags...)

	return domain.Listing{
		Code:              tags.get(codeTags...),
		Title:             title,
		City:              city,
		State:             state,
		Location:          domain.FormatLocation(city, state),
		ActivityArea:      branch,
		Positions:         positions,
		OpenedAt:          openedAt,
		OpenedAtFormatted: formatOpenedAt(openedAt),
		Link:              tags.get(linkTags...),
		Description:       description,
	}, true
}

// formatOpenedAt reformats a raw feed date as dd/mm/yyyy, or "" when no
// known layout matches. An unparseable date is not an error.
func formatOpenedAt(raw string) string {
	t, ok := ParseOpenedAt(raw)
	if !ok {
		return ""
	}
	return t.Format("02/01/2006")
}

// ParseOpenedAt parses a raw feed date against the known layouts. The board
// layer reuses it for the recency-window filter.
func ParseOpenedAt(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range openedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// atoiLoose parses leading digits the way the original feed handling coerced
// tag text to int: non-numeric input counts as zero.
func atoiLoose(s string) int {
	n := 0
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		seen = true
	}
	if !seen {
		return 0
	}
	return n
}
