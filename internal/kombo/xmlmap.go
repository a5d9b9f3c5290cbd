package kombo

import (
	"encoding/xml"
	"strings"
)

// The provider never committed to one document shape or one set of tag names,
// so items are decoded generically: every child element of an item becomes a
// name/text pair, and fields are resolved by trying candidate tag names in
// priority order.

type xmlItem struct {
	Fields []xmlField `xml:",any"`
}

type xmlField struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

// xmlDocument accepts any root element and exposes the three item locations
// the feed has been seen to use: channel/item (RSS), bare top-level item, and
// vagas/vaga.
type xmlDocument struct {
	Channel *struct {
		Items []xmlItem `xml:"item"`
	} `xml:"channel"`
	Items []xmlItem `xml:"item"`
	Vagas *struct {
		Items []xmlItem `xml:"vaga"`
	} `xml:"vagas"`
	// Direct <vaga> children, for documents rooted at <vagas>.
	VagaItems []xmlItem `xml:"vaga"`
}

// items returns the first non-empty item list, in document order. No match
// means an empty feed, not an error.
func (d *xmlDocument) items() []xmlItem {
	if d.Channel != nil && len(d.Channel.Items) > 0 {
		return d.Channel.Items
	}
	if len(d.Items) > 0 {
		return d.Items
	}
	if d.Vagas != nil && len(d.Vagas.Items) > 0 {
		return d.Vagas.Items
	}
	if len(d.VagaItems) > 0 {
		return d.VagaItems
	}
	return nil
}

// tagMap maps lowercase tag names to their trimmed text. The first occurrence
// of a tag in document order wins.
type tagMap map[string]string

func newTagMap(item xmlItem) tagMap {
	m := make(tagMap, len(item.Fields))
	for _, f := range item.Fields {
		name := strings.ToLower(f.XMLName.Local)
		if _, ok := m[name]; !ok {
			m[name] = strings.TrimSpace(f.Text)
		}
	}
	return m
}

// get returns the value of the first candidate tag that is present in the
// item, even when that value is empty. Absent tags yield "".
func (m tagMap) get(candidates ...string) string {
	for _, tag := range candidates {
		if v, ok := m[tag]; ok {
			return v
		}
	}
	return ""
}
