package kombo

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	brTagRe     = regexp.MustCompile(`(?i)<br\s*/?>`)
	hSpaceRe    = regexp.MustCompile(`[ \t]+`)
	blankLineRe = regexp.MustCompile(`\n\s*\n`)
)

// CleanHTML converts markup to plain text: <br> tags become newlines, all
// other tags are stripped, entities are decoded, runs of horizontal
// whitespace collapse to a single space and blank-line runs to one newline.
func CleanHTML(markup string) string {
	if markup == "" {
		return ""
	}

	text := brTagRe.ReplaceAllString(markup, "\n")

	// goquery's html parser tolerates broken markup and decodes entities
	// while extracting text; on a parse failure keep the <br>-converted text.
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
		text = doc.Text()
	}

	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = hSpaceRe.ReplaceAllString(text, " ")
	text = blankLineRe.ReplaceAllString(text, "\n")

	return strings.TrimSpace(text)
}
