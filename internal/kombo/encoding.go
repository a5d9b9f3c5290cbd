package kombo

import (
	"bytes"
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Matches an XML encoding declaration naming a Latin-1 family charset.
var latin1DeclRe = regexp.MustCompile(`encoding=["'](?:ISO-8859-1|Windows-1252|iso-8859-1)["']`)

// FixEncoding converts feed bytes to clean UTF-8. The provider sometimes
// serves Latin-1 bytes under a UTF-8 (or absent) declaration, and sometimes
// declares ISO-8859-1 on content that is really UTF-8. Strategy: if the bytes
// are not valid UTF-8, decode them as Windows-1252 (a superset of ISO-8859-1
// on the printable range, so it covers both sources the feed is known to
// use); then strip a leading BOM and rewrite any Latin-1 encoding declaration
// so the XML parser doesn't fight the converted bytes. Fails open: input that
// already is valid UTF-8 passes through with only BOM/declaration cleanup,
// and input that doesn't decode as Latin-1 text either passes through
// untouched.
func FixEncoding(content []byte) []byte {
	if !utf8.Valid(content) {
		if decoded, err := charmap.Windows1252.NewDecoder().Bytes(content); err == nil && !hasReplacementRune(decoded) {
			content = decoded
		}
	}

	content = bytes.TrimPrefix(content, utf8BOM)
	content = latin1DeclRe.ReplaceAll(content, []byte(`encoding="UTF-8"`))

	return content
}

// hasReplacementRune reports whether a decode produced U+FFFD. Windows-1252
// text never contains the five undefined bytes that map to it, so any
// replacement rune means the input wasn't Latin-1 family text.
func hasReplacementRune(b []byte) bool {
	return bytes.ContainsRune(b, '�')
}
