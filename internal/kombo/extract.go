package kombo

import (
	"regexp"
	"strconv"
	"strings"
)

// The feed is inconsistent about whether location, branch and position count
// live in dedicated tags or inside the free-text description. These label
// patterns recover them from the cleaned description on a best-effort basis:
// a missing label leaves the field empty, never an error. If the provider
// changes its wording, extraction degrades silently; callers fall back to the
// structured tags.
var (
	cityStateRe     = regexp.MustCompile(`(?i)Cidade/UF:\s*([^/\n]+)/([A-Z]{2})`)
	cityLineRe      = regexp.MustCompile(`(?i)Cidade/UF:\s*([^\n]+)`)
	trailingStateRe = regexp.MustCompile(`(?i)(.+)/([A-Z]{2})$`)
	branchRe        = regexp.MustCompile(`(?i)Ramo de atividade(?:\s*da empresa)?:\s*([^\n]+)`)
	positionsRe     = regexp.MustCompile(`(?i)N[uú]mero de vagas:\s*(\d+)`)
	areaRe          = regexp.MustCompile(`(?i)[AÁ]rea:\s*([^\n]+)`)
)

// Extracted holds fields recovered from a description. Zero values mean the
// corresponding label was not found.
type Extracted struct {
	City      string
	State     string
	Branch    string // "ramo de atividade"
	Positions int
	Area      string
}

// ExtractFromDescription runs the label patterns over already-cleaned
// description text. Each field is independent; the first match wins.
func ExtractFromDescription(description string) Extracted {
	var info Extracted
	if description == "" {
		return info
	}

	if m := cityStateRe.FindStringSubmatch(description); m != nil {
		info.City = strings.TrimSpace(m[1])
		info.State = strings.TrimSpace(m[2])
	} else if m := cityLineRe.FindStringSubmatch(description); m != nil {
		location := strings.TrimSpace(m[1])
		if lm := trailingStateRe.FindStringSubmatch(location); lm != nil {
			info.City = strings.TrimSpace(lm[1])
			info.State = strings.TrimSpace(lm[2])
		} else {
			info.City = location
		}
	}

	if m := branchRe.FindStringSubmatch(description); m != nil {
		info.Branch = strings.TrimSpace(m[1])
	}

	if m := positionsRe.FindStringSubmatch(description); m != nil {
		info.Positions, _ = strconv.Atoi(m[1])
	}

	if m := areaRe.FindStringSubmatch(description); m != nil {
		info.Area = strings.TrimSpace(m[1])
	}

	return info
}
