package postprocess

import (
	"regexp"
	"strings"
)

// The model is instructed not to cite passages inline, but smaller models
// leak markers like "[Document 2]" or "(Source 1)" anyway. Strip every
// variant before the answer leaves the service.
var (
	citationRe   = regexp.MustCompile(`(?i)\s*[\[(]\s*(?:document|source)\s+\d+\s*[\])]`)
	bareMarkerRe = regexp.MustCompile(`(?i)\s*\b(?:document|source)\s+\d+\b\s*:?`)
	hspaceRe     = regexp.MustCompile(`[ \t]{2,}`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
	orphanPunct  = regexp.MustCompile(` +([.,;])`)
)

// CleanAnswer removes leaked citation markers and normalizes whitespace.
// Line structure is preserved so numbered and bulleted lists survive.
// The function is idempotent.
func CleanAnswer(text string) string {
	cleaned := citationRe.ReplaceAllString(text, "")
	cleaned = bareMarkerRe.ReplaceAllString(cleaned, " ")

	lines := strings.Split(cleaned, "\n")
	for i, line := range lines {
		line = hspaceRe.ReplaceAllString(line, " ")
		line = orphanPunct.ReplaceAllString(line, "$1")
		lines[i] = strings.TrimRight(line, " \t")
	}
	cleaned = strings.Join(lines, "\n")

	cleaned = blankRunRe.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}
