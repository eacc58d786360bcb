package assistant

import (
	"regexp"
	"strings"
)

var (
	// Control characters other than line feed.
	controlChars   = regexp.MustCompile(`[\x{0000}-\x{0009}\x{000B}-\x{001F}\x{007F}-\x{009F}]`)
	headingMarkers = regexp.MustCompile(`#+\s*`)
	extraNewlines  = regexp.MustCompile(`\n{3,}`)
)

// Clean strips control characters and markdown emphasis/heading markers from
// generated text and collapses runs of blank lines.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = strings.TrimSpace(text)
	text = controlChars.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "*", "")
	text = headingMarkers.ReplaceAllString(text, "")
	text = extraNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
