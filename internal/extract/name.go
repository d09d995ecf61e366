package extract

import (
	"regexp"
	"strings"
)

const unknownVendor = "Desconocido"

var (
	// stray symbols OCR attaches to line starts
	reLeadingJunk = regexp.MustCompile(`^[^\p{L}\p{N}]+`)
	// trailing artifacts; parentheses are legitimate name endings and are kept
	reTrailingJunk = regexp.MustCompile(`[^\p{L}\p{N}_\s()]+$`)
)

// ReconstructName assembles the vendor name for the time-range line at index
// i. The immediately preceding line is the name base; the line two back is
// prepended when the classifier does not mark it as a separator, recovering
// names the OCR split across two lines. Lookback is bounded at two lines.
func ReconstructName(lines []string, i int) string {
	if i <= 0 {
		return unknownVendor
	}

	name := lines[i-1]
	if i > 1 && !IsSeparator(lines[i-2]) {
		name = lines[i-2] + " " + name
	}

	name = reLeadingJunk.ReplaceAllString(name, "")
	name = reTrailingJunk.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}
