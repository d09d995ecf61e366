package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// spanishMonths maps three-letter Spanish month abbreviations to zero-padded
// month numbers. Unknown abbreviations fall back to "01".
var spanishMonths = map[string]string{
	"ene": "01", "feb": "02", "mar": "03", "abr": "04",
	"may": "05", "jun": "06", "jul": "07", "ago": "08",
	"sep": "09", "oct": "10", "nov": "11", "dic": "12",
}

var (
	// e.g. "vie, 5 de dic" — accented weekday abbreviations (mié, sáb) included
	reAnchorDate = regexp.MustCompile(`(?i)([\p{L}]{3}),\s*(\d{1,2})\s*de\s*([\p{L}]{3})`)
	reAnchorYear = regexp.MustCompile(`20\d{2}`)
)

// Anchor is the temporal context of one screenshot: a "DD/MM" day-month
// fragment and a "YYYY" year, each empty until found.
type Anchor struct {
	DayMonth string
	Year     string
}

// HasDate reports whether a day/month fragment was found. Without one the
// image has no absolute date and yields no candidates.
func (a Anchor) HasDate() bool {
	return a.DayMonth != ""
}

// BaseDate composes the anchor into a calendar date. Errors when the
// composed string is not calendrically valid (e.g. day 31 in a 30-day month).
func (a Anchor) BaseDate() (time.Time, error) {
	return time.Parse("02/01/2006", a.DayMonth+"/"+a.Year)
}

// ExtractAnchor scans all lines once for the temporal context. The first
// day/month match and the first year match win independently; each search
// stops once satisfied. A missing year falls back to the current system year.
func ExtractAnchor(lines []string) Anchor {
	var anchor Anchor
	for _, line := range lines {
		if anchor.DayMonth == "" {
			if m := reAnchorDate.FindStringSubmatch(line); m != nil {
				day := m[2]
				if len(day) == 1 {
					day = "0" + day
				}
				month, ok := spanishMonths[strings.ToLower(m[3])]
				if !ok {
					month = "01"
				}
				anchor.DayMonth = day + "/" + month
			}
		}
		if anchor.Year == "" {
			if m := reAnchorYear.FindString(line); m != "" {
				anchor.Year = m
			}
		}
		if anchor.DayMonth != "" && anchor.Year != "" {
			break
		}
	}
	if anchor.Year == "" {
		anchor.Year = fmt.Sprintf("%d", time.Now().Year())
	}
	return anchor
}
