package extract

import (
	"regexp"
	"time"

	"pedidos-tracker/constants"
)

// e.g. "23:50 - 00:15"
var reTimeRange = regexp.MustCompile(`(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})`)

// HasTimeRange reports whether a line contains an "HH:MM - HH:MM" pair.
func HasTimeRange(line string) bool {
	return reTimeRange.MatchString(line)
}

// ParseTimeRange detects an "HH:MM - HH:MM" pair anywhere in the line and
// anchors both clock times to baseDate. When the end time precedes the start
// time the delivery is assumed to cross midnight and rolls to the next day.
// ok is false when the line carries no time range or either clock value is
// out of range (that line is skipped, not fatal).
func ParseTimeRange(line string, baseDate time.Time) (accepted, delivered time.Time, ok bool) {
	m := reTimeRange.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, time.Time{}, false
	}

	start, err := time.Parse(constants.ClockLayout, m[1])
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(constants.ClockLayout, m[2])
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	accepted = combine(baseDate, start)
	delivered = combine(baseDate, end)
	if delivered.Before(accepted) {
		delivered = delivered.AddDate(0, 0, 1)
	}
	return accepted, delivered, true
}

func combine(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, date.Location())
}
