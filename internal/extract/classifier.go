package extract

import (
	"regexp"
	"strings"
)

// Separator rules target live app UI text: long numeric order IDs, status
// labels, week headers, abbreviated dates and earnings chrome. Each rule is a
// predicate over the lowercased, trimmed line; evaluation stops at the first
// match. Add or remove rules here without touching the callers.
var separatorRules = []func(t string) bool{
	// long numeric IDs (e.g. 1811824615)
	func(t string) bool { return reLongID.MatchString(t) },
	// app status and detail labels
	func(t string) bool { return strings.Contains(t, "pedido agrupado") },
	func(t string) bool { return strings.Contains(t, "completado") },
	func(t string) bool { return strings.Contains(t, "cancelado") },
	func(t string) bool { return strings.Contains(t, "ver detalles") },
	// week headers (e.g. "semana 49")
	func(t string) bool { return strings.Contains(t, "semana") && reTwoDigits.MatchString(t) },
	// abbreviated weekday + day (e.g. "vie, 5")
	func(t string) bool { return reShortDate.MatchString(t) },
	// earnings and session chrome
	func(t string) bool { return strings.Contains(t, "promedio") || strings.Contains(t, "ars") },
	func(t string) bool { return strings.Contains(t, "horas conectado") },
}

var (
	reLongID    = regexp.MustCompile(`^\d{7,}$`)
	reTwoDigits = regexp.MustCompile(`\d{2}`)
	reShortDate = regexp.MustCompile(`^[\p{L}\d_]{3}, \d+`)
)

// IsSeparator reports whether an OCR line is UI chrome or metadata rather
// than vendor-name content. Pure function over a single line.
func IsSeparator(line string) bool {
	t := strings.ToLower(strings.TrimSpace(line))
	for _, rule := range separatorRules {
		if rule(t) {
			return true
		}
	}
	return false
}
