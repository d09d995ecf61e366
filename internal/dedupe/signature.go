// Package dedupe identifies already-recorded orders by a normalized temporal
// signature: canonical acceptance and delivery timestamps joined with "_".
package dedupe

import (
	"strings"
	"time"

	"pedidos-tracker/constants"
)

// Legacy formats historical cells may carry, tried in order.
var acceptedLayouts = []string{
	"02/01/2006 15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02 15:04",
}

// NormalizeTimestamp renders a stored timestamp string into the canonical
// DD/MM/YYYY HH:MM form. Empty input yields an empty string; input matching
// none of the known formats is returned trimmed as-is, a deliberate lenient
// fallback for free-form but consistent historical text.
func NormalizeTimestamp(value string) string {
	text := strings.TrimSpace(value)
	if text == "" {
		return ""
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Format(constants.TimestampLayout)
		}
	}
	return text
}

// NormalizeTime renders a native timestamp into the canonical form.
func NormalizeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(constants.TimestampLayout)
}

// Signature joins two already-canonical timestamps into a dedup key.
func Signature(accepted, delivered string) string {
	return accepted + "_" + delivered
}

// SignatureSet is the set of temporal signatures already recorded.
type SignatureSet map[string]struct{}

// Add inserts a signature.
func (s SignatureSet) Add(sig string) {
	s[sig] = struct{}{}
}

// HistoricalTimestamps is the minimal view of a stored order the set builder
// needs: the raw acceptance and delivery cell values.
type HistoricalTimestamps struct {
	AcceptedAt  string
	DeliveredAt string
}

// BuildSignatureSet folds historical rows into a signature set. Rows missing
// either timestamp after normalization contribute nothing: an order without
// both timestamps is never considered a duplicate and never blocks another.
func BuildSignatureSet(rows []HistoricalTimestamps) SignatureSet {
	set := make(SignatureSet, len(rows))
	for _, r := range rows {
		accepted := NormalizeTimestamp(r.AcceptedAt)
		delivered := NormalizeTimestamp(r.DeliveredAt)
		if accepted != "" && delivered != "" {
			set.Add(Signature(accepted, delivered))
		}
	}
	return set
}

// AlreadyExists reports whether the signature of the given canonical
// timestamp pair is in the set. The arguments are used verbatim; callers are
// responsible for passing consistently formatted strings.
func AlreadyExists(accepted, delivered string, set SignatureSet) bool {
	_, ok := set[Signature(accepted, delivered)]
	return ok
}
