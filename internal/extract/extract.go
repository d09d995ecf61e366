// Package extract reconstructs structured order candidates from the raw,
// line-oriented text an OCR engine produced for a delivery-app screenshot.
//
// Extraction is per image and stateless: a temporal anchor (date fragment +
// year) is located once, every line carrying an "HH:MM - HH:MM" pair becomes
// a candidate, and the vendor name is reassembled from up to two preceding
// lines with UI chrome filtered out. An image without a date anchor is
// treated as ambiguous and yields no candidates at all.
package extract

import (
	"log/slog"
	"strings"

	"pedidos-tracker/internal/entity"
)

// SplitLines breaks raw OCR output into trimmed, non-empty lines. Positional
// adjacency drives name reconstruction, so order is preserved.
func SplitLines(raw string) []string {
	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

// ExtractOrders runs the full per-image pipeline over raw OCR text and
// returns candidates in line order of appearance. No cross-image state;
// anchors never carry over between images.
func ExtractOrders(raw string, logger *slog.Logger) []entity.OrderCandidate {
	if logger == nil {
		logger = slog.Default()
	}

	lines := SplitLines(raw)
	anchor := ExtractAnchor(lines)
	if !anchor.HasDate() {
		logger.Debug("no date anchor found, skipping image", "lines", len(lines))
		return nil
	}

	baseDate, err := anchor.BaseDate()
	if err != nil {
		logger.Debug("composed anchor date is not a valid calendar date",
			"day_month", anchor.DayMonth, "year", anchor.Year, "error", err)
		return nil
	}

	var candidates []entity.OrderCandidate
	for i, line := range lines {
		accepted, delivered, ok := ParseTimeRange(line, baseDate)
		if !ok {
			if HasTimeRange(line) {
				logger.Debug("time range matched but clock values are invalid", "line", line)
			}
			continue
		}
		candidates = append(candidates, entity.OrderCandidate{
			AcceptedAt:  accepted,
			DeliveredAt: delivered,
			VendorName:  ReconstructName(lines, i),
		})
	}

	logger.Debug("extraction complete",
		"base_date", baseDate.Format("02/01/2006"),
		"candidates", len(candidates))
	return candidates
}
