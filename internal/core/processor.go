// Package core runs the end-to-end screenshot pipeline: recognize, extract,
// deduplicate, enrich and persist. Images are processed sequentially and
// independently; extraction state never carries over between them.
package core

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"pedidos-tracker/constants"
	"pedidos-tracker/internal/dedupe"
	"pedidos-tracker/internal/enrich"
	"pedidos-tracker/internal/entity"
	"pedidos-tracker/internal/extract"
	"pedidos-tracker/internal/ocr"
	"pedidos-tracker/internal/repository"
	"pedidos-tracker/internal/shift"
)

// TextRecognizer lets tests stub the external OCR engine.
type TextRecognizer interface {
	Recognize(ctx context.Context, path string) (ocr.Result, error)
}

type Options struct {
	// EnrichOpts controls which historical rows teach vendor knowledge.
	EnrichOpts enrich.Options
	// ResolveShifts makes the batch try to assign a shift reference to each
	// new order; failures are logged and left unset rather than surfaced.
	ResolveShifts bool
}

type Processor struct {
	recognizer TextRecognizer
	store      repository.Store
	opts       Options
	logger     *slog.Logger
}

func NewProcessor(recognizer TextRecognizer, store repository.Store, opts Options, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{recognizer: recognizer, store: store, opts: opts, logger: logger}
}

// ImageResult is the per-screenshot outcome.
type ImageResult struct {
	Path       string
	Status     constants.ImageStatus
	Candidates []entity.OrderCandidate
	Err        string
}

// BatchStats aggregates a directory run.
type BatchStats struct {
	Scanned    int
	Matched    int
	Failed     int
	NoAnchor   int
	Candidates int
	Duplicates int
	Inserted   int
	Backfilled int
}

// ProcessImage recognizes one screenshot and extracts its order candidates.
// A missing anchor or unreadable image yields a terminal status, not an error.
func (p *Processor) ProcessImage(ctx context.Context, path string) ImageResult {
	res, err := p.recognizer.Recognize(ctx, path)
	if err != nil {
		p.logger.Error("recognition failed", "path", path, "error", err)
		return ImageResult{Path: path, Status: constants.ImageStatusFailed, Err: err.Error()}
	}

	lines := extract.SplitLines(res.Text)
	if !extract.ExtractAnchor(lines).HasDate() {
		p.logger.Info("image has no date anchor, skipping", "path", path)
		return ImageResult{Path: path, Status: constants.ImageStatusNoAnchor}
	}

	candidates := extract.ExtractOrders(res.Text, p.logger)
	p.logger.Info("image processed",
		"path", path,
		"candidates", len(candidates),
		"ocr_confidence", res.Confidence,
		"ocr_ms", res.Duration.Milliseconds())
	return ImageResult{Path: path, Status: constants.ImageStatusOCROK, Candidates: candidates}
}

// ProcessDirectory walks root for screenshots, extracts orders from each,
// filters already-recorded ones by temporal signature, assigns monotonic IDs,
// appends the remainder and backfills historical vendor gaps.
func (p *Processor) ProcessDirectory(ctx context.Context, root string) (BatchStats, error) {
	var stats BatchStats
	if strings.TrimSpace(root) == "" {
		return stats, fmt.Errorf("captures directory is required")
	}

	logger := p.logger.With("run_id", uuid.NewString())

	history, err := p.store.ListOrders(ctx)
	if err != nil {
		return stats, err
	}
	signatures := dedupe.BuildSignatureSet(historicalTimestamps(history))
	knowledge := enrich.BuildVendorKnowledge(history, p.opts.EnrichOpts)

	var shifts []entity.Shift
	if p.opts.ResolveShifts {
		if shifts, err = p.store.ListShifts(ctx); err != nil {
			return stats, err
		}
	}

	nextID, err := p.store.NextOrderID(ctx)
	if err != nil {
		return stats, err
	}

	paths, err := collectImages(root)
	if err != nil {
		return stats, err
	}
	stats.Scanned = len(paths)

	var fresh []entity.Order
	for _, path := range paths {
		result := p.ProcessImage(ctx, path)
		switch result.Status {
		case constants.ImageStatusFailed:
			stats.Failed++
			continue
		case constants.ImageStatusNoAnchor:
			stats.NoAnchor++
			continue
		}
		stats.Matched++
		stats.Candidates += len(result.Candidates)

		for _, c := range result.Candidates {
			accepted := dedupe.NormalizeTime(c.AcceptedAt)
			delivered := dedupe.NormalizeTime(c.DeliveredAt)
			if dedupe.AlreadyExists(accepted, delivered, signatures) {
				stats.Duplicates++
				continue
			}

			order := entity.Order{
				ID:          nextID,
				AcceptedAt:  accepted,
				DeliveredAt: delivered,
				VendorName:  c.VendorName,
			}
			if info, ok := knowledge[c.VendorName]; ok {
				order.VendorAddress = info.Address
				order.BusinessType = info.BusinessType
				order.Chain = info.Chain
				order.VendorPostalCode = info.PostalCode
			}
			if p.opts.ResolveShifts {
				if shiftID, err := shift.Resolve(c.AcceptedAt, shifts); err == nil {
					order.ShiftID = &shiftID
				} else {
					logger.Debug("shift unresolved for order", "accepted_at", accepted, "error", err)
				}
			}

			fresh = append(fresh, order)
			signatures.Add(dedupe.Signature(accepted, delivered))
			nextID++
		}
	}

	if len(fresh) > 0 {
		if err := p.store.AppendOrders(ctx, fresh); err != nil {
			return stats, err
		}
		stats.Inserted = len(fresh)
	}

	backfilled, err := p.store.BackfillVendorGaps(ctx, knowledge)
	if err != nil {
		return stats, err
	}
	stats.Backfilled = backfilled

	logger.Info("batch complete",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"failed", stats.Failed,
		"no_anchor", stats.NoAnchor,
		"candidates", stats.Candidates,
		"duplicates", stats.Duplicates,
		"inserted", stats.Inserted,
		"backfilled", stats.Backfilled)
	return stats, nil
}

// collectImages walks root for accepted screenshot extensions, skipping
// hidden files and directories. Walk order is lexical, so runs are
// deterministic for a given folder.
func collectImages(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path != root && strings.HasPrefix(filepath.Base(path), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if constants.IsImageExt(filepath.Ext(path)) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return paths, nil
}

func historicalTimestamps(history []entity.Order) []dedupe.HistoricalTimestamps {
	rows := make([]dedupe.HistoricalTimestamps, len(history))
	for i, o := range history {
		rows[i] = dedupe.HistoricalTimestamps{AcceptedAt: o.AcceptedAt, DeliveredAt: o.DeliveredAt}
	}
	return rows
}
