package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"pedidos-tracker/internal/common"
	"pedidos-tracker/internal/core"
	"pedidos-tracker/internal/enrich"
	"pedidos-tracker/internal/export"
	"pedidos-tracker/internal/ocr"
	"pedidos-tracker/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		dir     = flag.String("dir", "", "directory to scan for screenshots (defaults to CAPTURES_DIR)")
		out     = flag.String("out", "", "output XLSX report path (optional; empty skips the report)")
		fromStr = flag.String("from", "", "report from date YYYY-MM-DD")
		toStr   = flag.String("to", "", "report to date YYYY-MM-DD")
	)
	flag.Parse()

	// Parse date filters
	var from, to *time.Time
	if *fromStr != "" {
		if parsed, err := time.Parse("2006-01-02", *fromStr); err != nil {
			printError("Error: invalid --from date format, use YYYY-MM-DD: %v\n", err)
			os.Exit(1)
		} else {
			from = &parsed
		}
	}
	if *toStr != "" {
		if parsed, err := time.Parse("2006-01-02", *toStr); err != nil {
			printError("Error: invalid --to date format, use YYYY-MM-DD: %v\n", err)
			os.Exit(1)
		} else {
			to = &parsed
		}
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration from .env when present
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "error", err)
	}
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *dir == "" {
		*dir = cfg.Extract.CapturesDir
	}

	ctx := context.Background()

	// Wire store
	store, err := repository.NewStore(cfg.Store, logger)
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	if es, ok := store.(*repository.ExcelStore); ok {
		if err := es.Init(); err != nil {
			logger.Error("failed to initialize workbook", "path", cfg.Store.WorkbookPath, "error", err)
			os.Exit(1)
		}
	}

	// Wire OCR + extraction pipeline
	recognizer := ocr.NewRecognizer(ocr.Config{
		Tesseract:           cfg.OCR.Tesseract,
		Lang:                cfg.OCR.TesseractLang,
		TessdataDir:         cfg.OCR.TessdataDir,
		EnableTSVConfidence: cfg.OCR.TSVConfidence,
		ArtifactCacheDir:    cfg.OCR.ArtifactCacheDir,
	}, logger)

	processor := core.NewProcessor(recognizer, store, core.Options{
		EnrichOpts:    enrich.Options{RequireLocation: cfg.Extract.EnrichRequireLocation},
		ResolveShifts: cfg.Extract.ResolveShifts,
	}, logger)

	logger.Info("starting batch extraction", "dir", *dir, "backend", cfg.Store.Backend)
	stats, err := processor.ProcessDirectory(ctx, *dir)
	if err != nil {
		logger.Error("batch extraction failed", "error", err)
		os.Exit(1)
	}

	// Optional XLSX report
	if *out != "" {
		if abs, aerr := filepath.Abs(*out); aerr == nil {
			*out = abs
		}
		exportSvc := export.NewService(store, logger)
		raw, err := exportSvc.ExportOrdersXLSX(ctx, from, to)
		if err != nil {
			logger.Error("failed to export report", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*out, raw, 0644); err != nil {
			logger.Error("failed to write report file", "path", *out, "error", err)
			os.Exit(1)
		}
		logger.Info("report written", "path", *out)
	}

	logger.Info("batch extraction complete",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"failed", stats.Failed,
		"no_anchor", stats.NoAnchor,
		"candidates", stats.Candidates,
		"duplicates", stats.Duplicates,
		"inserted", stats.Inserted,
		"backfilled", stats.Backfilled)

	fmt.Printf("Batch extraction complete!\n")
	fmt.Printf("- Screenshots scanned: %d\n", stats.Scanned)
	fmt.Printf("- Orders inserted: %d\n", stats.Inserted)
	fmt.Printf("- Duplicates skipped: %d\n", stats.Duplicates)
	fmt.Printf("- Failures: %d\n", stats.Failed)
	if *out != "" {
		fmt.Printf("- Report: %s\n", *out)
	}
}
