package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"pedidos-tracker/internal/common"
	"pedidos-tracker/internal/extract"
	"pedidos-tracker/internal/ocr"
)

// runocr recognizes a single screenshot and prints the normalized text and
// the order candidates it yields. Debug tool for tuning the line heuristics.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runocr <image-path>")
		os.Exit(2)
	}
	path := os.Args[1]

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "error", err)
	}
	cfg := common.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	recognizer := ocr.NewRecognizer(ocr.Config{
		Tesseract:           cfg.OCR.Tesseract,
		Lang:                cfg.OCR.TesseractLang,
		TessdataDir:         cfg.OCR.TessdataDir,
		EnableTSVConfidence: cfg.OCR.TSVConfidence,
		ArtifactCacheDir:    cfg.OCR.ArtifactCacheDir,
	}, logger)

	start := time.Now()
	res, err := recognizer.Recognize(ctx, path)
	dur := time.Since(start)
	if err != nil {
		logger.Error("recognition failed",
			"path", path, "error", err, "duration_ms", dur.Milliseconds())
		os.Exit(1)
	}

	logger.Info("recognition OK",
		"path", path,
		"lang", res.Language,
		"bytes", len(res.Text),
		"confidence", res.Confidence,
		"duration_ms", dur.Milliseconds(),
	)

	fmt.Println("--- recognized lines ---")
	for _, line := range extract.SplitLines(res.Text) {
		marker := " "
		if extract.IsSeparator(line) {
			marker = "|"
		}
		fmt.Printf("%s %s\n", marker, line)
	}

	candidates := extract.ExtractOrders(res.Text, logger)
	fmt.Printf("--- candidates (%d) ---\n", len(candidates))
	for _, c := range candidates {
		fmt.Printf("%s  %s -> %s\n",
			c.VendorName,
			c.AcceptedAt.Format("02/01/2006 15:04"),
			c.DeliveredAt.Format("02/01/2006 15:04"))
	}
}
