// Package ocr drives the external recognition engine over preprocessed
// screenshots and cleans up its raw text output.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"pedidos-tracker/constants"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Lang        string // recognition language, default "spa"
	TessdataDir string

	EnableTSVConfidence bool

	PSM int // e.g., 6 is good for uniform block of text
	OEM int // 1 = LSTM; leave 0 to use default

	ArtifactCacheDir string
}

type Result struct {
	Text       string
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

type Recognizer struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewRecognizer(cfg Config, logger *slog.Logger) *Recognizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "spa"
	}
	if cfg.ArtifactCacheDir == "" {
		cfg.ArtifactCacheDir = "./tmp"
	}
	return &Recognizer{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Recognize binarizes the screenshot and runs the recognition engine over it.
func (r *Recognizer) Recognize(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	if !constants.IsImageExt(ext) {
		r.logger.Error("unsupported screenshot extension", "extension", ext)
		return Result{}, fmt.Errorf("unsupported extension: %q", ext)
	}
	r.logger.Debug("starting recognition", "path", path, "lang", r.cfg.Lang)

	binarized, cleanup, err := PreprocessImage(path, r.cfg.ArtifactCacheDir)
	if err != nil {
		return Result{}, err
	}
	defer cleanup()

	res, err := r.recognizeImage(ctx, binarized)
	res.Duration = time.Since(start)
	return res, err
}
