package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Store   StoreConfig
	OCR     OCRConfig
	Extract ExtractConfig
}

// StoreConfig selects and parameterizes the order/shift store backend.
type StoreConfig struct {
	// Backend is one of "excel", "sqlite", "postgres".
	Backend string
	// WorkbookPath is the XLSX file backing the excel store.
	WorkbookPath string
	// DSN is the connection string for the sqlite or postgres backends.
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	DialTimeout  time.Duration
}

// OCRConfig holds OCR-related configuration. The tesseract path is an explicit
// value handed to the OCR boundary at startup; there is no process-wide default.
type OCRConfig struct {
	Tesseract        string
	TesseractLang    string
	TessdataDir      string
	ArtifactCacheDir string
	TSVConfidence    bool
}

// ExtractConfig holds extraction and enrichment behavior knobs.
type ExtractConfig struct {
	// CapturesDir is the folder scanned for screenshots by the batch command.
	CapturesDir string
	// EnrichRequireLocation, when true, only lets historical rows with a
	// non-empty vendor address contribute to the vendor knowledge map.
	EnrichRequireLocation bool
	// ResolveShifts controls whether the batch pipeline tries to assign a
	// shift reference to each new order.
	ResolveShifts bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:      getEnv("STORE_BACKEND", "excel"),
			WorkbookPath: getEnv("WORKBOOK_PATH", "datos_pedidos.xlsx"),
			DSN:          getEnv("STORE_DSN", ""),
			MaxOpenConns: getEnvAsInt("STORE_MAX_OPEN_CONNS", 5),
			MaxIdleConns: getEnvAsInt("STORE_MAX_IDLE_CONNS", 2),
			DialTimeout:  getEnvAsDuration("STORE_DIAL_TIMEOUT", 3*time.Second),
		},
		OCR: OCRConfig{
			Tesseract:        getEnv("TESSERACT_PATH", "tesseract"),
			TesseractLang:    getEnv("TESSERACT_LANG", "spa"),
			TessdataDir:      getEnv("TESSDATA_PREFIX", ""),
			ArtifactCacheDir: getEnv("ARTIFACT_CACHE_DIR", "./tmp"),
			TSVConfidence:    getEnvAsBool("OCR_TSV_CONFIDENCE", false),
		},
		Extract: ExtractConfig{
			CapturesDir:           getEnv("CAPTURES_DIR", "capturas"),
			EnrichRequireLocation: getEnvAsBool("ENRICH_REQUIRE_LOCATION", false),
			ResolveShifts:         getEnvAsBool("RESOLVE_SHIFTS", true),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "excel":
		if c.Store.WorkbookPath == "" {
			return NewAppError("CONFIG_ERROR", "WORKBOOK_PATH is required for the excel backend", ErrInvalidInput)
		}
	case "sqlite", "postgres":
		if c.Store.DSN == "" {
			return NewAppError("CONFIG_ERROR", "STORE_DSN is required for the "+c.Store.Backend+" backend", ErrInvalidInput)
		}
	default:
		return NewAppError("CONFIG_ERROR", "unknown STORE_BACKEND: "+c.Store.Backend, ErrInvalidInput)
	}
	if c.OCR.Tesseract == "" {
		return NewAppError("CONFIG_ERROR", "TESSERACT_PATH is required", ErrInvalidInput)
	}
	return nil
}
