package constants

// ImageStatus is the terminal status of a processed screenshot.
type ImageStatus string

// Stable values (logged and reported in batch summaries).
const (
	ImageStatusOCROK    ImageStatus = "OCR_OK"    // text recognized, candidates extracted
	ImageStatusNoAnchor ImageStatus = "NO_ANCHOR" // no date anchor found, image skipped
	ImageStatusFailed   ImageStatus = "FAILED"    // image could not be loaded or recognized
)
