package ocr

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// PreprocessImage converts a screenshot to grayscale and applies a global
// Otsu threshold, the preprocessing contract the recognition model expects.
// Returns the path of a temporary binarized PNG and a cleanup func.
func PreprocessImage(path, cacheDir string) (string, func(), error) {
	src, err := imaging.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open image: %w", err)
	}

	gray := imaging.Grayscale(src)
	bin := binarize(gray, otsuThreshold(gray))

	if cacheDir == "" {
		cacheDir = os.TempDir()
	}
	tmpDir, err := os.MkdirTemp(cacheDir, "pt-ocr-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	out := filepath.Join(tmpDir, "binarized.png")
	if err := imaging.Save(bin, out); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("save binarized image: %w", err)
	}
	return out, cleanup, nil
}

// otsuThreshold picks the global threshold maximizing inter-class variance
// over the grayscale histogram.
func otsuThreshold(img *image.NRGBA) uint8 {
	var hist [256]int
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[img.NRGBAAt(x, y).R]++
		}
	}
	if total == 0 {
		return 128
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumB, wB float64
	var best float64
	threshold := uint8(128)
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			threshold = uint8(t)
		}
	}
	return threshold
}

func binarize(img *image.NRGBA, threshold uint8) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := uint8(0)
			if img.NRGBAAt(x, y).R > threshold {
				v = 255
			}
			out.SetNRGBA(x, y, color255(v))
		}
	}
	return out
}

func color255(v uint8) color.NRGBA {
	return color.NRGBA{R: v, G: v, B: v, A: 255}
}
