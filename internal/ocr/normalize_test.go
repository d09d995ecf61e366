package ocr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pedidos-tracker/internal/ocr"
)

func TestNormalize(t *testing.T) {
	in := "Starbucks\r\n\t19:45  -  20:10\r\n----\r\n Completado  "
	got := ocr.Normalize(in)
	assert.Equal(t, "Starbucks\n 19:45 - 20:10\n\n Completado", got)
}

func TestNormalizeKeepsZeroPaddedClocks(t *testing.T) {
	assert.Equal(t, "12:05 - 12:30", ocr.Normalize("12:05 - 12:30"))
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Equal(t, "", ocr.Normalize(""))
}
