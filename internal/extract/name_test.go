package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pedidos-tracker/internal/extract"
)

func TestReconstructNameTwoLines(t *testing.T) {
	lines := []string{"El Local", "Bueno", "12:00 - 12:30"}
	assert.Equal(t, "El Local Bueno", extract.ReconstructName(lines, 2))
}

func TestReconstructNameSeparatorExcluded(t *testing.T) {
	lines := []string{"Completado", "Starbucks", "19:45 - 20:10"}
	assert.Equal(t, "Starbucks", extract.ReconstructName(lines, 2))
}

func TestReconstructNameFirstLine(t *testing.T) {
	lines := []string{"12:00 - 12:30"}
	assert.Equal(t, "Desconocido", extract.ReconstructName(lines, 0))
}

func TestReconstructNameSingleLookback(t *testing.T) {
	lines := []string{"Mostaza", "13:10 - 13:55"}
	assert.Equal(t, "Mostaza", extract.ReconstructName(lines, 1))
}

func TestReconstructNameStripsLeadingJunk(t *testing.T) {
	lines := []string{"1811824615", "-- Grido Helados", "18:00 - 18:20"}
	assert.Equal(t, "Grido Helados", extract.ReconstructName(lines, 2))
}

func TestReconstructNameStripsTrailingJunkKeepsParens(t *testing.T) {
	lines := []string{"Completado", "La Farola (Centro)...", "20:00 - 20:40"}
	assert.Equal(t, "La Farola (Centro)", extract.ReconstructName(lines, 2))
}

func TestReconstructNameKeepsAccents(t *testing.T) {
	lines := []string{"Cancelado", "Panadería Don José", "08:15 - 08:45"}
	assert.Equal(t, "Panadería Don José", extract.ReconstructName(lines, 2))
}
