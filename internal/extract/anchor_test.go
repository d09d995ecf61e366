package extract_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pedidos-tracker/internal/extract"
)

func TestExtractAnchor(t *testing.T) {
	lines := []string{
		"Semana 10 2024",
		"vie, 5 de dic",
		"1811824615",
	}
	a := extract.ExtractAnchor(lines)
	assert.Equal(t, "05/12", a.DayMonth)
	assert.Equal(t, "2024", a.Year)
	assert.True(t, a.HasDate())
}

func TestExtractAnchorFirstMatchWins(t *testing.T) {
	lines := []string{
		"lun, 1 de ene",
		"mar, 2 de feb",
		"2023",
		"2024",
	}
	a := extract.ExtractAnchor(lines)
	assert.Equal(t, "01/01", a.DayMonth)
	assert.Equal(t, "2023", a.Year)
}

func TestExtractAnchorSearchesContinueIndependently(t *testing.T) {
	// year appears before the date fragment; both must be found
	lines := []string{"Resumen 2025", "mié, 30 de abr"}
	a := extract.ExtractAnchor(lines)
	assert.Equal(t, "30/04", a.DayMonth)
	assert.Equal(t, "2025", a.Year)
}

func TestExtractAnchorUnknownMonthDefaults(t *testing.T) {
	a := extract.ExtractAnchor([]string{"vie, 5 de xyz"})
	assert.Equal(t, "05/01", a.DayMonth)
}

func TestExtractAnchorMissingYearFallsBackToCurrent(t *testing.T) {
	a := extract.ExtractAnchor([]string{"vie, 5 de dic"})
	assert.Equal(t, fmt.Sprintf("%d", time.Now().Year()), a.Year)
}

func TestExtractAnchorNoDate(t *testing.T) {
	a := extract.ExtractAnchor([]string{"Starbucks", "12:00 - 12:30"})
	assert.False(t, a.HasDate())
}

func TestAnchorBaseDate(t *testing.T) {
	a := extract.Anchor{DayMonth: "05/03", Year: "2024"}
	d, err := a.BaseDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), d)
}

func TestAnchorBaseDateRejectsInvalidCalendarDate(t *testing.T) {
	a := extract.Anchor{DayMonth: "31/04", Year: "2024"}
	_, err := a.BaseDate()
	assert.Error(t, err)
}
