package extract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pedidos-tracker/internal/extract"
)

const screenshotText = `
Semana 49
vie, 5 de dic 2024

1811824615
Pedido Agrupado
El Local
Bueno
12:00 - 12:30
Completado

Starbucks
19:45 - 20:10
Completado
Ver detalles

McDonald's
23:50 - 00:15
`

func TestExtractOrders(t *testing.T) {
	orders := extract.ExtractOrders(screenshotText, nil)
	require.Len(t, orders, 3)

	assert.Equal(t, "El Local Bueno", orders[0].VendorName)
	assert.Equal(t, time.Date(2024, time.December, 5, 12, 0, 0, 0, time.UTC), orders[0].AcceptedAt)
	assert.Equal(t, time.Date(2024, time.December, 5, 12, 30, 0, 0, time.UTC), orders[0].DeliveredAt)

	assert.Equal(t, "Starbucks", orders[1].VendorName)
	assert.Equal(t, time.Date(2024, time.December, 5, 19, 45, 0, 0, time.UTC), orders[1].AcceptedAt)

	// overnight delivery rolls to the next calendar day
	assert.Equal(t, "McDonald's", orders[2].VendorName)
	assert.Equal(t, time.Date(2024, time.December, 5, 23, 50, 0, 0, time.UTC), orders[2].AcceptedAt)
	assert.Equal(t, time.Date(2024, time.December, 6, 0, 15, 0, 0, time.UTC), orders[2].DeliveredAt)
}

func TestExtractOrdersLineOrderPreserved(t *testing.T) {
	orders := extract.ExtractOrders(screenshotText, nil)
	require.Len(t, orders, 3)
	assert.True(t, orders[0].AcceptedAt.Before(orders[1].AcceptedAt))
}

func TestExtractOrdersNoAnchor(t *testing.T) {
	text := "Starbucks\n12:00 - 12:30\nMostaza\n19:45 - 20:10\n"
	assert.Empty(t, extract.ExtractOrders(text, nil))
}

func TestExtractOrdersInvalidComposedDate(t *testing.T) {
	text := "mié, 31 de abr\n2024\nStarbucks\n12:00 - 12:30\n"
	assert.Empty(t, extract.ExtractOrders(text, nil))
}

func TestExtractOrdersSkipsInvalidClockLine(t *testing.T) {
	text := "vie, 5 de dic\n2024\nStarbucks\n25:61 - 26:00\nCompletado\nMostaza\n13:00 - 13:30\n"
	orders := extract.ExtractOrders(text, nil)
	require.Len(t, orders, 1)
	assert.Equal(t, "Mostaza", orders[0].VendorName)
}

func TestSplitLines(t *testing.T) {
	lines := extract.SplitLines("  a \n\n b\n\n\nc ")
	assert.Equal(t, []string{"a", "b", "c"}, lines)
}
