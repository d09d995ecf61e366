package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pedidos-tracker/internal/entity"
	"pedidos-tracker/internal/repository"
)

func newStore(t *testing.T) *repository.ExcelStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "datos_pedidos.xlsx")
	store := repository.NewExcelStore(path, nil)
	require.NoError(t, store.Init())
	return store
}

func sampleOrder(id int) entity.Order {
	return entity.Order{
		ID:               id,
		AcceptedAt:       "05/03/2024 23:50",
		DeliveredAt:      "06/03/2024 00:15",
		VendorName:       "Starbucks",
		BusinessType:     "Cafeteria",
		Chain:            "Si",
		VendorPostalCode: 1425,
		CustomerPostal:   1426,
		Tip:              150.5,
	}
}

func TestExcelStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	next, err := store.NextOrderID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	shiftID := 3
	first := sampleOrder(1)
	first.ShiftID = &shiftID
	require.NoError(t, store.AppendOrders(ctx, []entity.Order{first, sampleOrder(2)}))

	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, 1, orders[0].ID)
	require.NotNil(t, orders[0].ShiftID)
	assert.Equal(t, 3, *orders[0].ShiftID)
	assert.Equal(t, "05/03/2024 23:50", orders[0].AcceptedAt)
	assert.Equal(t, "Starbucks", orders[0].VendorName)
	assert.Equal(t, 1425, orders[0].VendorPostalCode)
	assert.InDelta(t, 150.5, orders[0].Tip, 0.001)
	assert.Nil(t, orders[1].ShiftID)

	next, err = store.NextOrderID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, next)
}

func TestExcelStoreBackfillVendorGaps(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	bare := entity.Order{ID: 1, AcceptedAt: "05/03/2024 12:00", DeliveredAt: "05/03/2024 12:30", VendorName: "Starbucks"}
	require.NoError(t, store.AppendOrders(ctx, []entity.Order{bare}))

	knowledge := map[string]entity.VendorInfo{
		"Starbucks": {BusinessType: "Cafeteria", Chain: "Si", Address: "Av. Santa Fe 1700"},
	}
	changed, err := store.BackfillVendorGaps(ctx, knowledge)
	require.NoError(t, err)
	assert.Equal(t, 3, changed)

	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Cafeteria", orders[0].BusinessType)
	assert.Equal(t, "Si", orders[0].Chain)
	assert.Equal(t, "Av. Santa Fe 1700", orders[0].VendorAddress)

	// second pass finds nothing to fill
	changed, err = store.BackfillVendorGaps(ctx, knowledge)
	require.NoError(t, err)
	assert.Equal(t, 0, changed)
}

func TestExcelStoreListShifts(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "datos_pedidos.xlsx")
	store := repository.NewExcelStore(path, nil)
	require.NoError(t, store.Init())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	// clock-only bounds anchored on Fecha, second one crossing midnight
	require.NoError(t, f.SetSheetRow("Turnos", "A2", &[]any{1, "05/03/2024", "11:30", "14:00"}))
	require.NoError(t, f.SetSheetRow("Turnos", "A3", &[]any{2, "05/03/2024", "20:00", "00:30"}))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	shifts, err := store.ListShifts(ctx)
	require.NoError(t, err)
	require.Len(t, shifts, 2)

	assert.Equal(t, "05/03/2024 11:30", shifts[0].Start.Format("02/01/2006 15:04"))
	assert.Equal(t, "05/03/2024 14:00", shifts[0].End.Format("02/01/2006 15:04"))
	// past-midnight end rolls to the next day
	assert.Equal(t, "06/03/2024 00:30", shifts[1].End.Format("02/01/2006 15:04"))
}

func TestExcelStoreInitIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.AppendOrders(ctx, []entity.Order{sampleOrder(1)}))
	require.NoError(t, store.Init())

	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
