package core_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pedidos-tracker/internal/core"
	"pedidos-tracker/internal/entity"
	"pedidos-tracker/internal/ocr"
)

// fakeRecognizer returns canned OCR text keyed by file base name.
type fakeRecognizer struct {
	texts map[string]string
}

func (f *fakeRecognizer) Recognize(_ context.Context, path string) (ocr.Result, error) {
	text, ok := f.texts[filepath.Base(path)]
	if !ok {
		return ocr.Result{}, os.ErrNotExist
	}
	return ocr.Result{Text: text, Language: "spa"}, nil
}

// memStore is an in-memory repository.Store.
type memStore struct {
	orders []entity.Order
	shifts []entity.Shift
}

func (m *memStore) ListOrders(context.Context) ([]entity.Order, error) { return m.orders, nil }

func (m *memStore) NextOrderID(context.Context) (int, error) {
	maxID := 0
	for _, o := range m.orders {
		if o.ID > maxID {
			maxID = o.ID
		}
	}
	return maxID + 1, nil
}

func (m *memStore) AppendOrders(_ context.Context, orders []entity.Order) error {
	m.orders = append(m.orders, orders...)
	return nil
}

func (m *memStore) BackfillVendorGaps(_ context.Context, knowledge map[string]entity.VendorInfo) (int, error) {
	changed := 0
	for i := range m.orders {
		info, ok := knowledge[m.orders[i].VendorName]
		if !ok {
			continue
		}
		if m.orders[i].BusinessType == "" && info.BusinessType != "" {
			m.orders[i].BusinessType = info.BusinessType
			changed++
		}
	}
	return changed, nil
}

func (m *memStore) ListShifts(context.Context) ([]entity.Shift, error) { return m.shifts, nil }

const capture = `vie, 5 de dic
2024
Completado
Starbucks
19:45 - 20:10
Completado
Mostaza
23:50 - 00:15
`

const captureNoAnchor = `Starbucks
19:45 - 20:10
`

func writeCaptures(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("img"), 0o644))
	}
	return dir
}

func TestProcessDirectory(t *testing.T) {
	dir := writeCaptures(t, "a.png", "b.jpg", "notes.txt")
	store := &memStore{orders: []entity.Order{{
		ID:           4,
		AcceptedAt:   "05/12/2024 19:45",
		DeliveredAt:  "05/12/2024 20:10",
		VendorName:   "Starbucks",
		BusinessType: "Cafeteria",
	}}}
	rec := &fakeRecognizer{texts: map[string]string{
		"a.png": capture,
		"b.jpg": captureNoAnchor,
	}}

	p := core.NewProcessor(rec, store, core.Options{}, nil)
	stats, err := p.ProcessDirectory(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Scanned) // notes.txt is not an image
	assert.Equal(t, 1, stats.Matched)
	assert.Equal(t, 1, stats.NoAnchor)
	assert.Equal(t, 2, stats.Candidates)
	assert.Equal(t, 1, stats.Duplicates) // Starbucks 19:45 already recorded
	assert.Equal(t, 1, stats.Inserted)

	require.Len(t, store.orders, 2)
	inserted := store.orders[1]
	assert.Equal(t, 5, inserted.ID)
	assert.Equal(t, "Mostaza", inserted.VendorName)
	assert.Equal(t, "05/12/2024 23:50", inserted.AcceptedAt)
	assert.Equal(t, "06/12/2024 00:15", inserted.DeliveredAt)
}

func TestProcessDirectoryEnrichesKnownVendors(t *testing.T) {
	dir := writeCaptures(t, "a.png")
	store := &memStore{orders: []entity.Order{{
		ID:           1,
		AcceptedAt:   "01/12/2024 12:00",
		DeliveredAt:  "01/12/2024 12:30",
		VendorName:   "Mostaza",
		BusinessType: "Comida Rapida",
		Chain:        "Si",
	}}}
	rec := &fakeRecognizer{texts: map[string]string{"a.png": capture}}

	p := core.NewProcessor(rec, store, core.Options{}, nil)
	_, err := p.ProcessDirectory(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, store.orders, 3)
	for _, o := range store.orders[1:] {
		if o.VendorName == "Mostaza" {
			assert.Equal(t, "Comida Rapida", o.BusinessType)
			assert.Equal(t, "Si", o.Chain)
		}
	}
}

func TestProcessDirectoryResolvesShifts(t *testing.T) {
	dir := writeCaptures(t, "a.png")
	store := &memStore{shifts: []entity.Shift{{
		ID:    2,
		Start: mustTime(t, "05/12/2024 19:00"),
		End:   mustTime(t, "05/12/2024 21:00"),
	}}}
	rec := &fakeRecognizer{texts: map[string]string{"a.png": capture}}

	p := core.NewProcessor(rec, store, core.Options{ResolveShifts: true}, nil)
	_, err := p.ProcessDirectory(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, store.orders, 2)
	byVendor := map[string]entity.Order{}
	for _, o := range store.orders {
		byVendor[o.VendorName] = o
	}
	// 19:45 falls inside the shift window
	require.NotNil(t, byVendor["Starbucks"].ShiftID)
	assert.Equal(t, 2, *byVendor["Starbucks"].ShiftID)
	// 23:50 matches nothing and stays unassigned
	assert.Nil(t, byVendor["Mostaza"].ShiftID)
}

func TestProcessImageFailure(t *testing.T) {
	p := core.NewProcessor(&fakeRecognizer{}, &memStore{}, core.Options{}, nil)
	res := p.ProcessImage(context.Background(), "missing.png")
	assert.NotEmpty(t, res.Err)
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	out, err := time.Parse("02/01/2006 15:04", s)
	require.NoError(t, err)
	return out
}
