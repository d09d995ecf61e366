package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"pedidos-tracker/constants"
	"pedidos-tracker/internal/entity"
)

// ExcelStore persists orders in an XLSX workbook (Pedidos/Turnos sheets).
// Every operation is open-mutate-save over the whole file; the workflow is
// single-user and the history small, so no handle is kept open.
type ExcelStore struct {
	path   string
	logger *slog.Logger
}

func NewExcelStore(path string, logger *slog.Logger) *ExcelStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelStore{path: path, logger: logger}
}

// Init creates the workbook with headered Pedidos/Turnos sheets when the
// file does not exist yet. Existing workbooks are left untouched.
func (s *ExcelStore) Init() error {
	if _, err := excelize.OpenFile(s.path); err == nil {
		return nil
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", constants.OrdersSheet); err != nil {
		return err
	}
	for i, h := range constants.OrderColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(constants.OrdersSheet, cell, h); err != nil {
			return err
		}
	}
	if _, err := f.NewSheet(constants.ShiftsSheet); err != nil {
		return err
	}
	for i, h := range []string{"ID_Turno", "Fecha", "Hora_Inicio", "Hora_Fin"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(constants.ShiftsSheet, cell, h); err != nil {
			return err
		}
	}
	return f.SaveAs(s.path)
}

func (s *ExcelStore) ListOrders(_ context.Context) ([]entity.Order, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(constants.OrdersSheet)
	if err != nil {
		return nil, fmt.Errorf("read %s sheet: %w", constants.OrdersSheet, err)
	}

	var orders []entity.Order
	for i, row := range rows {
		if i == 0 || isBlankRow(row) {
			continue // header
		}
		orders = append(orders, orderFromRow(row))
	}
	return orders, nil
}

func (s *ExcelStore) NextOrderID(ctx context.Context) (int, error) {
	orders, err := s.ListOrders(ctx)
	if err != nil {
		return 0, err
	}
	maxID := 0
	for _, o := range orders {
		if o.ID > maxID {
			maxID = o.ID
		}
	}
	return maxID + 1, nil
}

func (s *ExcelStore) AppendOrders(_ context.Context, orders []entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(constants.OrdersSheet)
	if err != nil {
		return err
	}
	next := len(rows) + 1

	for i, o := range orders {
		values := orderToRow(o)
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, next+i)
			if err := f.SetCellValue(constants.OrdersSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	s.logger.Info("orders appended", "count", len(orders), "workbook", s.path)
	return nil
}

// BackfillVendorGaps walks the order rows and fills empty address, business
// type and chain cells from the knowledge map. Saves only when something
// changed; returns the number of cells filled.
func (s *ExcelStore) BackfillVendorGaps(_ context.Context, knowledge map[string]entity.VendorInfo) (int, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return 0, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(constants.OrdersSheet)
	if err != nil {
		return 0, err
	}

	changed := 0
	fill := func(rowIdx, col int, current, value string) error {
		if strings.TrimSpace(current) != "" || value == "" {
			return nil
		}
		cell, _ := excelize.CoordinatesToCellName(col, rowIdx)
		if err := f.SetCellValue(constants.OrdersSheet, cell, value); err != nil {
			return err
		}
		changed++
		return nil
	}

	for i, row := range rows {
		if i == 0 {
			continue
		}
		name := strings.TrimSpace(cellAt(row, constants.ColVendorName))
		if name == "" {
			continue
		}
		info, ok := knowledge[name]
		if !ok {
			continue
		}
		rowIdx := i + 1 // sheet rows are 1-based
		if err := fill(rowIdx, constants.ColVendorAddress, cellAt(row, constants.ColVendorAddress), info.Address); err != nil {
			return changed, err
		}
		if err := fill(rowIdx, constants.ColBusinessType, cellAt(row, constants.ColBusinessType), info.BusinessType); err != nil {
			return changed, err
		}
		if err := fill(rowIdx, constants.ColChain, cellAt(row, constants.ColChain), info.Chain); err != nil {
			return changed, err
		}
	}

	if changed == 0 {
		return 0, nil
	}
	if err := f.Save(); err != nil {
		return changed, fmt.Errorf("save workbook: %w", err)
	}
	s.logger.Info("vendor gaps backfilled", "cells", changed)
	return changed, nil
}

func (s *ExcelStore) ListShifts(_ context.Context) ([]entity.Shift, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(constants.ShiftsSheet)
	if err != nil {
		return nil, fmt.Errorf("read %s sheet: %w", constants.ShiftsSheet, err)
	}

	var shifts []entity.Shift
	for i, row := range rows {
		if i == 0 || isBlankRow(row) {
			continue
		}
		id := atoiOrZero(cellAt(row, 1))
		date, _ := parseStoredTime(cellAt(row, 2))
		start, okStart := parseShiftBound(cellAt(row, 3), date)
		end, okEnd := parseShiftBound(cellAt(row, 4), date)
		if id == 0 || !okStart || !okEnd {
			s.logger.Warn("skipping unparseable shift row", "row", i+1)
			continue
		}
		// A window that ends past midnight is entered with an earlier clock.
		if end.Before(start) {
			end = end.AddDate(0, 0, 1)
		}
		shifts = append(shifts, entity.Shift{ID: id, Date: date, Start: start, End: end})
	}
	return shifts, nil
}

// --- row mapping helpers ---

func cellAt(row []string, col int) string {
	if col-1 < len(row) {
		return row[col-1]
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func atoiOrZero(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

func floatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// storedTimeLayouts covers the forms a workbook datetime cell comes back as.
var storedTimeLayouts = []string{
	constants.TimestampLayout,
	"02/01/2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	constants.DateLayout,
	"2006-01-02",
}

// parseShiftBound reads a shift boundary cell. Full datetimes stand on their
// own; clock-only cells ("18:30") are anchored on the row's Fecha date.
func parseShiftBound(s string, date time.Time) (time.Time, bool) {
	if t, ok := parseStoredTime(s); ok {
		return t, true
	}
	clock, err := time.Parse(constants.ClockLayout, strings.TrimSpace(s))
	if err != nil || date.IsZero() {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, date.Location()), true
}

func parseStoredTime(s string) (time.Time, bool) {
	text := strings.TrimSpace(s)
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range storedTimeLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func orderFromRow(row []string) entity.Order {
	o := entity.Order{
		ID:               atoiOrZero(cellAt(row, 1)),
		AcceptedAt:       strings.TrimSpace(cellAt(row, 3)),
		DeliveredAt:      strings.TrimSpace(cellAt(row, 4)),
		VendorName:       strings.TrimSpace(cellAt(row, 5)),
		VendorAddress:    strings.TrimSpace(cellAt(row, 6)),
		BusinessType:     strings.TrimSpace(cellAt(row, 7)),
		Chain:            strings.TrimSpace(cellAt(row, 8)),
		VendorPostalCode: atoiOrZero(cellAt(row, 9)),
		CustomerPostal:   atoiOrZero(cellAt(row, 10)),
		Tip:              floatOrZero(cellAt(row, 11)),
	}
	if v := atoiOrZero(cellAt(row, 2)); v > 0 {
		o.ShiftID = &v
	}
	return o
}

func orderToRow(o entity.Order) []any {
	shiftID := any("")
	if o.ShiftID != nil {
		shiftID = *o.ShiftID
	}
	return []any{
		o.ID,
		shiftID,
		o.AcceptedAt,
		o.DeliveredAt,
		o.VendorName,
		o.VendorAddress,
		o.BusinessType,
		o.Chain,
		o.VendorPostalCode,
		o.CustomerPostal,
		o.Tip,
	}
}
