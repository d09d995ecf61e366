// Package export produces XLSX report workbooks from any order store backend.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"pedidos-tracker/constants"
	"pedidos-tracker/internal/dedupe"
	"pedidos-tracker/internal/repository"
)

// Service is a tiny façade over the order repository that produces XLSX
// bytes for reports.
type Service struct {
	ordersRepo repository.OrderRepository
	logger     *slog.Logger
}

func NewService(ordersRepo repository.OrderRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{ordersRepo: ordersRepo, logger: logger}
}

// ExportOrdersXLSX returns an XLSX workbook (as bytes) for the given date
// window over acceptance timestamps.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither is provided   -> all recorded orders.
func (s *Service) ExportOrdersXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	var fromDate, toDate *time.Time
	if from != nil {
		f := dateOnly(*from)
		fromDate = &f
	}
	if to != nil {
		t := dateOnly(*to)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		t := dateOnly(time.Now().UTC())
		toDate = &t
	}

	orders, err := s.ordersRepo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Orders"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{
		"Order ID",
		"Shift",
		"Accepted At",
		"Delivered At",
		"Vendor",
		"Business Type",
		"Chain",
		"Vendor Postal Code",
		"Customer Postal Code",
		"Tip",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, o := range orders {
		acceptedAt, ok := parseCanonical(o.AcceptedAt)
		if !ok {
			s.logger.Warn("order has unparseable acceptance timestamp, skipping in report", "id", o.ID)
			continue
		}
		day := dateOnly(acceptedAt)
		if fromDate != nil && day.Before(*fromDate) {
			continue
		}
		if toDate != nil && day.After(*toDate) {
			continue
		}

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, o.ID)
		if o.ShiftID != nil {
			write(2, *o.ShiftID)
		} else {
			write(2, "")
		}
		write(3, o.AcceptedAt)
		write(4, dedupe.NormalizeTimestamp(o.DeliveredAt))
		write(5, o.VendorName)
		write(6, o.BusinessType)
		write(7, o.Chain)
		write(8, o.VendorPostalCode)
		write(9, o.CustomerPostal)
		write(10, o.Tip)

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "C", "D", 18) // timestamps
	_ = f.SetColWidth(sheet, "E", "E", 28) // vendor
	_ = f.SetColWidth(sheet, "F", "F", 16) // business type

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", row-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseCanonical(s string) (time.Time, bool) {
	norm := dedupe.NormalizeTimestamp(s)
	t, err := time.Parse(constants.TimestampLayout, norm)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
