// Package repository persists orders and reads externally managed shifts.
// Two backends satisfy the same interfaces: the XLSX workbook the workflow
// historically lived in, and a relational store (sqlite or postgres).
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"pedidos-tracker/internal/common"
	"pedidos-tracker/internal/entity"
)

// OrderRepository is the order store boundary. ListOrders returns rows in
// their natural storage order; that order is an invariant the enrichment
// fold depends on.
type OrderRepository interface {
	ListOrders(ctx context.Context) ([]entity.Order, error)
	// NextOrderID returns max recorded ID + 1, or 1 for an empty store.
	NextOrderID(ctx context.Context) (int, error)
	AppendOrders(ctx context.Context, orders []entity.Order) error
	// BackfillVendorGaps fills empty vendor metadata fields from the
	// knowledge map and returns the number of fields changed.
	BackfillVendorGaps(ctx context.Context, knowledge map[string]entity.VendorInfo) (int, error)
}

// ShiftRepository reads work-session windows. Shifts are managed by the
// surrounding system; this side only resolves against them.
type ShiftRepository interface {
	ListShifts(ctx context.Context) ([]entity.Shift, error)
}

// Store bundles both repositories over one backend.
type Store interface {
	OrderRepository
	ShiftRepository
}

// NewStore builds the configured backend.
func NewStore(cfg common.StoreConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Backend {
	case "excel":
		return NewExcelStore(cfg.WorkbookPath, logger), nil
	case "sqlite", "postgres":
		db, err := OpenDB(cfg)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(db, logger)
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}
