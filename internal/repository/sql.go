package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"pedidos-tracker/internal/entity"
)

var sqlSchema = []string{`
CREATE TABLE IF NOT EXISTS orders (
	id                   INTEGER PRIMARY KEY,
	shift_id             INTEGER,
	accepted_at          TEXT NOT NULL,
	delivered_at         TEXT NOT NULL,
	vendor_name          TEXT NOT NULL DEFAULT '',
	vendor_address       TEXT NOT NULL DEFAULT '',
	business_type        TEXT NOT NULL DEFAULT '',
	chain                TEXT NOT NULL DEFAULT '',
	vendor_postal_code   INTEGER NOT NULL DEFAULT 0,
	customer_postal_code INTEGER NOT NULL DEFAULT 0,
	tip                  DOUBLE PRECISION NOT NULL DEFAULT 0
)`, `
CREATE TABLE IF NOT EXISTS shifts (
	id       INTEGER PRIMARY KEY,
	date     TEXT NOT NULL DEFAULT '',
	start_at TEXT NOT NULL,
	end_at   TEXT NOT NULL
)`}

// SQLStore persists orders in sqlite or postgres behind the same contract as
// the workbook store. Timestamps are stored as canonical-form text so both
// backends stay byte-compatible with the exchange format.
type SQLStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewSQLStore(db *sqlx.DB, logger *slog.Logger) (*SQLStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, stmt := range sqlSchema {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
	}
	return &SQLStore{db: db, logger: logger}, nil
}

func (s *SQLStore) ListOrders(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	err := s.db.SelectContext(ctx, &orders, `
		SELECT id, shift_id, accepted_at, delivered_at, vendor_name,
		       vendor_address, business_type, chain, vendor_postal_code,
		       customer_postal_code, tip
		FROM orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *SQLStore) NextOrderID(ctx context.Context) (int, error) {
	var next int
	if err := s.db.GetContext(ctx, &next, `SELECT COALESCE(MAX(id), 0) + 1 FROM orders`); err != nil {
		return 0, fmt.Errorf("next order id: %w", err)
	}
	return next, nil
}

func (s *SQLStore) AppendOrders(ctx context.Context, orders []entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, o := range orders {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO orders (id, shift_id, accepted_at, delivered_at,
				vendor_name, vendor_address, business_type, chain,
				vendor_postal_code, customer_postal_code, tip)
			VALUES (:id, :shift_id, :accepted_at, :delivered_at,
				:vendor_name, :vendor_address, :business_type, :chain,
				:vendor_postal_code, :customer_postal_code, :tip)`, o)
		if err != nil {
			return fmt.Errorf("insert order %d: %w", o.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("orders appended", "count", len(orders))
	return nil
}

func (s *SQLStore) BackfillVendorGaps(ctx context.Context, knowledge map[string]entity.VendorInfo) (int, error) {
	changed := 0
	update := func(column, value, vendor string) error {
		if value == "" {
			return nil
		}
		res, err := s.db.ExecContext(ctx,
			s.db.Rebind(`UPDATE orders SET `+column+` = ? WHERE vendor_name = ? AND (`+column+` = '' OR `+column+` IS NULL)`),
			value, vendor)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil {
			changed += int(n)
		}
		return nil
	}

	for vendor, info := range knowledge {
		if err := update("vendor_address", info.Address, vendor); err != nil {
			return changed, err
		}
		if err := update("business_type", info.BusinessType, vendor); err != nil {
			return changed, err
		}
		if err := update("chain", info.Chain, vendor); err != nil {
			return changed, err
		}
	}
	if changed > 0 {
		s.logger.Info("vendor gaps backfilled", "fields", changed)
	}
	return changed, nil
}

type shiftRow struct {
	ID    int    `db:"id"`
	Date  string `db:"date"`
	Start string `db:"start_at"`
	End   string `db:"end_at"`
}

func (s *SQLStore) ListShifts(ctx context.Context) ([]entity.Shift, error) {
	var rows []shiftRow
	err := s.db.SelectContext(ctx, &rows, `SELECT id, date, start_at, end_at FROM shifts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}

	shifts := make([]entity.Shift, 0, len(rows))
	for _, r := range rows {
		date, _ := parseStoredTime(r.Date)
		start, okStart := parseShiftBound(r.Start, date)
		end, okEnd := parseShiftBound(r.End, date)
		if !okStart || !okEnd {
			s.logger.Warn("skipping unparseable shift row", "id", r.ID)
			continue
		}
		if end.Before(start) {
			end = end.AddDate(0, 0, 1)
		}
		shifts = append(shifts, entity.Shift{ID: r.ID, Date: date, Start: start, End: end})
	}
	return shifts, nil
}
