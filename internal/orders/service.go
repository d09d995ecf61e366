// Package orders implements the save-time flow a user-facing layer calls for
// a single confirmed order: required-field checks, duplicate detection,
// shift resolution, vendor prefill and the final append.
package orders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"pedidos-tracker/internal/common"
	"pedidos-tracker/internal/dedupe"
	"pedidos-tracker/internal/enrich"
	"pedidos-tracker/internal/entity"
	"pedidos-tracker/internal/repository"
	"pedidos-tracker/internal/shift"
)

// SaveRequest carries a confirmed order, OCR-prefilled or hand-entered.
type SaveRequest struct {
	AcceptedAt       time.Time
	DeliveredAt      time.Time
	VendorName       string
	VendorAddress    string
	BusinessType     string
	Chain            string
	VendorPostalCode int
	CustomerPostal   int
	Tip              float64
}

type Service struct {
	store      repository.Store
	enrichOpts enrich.Options
	schema     *jsonschema.Schema
	logger     *slog.Logger
}

func NewService(store repository.Store, enrichOpts enrich.Options, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := compileOrderSchema()
	if err != nil {
		return nil, fmt.Errorf("compile order schema: %w", err)
	}
	return &Service{store: store, enrichOpts: enrichOpts, schema: schema, logger: logger}, nil
}

// Prefill returns remembered vendor metadata for the form to suggest.
func (s *Service) Prefill(ctx context.Context, vendorName string) (entity.VendorInfo, error) {
	history, err := s.store.ListOrders(ctx)
	if err != nil {
		return entity.VendorInfo{}, err
	}
	return enrich.LookupVendor(vendorName, history, s.enrichOpts), nil
}

// Save validates and appends one order. Duplicate, missing-timestamp and
// shift resolution failures are returned to the caller unmasked.
func (s *Service) Save(ctx context.Context, req SaveRequest) (entity.Order, error) {
	if req.AcceptedAt.IsZero() || req.DeliveredAt.IsZero() {
		return entity.Order{}, common.ErrMissingTimestamps
	}

	accepted := dedupe.NormalizeTime(req.AcceptedAt)
	delivered := dedupe.NormalizeTime(req.DeliveredAt)

	history, err := s.store.ListOrders(ctx)
	if err != nil {
		return entity.Order{}, err
	}
	signatures := dedupe.BuildSignatureSet(historicalTimestamps(history))
	if dedupe.AlreadyExists(accepted, delivered, signatures) {
		return entity.Order{}, common.ErrDuplicateOrder
	}

	shifts, err := s.store.ListShifts(ctx)
	if err != nil {
		return entity.Order{}, err
	}
	shiftID, err := shift.Resolve(req.AcceptedAt, shifts)
	if err != nil {
		return entity.Order{}, err
	}

	nextID, err := s.store.NextOrderID(ctx)
	if err != nil {
		return entity.Order{}, err
	}

	order := entity.Order{
		ID:               nextID,
		ShiftID:          &shiftID,
		AcceptedAt:       accepted,
		DeliveredAt:      delivered,
		VendorName:       req.VendorName,
		VendorAddress:    req.VendorAddress,
		BusinessType:     req.BusinessType,
		Chain:            req.Chain,
		VendorPostalCode: req.VendorPostalCode,
		CustomerPostal:   req.CustomerPostal,
		Tip:              req.Tip,
	}
	if err := validateOrder(s.schema, order); err != nil {
		return entity.Order{}, common.NewAppError("ORDER_INVALID", err.Error(), common.ErrValidation)
	}

	if err := s.store.AppendOrders(ctx, []entity.Order{order}); err != nil {
		return entity.Order{}, err
	}
	s.logger.Info("order saved", "id", order.ID, "vendor", order.VendorName, "shift_id", shiftID)
	return order, nil
}

// Backfill rebuilds vendor knowledge from the current history and fills the
// gaps it can. Returns the number of fields changed.
func (s *Service) Backfill(ctx context.Context) (int, error) {
	history, err := s.store.ListOrders(ctx)
	if err != nil {
		return 0, err
	}
	knowledge := enrich.BuildVendorKnowledge(history, s.enrichOpts)
	return s.store.BackfillVendorGaps(ctx, knowledge)
}

func historicalTimestamps(history []entity.Order) []dedupe.HistoricalTimestamps {
	rows := make([]dedupe.HistoricalTimestamps, len(history))
	for i, o := range history {
		rows[i] = dedupe.HistoricalTimestamps{AcceptedAt: o.AcceptedAt, DeliveredAt: o.DeliveredAt}
	}
	return rows
}
