package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"room-billing/internal/domain"
)

// BillingView owns the view cache of the treatment-room payments page and
// runs the fetch, accrual and reconciliation pipeline that rebuilds it.
type BillingView struct {
	gateway    BillingGateway
	printer    ReceiptPrinter
	calculator *AccrualCalculator
	reconciler *Reconciler
	logger     *zap.Logger
	now        func() time.Time

	processedByFallback string

	mu    sync.RWMutex
	cache domain.ViewCache
}

// ViewOptions tunes a BillingView. Zero values select defaults.
type ViewOptions struct {
	Calculator          *AccrualCalculator
	Reconciler          *Reconciler
	ProcessedByFallback string
	Now                 func() time.Time
}

// DefaultProcessedBy is used on receipts when the user profile is unavailable.
const DefaultProcessedBy = "System"

// NewBillingView creates a view with an empty cache and the "all" filter.
func NewBillingView(gateway BillingGateway, printer ReceiptPrinter, logger *zap.Logger, opts ViewOptions) *BillingView {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Calculator == nil {
		opts.Calculator = NewAccrualCalculator(time.UTC, opts.Now)
	}
	if opts.Reconciler == nil {
		opts.Reconciler = NewReconciler("")
	}
	if opts.ProcessedByFallback == "" {
		opts.ProcessedByFallback = DefaultProcessedBy
	}
	return &BillingView{
		gateway:             gateway,
		printer:             printer,
		calculator:          opts.Calculator,
		reconciler:          opts.Reconciler,
		logger:              logger,
		now:                 opts.Now,
		processedByFallback: opts.ProcessedByFallback,
		cache:               domain.ViewCache{CurrentFilter: domain.FilterAll},
	}
}

// Reload rebuilds the cache: fetch occupants, price them, reconcile them
// against the balances feed, then swap the cache in one write. A fetch
// failure keeps the last good cache and records the error for rendering.
//
// Reloads are neither de-duplicated nor cancelled. Two overlapping reloads
// both run to completion and the one finishing last owns the cache.
func (v *BillingView) Reload(ctx context.Context) error {
	cycle := uuid.NewString()
	logger := v.logger.With(zap.String("reload_id", cycle))

	// Step 1: Fetch Adapter
	records, shape, err := v.gateway.FetchOccupants(ctx)
	if err != nil {
		logger.Error("Failed to load occupancy", zap.Error(err))
		v.mu.Lock()
		v.cache.LastError = err.Error()
		v.mu.Unlock()
		return err
	}

	// Step 2: Accrual Calculator
	active := v.calculator.Rows(records)

	// Step 3: Reconciliation Merge, soft-failing without the balances feed
	dischargedPaid := make([]domain.OccupancyRow, 0)
	feed, err := v.gateway.FetchBalances(ctx)
	reconciled := err == nil
	if !reconciled {
		logger.Warn("Balances feed unavailable, keeping computed accruals",
			zap.Error(errors.Join(domain.ErrReconciliationUnavailable, err)),
		)
	} else {
		active, dischargedPaid = v.reconciler.Merge(active, feed)
	}

	// Step 4: swap the cache
	v.mu.Lock()
	v.cache = domain.ViewCache{
		Active:         active,
		DischargedPaid: dischargedPaid,
		CurrentFilter:  v.cache.CurrentFilter,
		LoadedAt:       v.now(),
		Shape:          shape,
	}
	v.mu.Unlock()

	logger.Info("Billing view reloaded",
		zap.String("shape", string(shape)),
		zap.Int("active", len(active)),
		zap.Int("discharged_paid", len(dischargedPaid)),
		zap.Bool("reconciled", reconciled),
	)
	return nil
}

// SetFilter changes the filter. It performs no I/O.
func (v *BillingView) SetFilter(f domain.Filter) error {
	parsed, err := domain.ParseFilter(string(f))
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.cache.CurrentFilter = parsed
	v.mu.Unlock()
	return nil
}

// Snapshot projects the cache through the current filter.
func (v *BillingView) Snapshot() domain.ViewSnapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.cache.Snapshot()
}

// SnapshotWith projects the cache through f without changing the current filter.
func (v *BillingView) SnapshotWith(f domain.Filter) (domain.ViewSnapshot, error) {
	parsed, err := domain.ParseFilter(string(f))
	if err != nil {
		return domain.ViewSnapshot{}, err
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	c := v.cache
	c.CurrentFilter = parsed
	return c.Snapshot(), nil
}

// Cache returns a copy of the cache.
func (v *BillingView) Cache() domain.ViewCache {
	v.mu.RLock()
	defer v.mu.RUnlock()
	c := v.cache
	c.Active = append([]domain.OccupancyRow(nil), v.cache.Active...)
	c.DischargedPaid = append([]domain.OccupancyRow(nil), v.cache.DischargedPaid...)
	return c
}
