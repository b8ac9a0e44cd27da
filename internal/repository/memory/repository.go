package memory

import (
	"context"
	"sync"

	"github.com/mamadbah2/gildedrose/internal/domain/models"
)

// Repository keeps the stock and the nightly reports in process memory.
// Used when MongoDB is not configured and in tests.
type Repository struct {
	mu      sync.RWMutex
	stock   models.Stock
	reports []models.StockReport
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{}
}

// LoadStock returns a copy of the stored stock.
func (r *Repository) LoadStock(ctx context.Context) (models.Stock, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stock.Clone(), nil
}

// SaveStock replaces the stored stock with a copy of the given one.
func (r *Repository) SaveStock(ctx context.Context, stock models.Stock) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stock = stock.Clone()
	return nil
}

// SaveDailyReport appends a nightly report.
func (r *Repository) SaveDailyReport(ctx context.Context, report models.StockReport) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
	return nil
}

// Reports lists the archived reports, oldest first.
func (r *Repository) Reports(ctx context.Context) ([]models.StockReport, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.StockReport, len(r.reports))
	copy(out, r.reports)
	return out, nil
}
