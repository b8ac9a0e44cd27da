package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/gildedrose/internal/domain/models"
)

// StockRepository loads and stores the inn's stock.
type StockRepository interface {
	LoadStock(ctx context.Context) (models.Stock, error)
	SaveStock(ctx context.Context, stock models.Stock) error
}

// ReportRepository archives the nightly reports.
type ReportRepository interface {
	SaveDailyReport(ctx context.Context, report models.StockReport) error
}

// Exporter publishes a nightly report outside the service, e.g. to a spreadsheet.
type Exporter interface {
	ExportReport(ctx context.Context, report models.StockReport) error
}

// Service serialises every read and mutation of the stock so the cron job,
// HTTP handlers and WhatsApp commands never advance the same items concurrently.
type Service struct {
	mu       sync.Mutex
	store    StockRepository
	archive  ReportRepository
	exporter Exporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new inventory service. archive and exporter are optional.
func NewService(store StockRepository, archive ReportRepository, exporter Exporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		archive:  archive,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
	}
}

// Stock returns the current stock.
func (s *Service) Stock(ctx context.Context) (models.Stock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stock, err := s.store.LoadStock(ctx)
	if err != nil {
		return models.Stock{}, fmt.Errorf("load stock: %w", err)
	}
	return stock, nil
}

// Seed stores the given items as the initial stock unless a stock already exists.
func (s *Service) Seed(ctx context.Context, items []*models.Item) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stock, err := s.store.LoadStock(ctx)
	if err != nil {
		return false, fmt.Errorf("load stock: %w", err)
	}
	if stock.Day > 0 || len(stock.Items) > 0 {
		s.logger.Debug("stock already present, skipping seed", zap.Int("items", len(stock.Items)), zap.Int("day", stock.Day))
		return false, nil
	}

	if err := s.store.SaveStock(ctx, models.Stock{Items: items}); err != nil {
		return false, fmt.Errorf("save seeded stock: %w", err)
	}

	s.logger.Info("stock seeded", zap.Int("items", len(items)))
	return true, nil
}

// AddItem validates and appends a new item to the stock.
func (s *Service) AddItem(ctx context.Context, name string, sellIn, quality int) (*models.Item, error) {
	item, err := models.NewItem(name, sellIn, quality)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stock, err := s.store.LoadStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stock: %w", err)
	}

	stock.Items = append(stock.Items, item)
	if err := s.store.SaveStock(ctx, stock); err != nil {
		return nil, fmt.Errorf("save stock: %w", err)
	}

	s.logger.Info("item added",
		zap.String("name", item.Name),
		zap.String("category", item.Category().String()),
		zap.Int("sell_in", item.SellIn),
		zap.Int("quality", item.Quality))

	return item.Clone(), nil
}

// AdvanceDay runs one nightly update over the whole stock and returns the resulting report.
// Archiving and exporting are best effort once the new stock is saved.
func (s *Service) AdvanceDay(ctx context.Context) (models.StockReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stock, err := s.store.LoadStock(ctx)
	if err != nil {
		return models.StockReport{}, fmt.Errorf("load stock: %w", err)
	}

	NewUpdater(stock.Items).AdvanceOneDay()
	stock.Day++

	if err := s.store.SaveStock(ctx, stock); err != nil {
		return models.StockReport{}, fmt.Errorf("save stock: %w", err)
	}

	now := s.now()
	report := models.NewStockReport(stock, now, now)

	s.logger.Info("stock advanced",
		zap.Int("day", report.Day),
		zap.Int("items", len(report.Items)),
		zap.Int("expired", report.Expired),
		zap.Int("worthless", report.Worthless))

	if s.archive != nil {
		if err := s.archive.SaveDailyReport(ctx, report); err != nil {
			s.logger.Error("failed to archive daily report", zap.Int("day", report.Day), zap.Error(err))
		}
	}

	if s.exporter != nil {
		if err := s.exporter.ExportReport(ctx, report); err != nil {
			s.logger.Error("failed to export daily report", zap.Int("day", report.Day), zap.Error(err))
		}
	}

	return report, nil
}
