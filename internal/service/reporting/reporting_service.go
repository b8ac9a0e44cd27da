package reporting

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/gildedrose/internal/domain/models"
	repo "github.com/mamadbah2/gildedrose/internal/repository/sheets"
)

const (
	dateLayout       = "2006-01-02"
	stockExportRange = "Stock!A:F"
)

// Service formats nightly stock summaries and exports them to the spreadsheet.
type Service struct {
	repo   repo.Repository
	logger *zap.Logger
}

// NewService wires a new reporting service instance. A nil repository disables exports.
func NewService(repository repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger}
}

// FormatDailySummary renders a nightly report as a short WhatsApp message.
func (s *Service) FormatDailySummary(report models.StockReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Stock after night %d (%s)\n", report.Day, report.Date.Format(dateLayout))
	fmt.Fprintf(&b, "%d items, %d past sell date, %d worthless.", len(report.Items), report.Expired, report.Worthless)

	for _, item := range report.Items {
		fmt.Fprintf(&b, "\n- %s: sell in %d, quality %d", item.Name, item.SellIn, item.Quality)
	}

	return b.String()
}

// FormatStock renders the current stock, one item per line.
func (s *Service) FormatStock(stock models.Stock) string {
	if len(stock.Items) == 0 {
		return fmt.Sprintf("Stock (night %d): no items yet.", stock.Day)
	}

	lines := make([]string, 0, len(stock.Items)+1)
	lines = append(lines, fmt.Sprintf("Stock (night %d): %d items.", stock.Day, len(stock.Items)))
	for _, item := range stock.Items {
		lines = append(lines, "- "+item.String())
	}
	return strings.Join(lines, "\n")
}

// ExportReport appends one row per item: date, night, name, category, sell_in, quality.
func (s *Service) ExportReport(ctx context.Context, report models.StockReport) error {
	if s.repo == nil {
		return nil
	}

	date := report.Date.Format(dateLayout)
	rows := make([][]interface{}, 0, len(report.Items))
	for _, item := range report.Items {
		rows = append(rows, []interface{}{date, report.Day, item.Name, item.Category, item.SellIn, item.Quality})
	}

	if err := s.repo.AppendRows(ctx, stockExportRange, rows); err != nil {
		return fmt.Errorf("export stock report: %w", err)
	}

	s.logger.Debug("stock report exported", zap.Int("day", report.Day), zap.Int("rows", len(rows)))
	return nil
}
