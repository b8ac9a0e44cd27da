package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/gildedrose/internal/domain/models"
	"github.com/mamadbah2/gildedrose/internal/repository/memory"
)

type recordingExporter struct {
	reports []models.StockReport
	err     error
}

func (e *recordingExporter) ExportReport(_ context.Context, report models.StockReport) error {
	e.reports = append(e.reports, report)
	return e.err
}

type failingArchive struct{}

func (failingArchive) SaveDailyReport(context.Context, models.StockReport) error {
	return errors.New("archive offline")
}

type failingStore struct{}

func (failingStore) LoadStock(context.Context) (models.Stock, error) {
	return models.Stock{}, errors.New("store offline")
}

func (failingStore) SaveStock(context.Context, models.Stock) error {
	return errors.New("store offline")
}

func newTestService(t *testing.T, exporter Exporter) (*Service, *memory.Repository) {
	t.Helper()
	repo := memory.NewRepository()
	svc := NewService(repo, repo, exporter, nil)
	svc.now = func() time.Time { return time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestSeedOnlyFillsEmptyStock(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	seeded, err := svc.Seed(ctx, []*models.Item{models.MustItem("Random item", 3, 10)})
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = svc.Seed(ctx, []*models.Item{models.MustItem(models.NameAgedBrie, 3, 10)})
	require.NoError(t, err)
	assert.False(t, seeded)

	stock, err := svc.Stock(ctx)
	require.NoError(t, err)
	require.Len(t, stock.Items, 1)
	assert.Equal(t, "Random item", stock.Items[0].Name)
}

func TestAddItemValidatesQuality(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	_, err := svc.AddItem(ctx, "Elixir of the Mongoose", 5, 51)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidQuality))

	item, err := svc.AddItem(ctx, "Conjured Mana Cake", 3, 6)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryConjured, item.Category())

	stock, err := svc.Stock(ctx)
	require.NoError(t, err)
	assert.Len(t, stock.Items, 1)
}

func TestAdvanceDayPersistsArchivesAndExports(t *testing.T) {
	ctx := context.Background()
	exporter := &recordingExporter{}
	svc, repo := newTestService(t, exporter)

	_, err := svc.Seed(ctx, []*models.Item{
		models.MustItem("Random item", 1, 10),
		models.MustItem(models.NameSulfuras, 0, models.LegendaryQuality),
	})
	require.NoError(t, err)

	report, err := svc.AdvanceDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Day)
	assert.Equal(t, 9, report.Items[0].Quality)
	assert.Equal(t, 0, report.Items[0].SellIn)

	report, err = svc.AdvanceDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Day)
	assert.Equal(t, 7, report.Items[0].Quality)
	assert.Equal(t, 1, report.Expired)
	assert.Equal(t, models.LegendaryQuality, report.Items[1].Quality)

	stock, err := svc.Stock(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stock.Day)
	assert.Equal(t, -1, stock.Items[0].SellIn)

	archived, err := repo.Reports(ctx)
	require.NoError(t, err)
	assert.Len(t, archived, 2)
	assert.Len(t, exporter.reports, 2)
}

func TestAdvanceDayToleratesArchiveAndExportFailures(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	svc := NewService(repo, failingArchive{}, &recordingExporter{err: errors.New("sheets offline")}, nil)

	_, err := svc.Seed(ctx, []*models.Item{models.MustItem(models.NameAgedBrie, 1, 0)})
	require.NoError(t, err)

	report, err := svc.AdvanceDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Items[0].Quality)
}

func TestAdvanceDayFailsWhenStoreFails(t *testing.T) {
	svc := NewService(failingStore{}, nil, nil, nil)

	_, err := svc.AdvanceDay(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load stock")
}
