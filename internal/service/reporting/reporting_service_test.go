package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/gildedrose/internal/domain/models"
)

type fakeSheets struct {
	sheetRange string
	rows       [][]interface{}
	err        error
}

func (f *fakeSheets) AppendRows(_ context.Context, sheetRange string, rows [][]interface{}) error {
	f.sheetRange = sheetRange
	f.rows = append(f.rows, rows...)
	return f.err
}

func (f *fakeSheets) ReadRange(context.Context, string) ([][]interface{}, error) {
	return nil, nil
}

func sampleReport() models.StockReport {
	night := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	stock := models.Stock{Day: 2, Items: []*models.Item{
		models.MustItem(models.NameAgedBrie, -1, 3),
		models.MustItem("Conjured Mana Cake", 1, 0),
	}}
	return models.NewStockReport(stock, night, night)
}

func TestFormatDailySummary(t *testing.T) {
	svc := NewService(nil, nil)

	got := svc.FormatDailySummary(sampleReport())

	want := "Stock after night 2 (2026-10-18)\n" +
		"2 items, 1 past sell date, 1 worthless.\n" +
		"- Aged Brie: sell in -1, quality 3\n" +
		"- Conjured Mana Cake: sell in 1, quality 0"
	assert.Equal(t, want, got)
}

func TestFormatStock(t *testing.T) {
	svc := NewService(nil, nil)

	assert.Equal(t, "Stock (night 0): no items yet.", svc.FormatStock(models.Stock{}))

	stock := models.Stock{Day: 1, Items: []*models.Item{models.MustItem("+5 Dexterity Vest", 9, 19)}}
	assert.Equal(t, "Stock (night 1): 1 items.\n- +5 Dexterity Vest, 9, 19", svc.FormatStock(stock))
}

func TestExportReport(t *testing.T) {
	sheets := &fakeSheets{}
	svc := NewService(sheets, nil)

	require.NoError(t, svc.ExportReport(context.Background(), sampleReport()))

	assert.Equal(t, stockExportRange, sheets.sheetRange)
	require.Len(t, sheets.rows, 2)
	assert.Equal(t, []interface{}{"2026-10-18", 2, "Aged Brie", "aged_brie", -1, 3}, sheets.rows[0])
}

func TestExportReportWrapsErrors(t *testing.T) {
	svc := NewService(&fakeSheets{err: errors.New("quota exceeded")}, nil)

	err := svc.ExportReport(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export stock report")
}

func TestExportReportWithoutSheetsIsNoop(t *testing.T) {
	assert.NoError(t, NewService(nil, nil).ExportReport(context.Background(), sampleReport()))
}
