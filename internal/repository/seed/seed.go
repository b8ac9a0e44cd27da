package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/gildedrose/internal/domain/models"
)

// ErrMalformedRow is returned when a sheet row can't be read as name, sell_in, quality.
var ErrMalformedRow = errors.New("malformed seed row")

// File is the YAML layout of a seed inventory file.
type File struct {
	Items []Entry `yaml:"items"`
}

// Entry is one item line of a seed file.
type Entry struct {
	Name    string `yaml:"name"`
	SellIn  int    `yaml:"sell_in"`
	Quality int    `yaml:"quality"`
}

// RangeReader is the part of the sheets repository used for seeding.
type RangeReader interface {
	ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error)
}

// DefaultItems returns the inn's standard opening stock.
func DefaultItems() []*models.Item {
	return []*models.Item{
		models.MustItem("+5 Dexterity Vest", 10, 20),
		models.MustItem(models.NameAgedBrie, 2, 0),
		models.MustItem("Elixir of the Mongoose", 5, 7),
		models.MustItem(models.NameSulfuras, 0, models.LegendaryQuality),
		models.MustItem(models.NameSulfuras, -1, models.LegendaryQuality),
		models.MustItem(models.NameBackstagePasses, 15, 20),
		models.MustItem(models.NameBackstagePasses, 10, 49),
		models.MustItem(models.NameBackstagePasses, 5, 49),
		models.MustItem("Conjured Mana Cake", 3, 6),
	}
}

// FromFile reads items from a YAML seed file.
func FromFile(path string) ([]*models.Item, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	items := make([]*models.Item, 0, len(file.Items))
	for i, entry := range file.Items {
		item, err := models.NewItem(entry.Name, entry.SellIn, entry.Quality)
		if err != nil {
			return nil, fmt.Errorf("seed file %s entry %d: %w", path, i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// FromSheet reads items from a sheet range whose columns are name, sell_in, quality.
// A leading header row starting with "name" is skipped; blank rows are ignored.
func FromSheet(ctx context.Context, reader RangeReader, sheetRange string) ([]*models.Item, error) {
	rows, err := reader.ReadRange(ctx, sheetRange)
	if err != nil {
		return nil, fmt.Errorf("load seed range: %w", err)
	}

	items := make([]*models.Item, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 || strings.TrimSpace(fmt.Sprint(row[0])) == "" {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(fmt.Sprint(row[0])), "name") {
			continue
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrMalformedRow, i+1, len(row))
		}

		sellIn, err := parseInt(row[1])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d sell_in: %v", ErrMalformedRow, i+1, err)
		}
		quality, err := parseInt(row[2])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d quality: %v", ErrMalformedRow, i+1, err)
		}

		item, err := models.NewItem(strings.TrimSpace(fmt.Sprint(row[0])), sellIn, quality)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func parseInt(value interface{}) (int, error) {
	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.Atoi(str)
}
