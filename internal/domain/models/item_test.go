package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemQualityBounds(t *testing.T) {
	testCases := []struct {
		name    string
		quality int
		wantErr bool
	}{
		{"Elixir of the Mongoose", -1, true},
		{"Elixir of the Mongoose", 0, false},
		{"Elixir of the Mongoose", 50, false},
		{"Elixir of the Mongoose", 51, true},
		{NameAgedBrie, 51, true},
		{NameBackstagePasses, -1, true},
		{"Conjured Mana Cake", 51, true},
	}

	for _, tt := range testCases {
		item, err := NewItem(tt.name, 5, tt.quality)
		if tt.wantErr {
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidQuality), "unexpected error %v", err)
			assert.Nil(t, item)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.quality, item.Quality)
	}
}

func TestNewItemLegendaryIsExempt(t *testing.T) {
	item, err := NewItem(NameSulfuras, 0, LegendaryQuality)
	require.NoError(t, err)
	assert.Equal(t, LegendaryQuality, item.Quality)
	assert.True(t, item.Category().Legendary())

	_, err = NewItem(NameSulfuras, -1, -5)
	assert.NoError(t, err)
}

func TestCategoryOf(t *testing.T) {
	testCases := []struct {
		name string
		want Category
	}{
		{NameAgedBrie, CategoryAgedBrie},
		{NameBackstagePasses, CategoryBackstagePasses},
		{NameSulfuras, CategorySulfuras},
		{"Conjured Mana Cake", CategoryConjured},
		{"Conjured", CategoryConjured},
		{"+5 Dexterity Vest", CategoryOrdinary},
		{"aged brie", CategoryOrdinary},
		{"Backstage passes to a Metallica concert", CategoryOrdinary},
	}

	for _, tt := range testCases {
		assert.Equal(t, tt.want, CategoryOf(tt.name), tt.name)
	}
}

func TestItemString(t *testing.T) {
	item := MustItem("+5 Dexterity Vest", -2, 7)
	assert.Equal(t, "+5 Dexterity Vest, -2, 7", item.String())
}

func TestMustItemPanicsOnInvalidQuality(t *testing.T) {
	assert.Panics(t, func() { MustItem("Elixir of the Mongoose", 3, 99) })
}

func TestCloneIsIndependent(t *testing.T) {
	item := MustItem("Conjured Mana Cake", 3, 6)
	clone := item.Clone()
	clone.Quality = 1

	assert.Equal(t, 6, item.Quality)
	assert.Equal(t, CategoryConjured, clone.Category())
}

func TestNewStockReportCounts(t *testing.T) {
	stock := Stock{Day: 4, Items: []*Item{
		MustItem("Elixir of the Mongoose", -1, 0),
		MustItem(NameAgedBrie, -3, 12),
		MustItem(NameSulfuras, -1, LegendaryQuality),
		MustItem("Conjured Mana Cake", 2, 0),
	}}

	night := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	report := NewStockReport(stock, night, night)

	assert.Equal(t, 4, report.Day)
	assert.Equal(t, night, report.Date)
	assert.Len(t, report.Items, 4)
	assert.Equal(t, 2, report.Expired)
	assert.Equal(t, 2, report.Worthless)
	assert.Equal(t, "sulfuras", report.Items[2].Category)
}
