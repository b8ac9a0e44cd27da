package models

import (
	"errors"
	"fmt"
	"strings"
)

// Special item names recognised by the nightly update rules.
const (
	NameAgedBrie        = "Aged Brie"
	NameBackstagePasses = "Backstage passes to a TAFKAL80ETC concert"
	NameSulfuras        = "Sulfuras, Hand of Ragnaros"

	conjuredMarker = "Conjured"
)

// Quality bounds for every item that is not legendary.
const (
	MinQuality = 0
	MaxQuality = 50

	// LegendaryQuality is the conventional quality of Sulfuras.
	LegendaryQuality = 80
)

// ErrInvalidQuality is returned when an item is built with a quality outside [MinQuality, MaxQuality].
var ErrInvalidQuality = errors.New("invalid quality")

// Category enumerates the update rule an item follows.
type Category int

const (
	CategoryOrdinary Category = iota
	CategoryAgedBrie
	CategoryBackstagePasses
	CategorySulfuras
	CategoryConjured
)

var categoryNames = map[Category]string{
	CategoryOrdinary:        "ordinary",
	CategoryAgedBrie:        "aged_brie",
	CategoryBackstagePasses: "backstage_passes",
	CategorySulfuras:        "sulfuras",
	CategoryConjured:        "conjured",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Legendary reports whether the category is exempt from quality bounds and ageing.
func (c Category) Legendary() bool {
	return c == CategorySulfuras
}

// CategoryOf resolves the update rule for an item name. Exact special names
// take precedence over the Conjured marker.
func CategoryOf(name string) Category {
	switch name {
	case NameAgedBrie:
		return CategoryAgedBrie
	case NameBackstagePasses:
		return CategoryBackstagePasses
	case NameSulfuras:
		return CategorySulfuras
	}

	if strings.Contains(name, conjuredMarker) {
		return CategoryConjured
	}

	return CategoryOrdinary
}

// Item is a single line of the inn's stock.
type Item struct {
	Name    string `json:"name"`
	SellIn  int    `json:"sell_in"`
	Quality int    `json:"quality"`

	category Category
}

// NewItem validates the initial quality and resolves the item's category once.
func NewItem(name string, sellIn, quality int) (*Item, error) {
	category := CategoryOf(name)

	if !category.Legendary() {
		if quality < MinQuality {
			return nil, fmt.Errorf("%w: %q quality %d can't be negative", ErrInvalidQuality, name, quality)
		}
		if quality > MaxQuality {
			return nil, fmt.Errorf("%w: %q quality %d can't be over %d", ErrInvalidQuality, name, quality, MaxQuality)
		}
	}

	return &Item{Name: name, SellIn: sellIn, Quality: quality, category: category}, nil
}

// MustItem is a helper that panics when the item cannot be created.
func MustItem(name string, sellIn, quality int) *Item {
	item, err := NewItem(name, sellIn, quality)
	if err != nil {
		panic(err)
	}
	return item
}

// Category returns the update rule resolved at construction.
func (i *Item) Category() Category {
	return i.category
}

// String renders the item as "name, sell_in, quality".
func (i *Item) String() string {
	return fmt.Sprintf("%s, %d, %d", i.Name, i.SellIn, i.Quality)
}

// Snapshot captures the item's current values for reports.
func (i *Item) Snapshot() ItemSnapshot {
	return ItemSnapshot{
		Name:     i.Name,
		Category: i.category.String(),
		SellIn:   i.SellIn,
		Quality:  i.Quality,
	}
}

// Clone returns an independent copy of the item, category included.
func (i *Item) Clone() *Item {
	c := *i
	return &c
}
