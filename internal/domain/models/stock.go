package models

import "time"

// Stock is the inn's persisted inventory. Day counts the nights advanced since seeding.
type Stock struct {
	Day   int
	Items []*Item
}

// Clone returns a deep copy so callers can read the stock without sharing item pointers.
func (s Stock) Clone() Stock {
	out := Stock{Day: s.Day, Items: make([]*Item, 0, len(s.Items))}
	for _, item := range s.Items {
		out.Items = append(out.Items, item.Clone())
	}
	return out
}

// ItemSnapshot is the archived state of one item after a nightly update.
type ItemSnapshot struct {
	Name     string `bson:"name" json:"name"`
	Category string `bson:"category" json:"category"`
	SellIn   int    `bson:"sell_in" json:"sell_in"`
	Quality  int    `bson:"quality" json:"quality"`
}

// StockReport represents the result of one nightly update, stored in MongoDB and exported to Sheets.
type StockReport struct {
	Day       int            `bson:"day" json:"day"`
	Date      time.Time      `bson:"date" json:"date"`
	Items     []ItemSnapshot `bson:"items" json:"items"`
	Expired   int            `bson:"expired" json:"expired"`
	Worthless int            `bson:"worthless" json:"worthless"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
}

// NewStockReport summarises the stock as it stands after the night of the given date.
func NewStockReport(stock Stock, date, createdAt time.Time) StockReport {
	report := StockReport{
		Day:       stock.Day,
		Date:      date,
		Items:     make([]ItemSnapshot, 0, len(stock.Items)),
		CreatedAt: createdAt,
	}

	for _, item := range stock.Items {
		report.Items = append(report.Items, item.Snapshot())
		if item.Category().Legendary() {
			continue
		}
		if item.SellIn < 0 {
			report.Expired++
		}
		if item.Quality == MinQuality {
			report.Worthless++
		}
	}

	return report
}
