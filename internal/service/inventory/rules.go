package inventory

import "github.com/mamadbah2/gildedrose/internal/domain/models"

// nextQuality returns the quality an item of the given category reaches after
// one night, given the sell_in it had before the night.
func nextQuality(category models.Category, sellIn, quality int) int {
	switch category {
	case models.CategorySulfuras:
		return quality
	case models.CategoryAgedBrie:
		return clamp(quality + 1)
	case models.CategoryBackstagePasses:
		if sellIn <= 0 {
			return models.MinQuality
		}
		return clamp(quality + backstageDelta(sellIn))
	case models.CategoryConjured:
		return clamp(quality + 2*ordinaryDelta(sellIn))
	default:
		return clamp(quality + ordinaryDelta(sellIn))
	}
}

// ordinaryDelta doubles once the sell date is reached; sell_in 0 already counts as past.
func ordinaryDelta(sellIn int) int {
	if sellIn <= 0 {
		return -2
	}
	return -1
}

func backstageDelta(sellIn int) int {
	switch {
	case sellIn > 10:
		return 1
	case sellIn > 5:
		return 2
	default:
		return 3
	}
}

func clamp(quality int) int {
	return max(models.MinQuality, min(models.MaxQuality, quality))
}
