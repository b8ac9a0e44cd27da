package inventory

import "github.com/mamadbah2/gildedrose/internal/domain/models"

// Updater applies the nightly update rules to the items it holds.
//
// The slice is shared with the caller, not copied. Updater does no locking;
// callers that touch the same items from several goroutines must serialise
// calls to AdvanceOneDay themselves (Service does this).
type Updater struct {
	Items []*models.Item
}

// NewUpdater wraps the given items.
func NewUpdater(items []*models.Item) *Updater {
	return &Updater{Items: items}
}

// AdvanceOneDay moves every item forward by one night. Quality is computed
// against the sell_in the item had before this call, then sell_in is decremented.
func (u *Updater) AdvanceOneDay() {
	for _, item := range u.Items {
		category := item.Category()

		item.Quality = nextQuality(category, item.SellIn, item.Quality)

		if !category.Legendary() {
			item.SellIn--
		}
	}
}
